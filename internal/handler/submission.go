package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"wordaday/internal/domain"
)

type submissionResponse struct {
	ID        string    `json:"id"`
	Word      string    `json:"word"`
	Text      string    `json:"text"`
	Username  string    `json:"username"`
	Likes     int       `json:"likes"`
	CreatedAt time.Time `json:"created_at"`
}

func toSubmissionResponse(s domain.Submission) submissionResponse {
	return submissionResponse{
		ID:        s.ID,
		Word:      s.Word,
		Text:      s.Text,
		Username:  s.Username,
		Likes:     s.Likes,
		CreatedAt: s.CreatedAt,
	}
}

func (h *Handler) listSubmissions(c *gin.Context) {
	led, err := h.store.Read(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}

	out := make([]submissionResponse, len(led.Submissions))
	for i, s := range led.Submissions {
		out[i] = toSubmissionResponse(s)
	}
	c.JSON(http.StatusOK, gin.H{"submissions": out})
}

type submitRequest struct {
	Text     string `json:"text"`
	Username string `json:"username"`
}

func (h *Handler) submit(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	sub, err := h.subs.Submit(c.Request.Context(), req.Text, req.Username)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toSubmissionResponse(*sub))
}

func (h *Handler) like(c *gin.Context) {
	sub, err := h.subs.Like(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSubmissionResponse(*sub))
}
