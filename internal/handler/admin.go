package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type forceSetWordRequest struct {
	Word string `json:"word"`
}

func (h *Handler) forceSetWord(c *gin.Context) {
	var req forceSetWordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	word, err := h.lifecycle.ForceSetWord(c.Request.Context(), req.Word)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toWordResponse(*word))
}

func (h *Handler) regenerateImage(c *gin.Context) {
	word, err := h.lifecycle.RegenerateImage(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toWordResponse(*word))
}

func (h *Handler) triggerSummarization(c *gin.Context) {
	archived, err := h.lifecycle.TriggerSummarization(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toArchivedResponse(*archived))
}
