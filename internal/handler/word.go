package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wordaday/internal/domain"
)

type wordResponse struct {
	Word      string `json:"word"`
	Date      string `json:"date"`
	AIMeaning string `json:"ai_meaning,omitempty"`
	HasImage  bool   `json:"has_image"`
	ImageURL  string `json:"image_url,omitempty"`
}

func toWordResponse(w domain.Word) wordResponse {
	resp := wordResponse{
		Word:      w.Word,
		Date:      w.Date,
		AIMeaning: w.AIMeaning,
		HasImage:  w.HasImage(),
	}
	if resp.HasImage {
		resp.ImageURL = "/api/word/image"
	}
	return resp
}

type archivedWordResponse struct {
	Word               string   `json:"word"`
	Date               string   `json:"date"`
	WinningDefinitions []string `json:"winning_definitions"`
	HasImage           bool     `json:"has_image"`
	ImageURL           string   `json:"image_url,omitempty"`
}

func toArchivedResponse(a domain.ArchivedWord) archivedWordResponse {
	resp := archivedWordResponse{
		Word:               a.Word,
		Date:               a.Date,
		WinningDefinitions: a.WinningDefinitions,
		HasImage:           a.HasImage(),
	}
	if resp.HasImage {
		resp.ImageURL = "/api/archive/" + a.Date + "/image"
	}
	return resp
}

func (h *Handler) getCurrentWord(c *gin.Context) {
	led, err := h.store.Read(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}

	if led.Current == nil {
		c.JSON(http.StatusOK, gin.H{"word": nil})
		return
	}
	c.JSON(http.StatusOK, toWordResponse(*led.Current))
}

func (h *Handler) getCurrentImage(c *gin.Context) {
	led, err := h.store.Read(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}

	if led.Current == nil || !led.Current.HasImage() {
		c.JSON(http.StatusNotFound, gin.H{"error": "no image for the current word"})
		return
	}
	c.Data(http.StatusOK, "image/png", led.Current.Image)
}

func (h *Handler) listArchive(c *gin.Context) {
	led, err := h.store.Read(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}

	out := make([]archivedWordResponse, len(led.Archive))
	for i, a := range led.Archive {
		out[i] = toArchivedResponse(a)
	}
	c.JSON(http.StatusOK, gin.H{"archive": out})
}

func (h *Handler) getArchivedImage(c *gin.Context) {
	led, err := h.store.Read(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}

	entry := led.FindArchived(c.Param("date"))
	if entry == nil || !entry.HasImage() {
		c.JSON(http.StatusNotFound, gin.H{"error": "no archived image for that day"})
		return
	}
	c.Data(http.StatusOK, "image/png", entry.Image)
}

func (h *Handler) ensureDay(c *gin.Context) {
	word, err := h.lifecycle.EnsureCurrentDay(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toWordResponse(*word))
}
