package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"wordaday/internal/domain"
	"wordaday/internal/middleware"
	"wordaday/internal/repository"
	"wordaday/internal/service"
)

// Handler exposes the ledger operations over HTTP. Reads go straight to
// the ledger store; everything that changes state goes through the
// submission and lifecycle services.
type Handler struct {
	store      repository.LedgerStore
	subs       *service.SubmissionService
	lifecycle  *service.LifecycleService
	adminToken string
	logger     *zap.Logger
}

// NewHandler creates a new handler instance.
func NewHandler(
	store repository.LedgerStore,
	subs *service.SubmissionService,
	lifecycle *service.LifecycleService,
	adminToken string,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		store:      store,
		subs:       subs,
		lifecycle:  lifecycle,
		adminToken: adminToken,
		logger:     logger,
	}
}

// Register mounts all routes on the engine.
func (h *Handler) Register(r *gin.Engine) {
	api := r.Group("/api")
	{
		api.GET("/word", h.getCurrentWord)
		api.GET("/word/image", h.getCurrentImage)
		api.GET("/submissions", h.listSubmissions)
		api.POST("/submissions", h.submit)
		api.POST("/submissions/:id/like", h.like)
		api.GET("/archive", h.listArchive)
		api.GET("/archive/:date/image", h.getArchivedImage)
		api.POST("/day/ensure", h.ensureDay)
	}

	admin := api.Group("/admin", middleware.AdminAuth(h.adminToken, h.logger))
	{
		admin.POST("/word", h.forceSetWord)
		admin.POST("/image/regenerate", h.regenerateImage)
		admin.POST("/summarize", h.triggerSummarization)
	}
}

// writeError maps the service error taxonomy onto HTTP status codes.
func (h *Handler) writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrNoCurrentWord):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrGenerationUnavailable):
		status = http.StatusServiceUnavailable
	case errors.Is(err, domain.ErrPersistence):
		status = http.StatusInternalServerError
	}

	if status >= http.StatusInternalServerError || status == http.StatusServiceUnavailable {
		h.logger.Error("Request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
	}

	c.JSON(status, gin.H{"error": err.Error()})
}
