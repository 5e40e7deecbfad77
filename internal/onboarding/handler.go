// File: internal/onboarding/handler.go
package onboarding

import (
	"io"

	"climatework_backend/internal/common"
	"climatework_backend/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler struct holds dependencies for onboarding handlers.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new onboarding handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes sets up the routes for onboarding operations.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	onboardingGroup := router.Group("/onboarding")
	onboardingGroup.Use(authMW)
	{
		onboardingGroup.POST("", h.handleAction)
		onboardingGroup.GET("/progress", h.getProgress)
	}
}

func (h *Handler) handleAction(c *gin.Context) {
	identity := middleware.GetIdentityFromContext(c)
	if identity == nil {
		common.RespondWithError(c, common.ErrUnauthorized)
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.logger.Warn("Failed to read request body", zap.Error(err))
		common.RespondWithError(c, common.ErrMalformedBody)
		return
	}

	result, err := h.service.HandleAction(c.Request.Context(), identity, body)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, result)
}

func (h *Handler) getProgress(c *gin.Context) {
	identity := middleware.GetIdentityFromContext(c)
	if identity == nil {
		common.RespondWithError(c, common.ErrUnauthorized)
		return
	}

	view, err := h.service.Progress(c.Request.Context(), identity)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, view)
}
