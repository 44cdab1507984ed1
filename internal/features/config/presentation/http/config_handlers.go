package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"promptgen/backend/internal/features/config/domain"
)

// AppConfigHandler exposes the non-secret part of the loaded configuration.
type AppConfigHandler struct {
	appConfig *domain.AppConfig
}

// NewAppConfigHandler creates a new AppConfigHandler.
func NewAppConfigHandler(appConfig *domain.AppConfig) *AppConfigHandler {
	return &AppConfigHandler{
		appConfig: appConfig,
	}
}

// GetAppConfigHandler returns provider, models and sampling parameters.
// Sampling is fixed at startup, so there is no write endpoint.
func (h *AppConfigHandler) GetAppConfigHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.appConfig.Public())
}
