package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"promptgen/backend/internal/features/catalog/domain"
)

// CatalogHandler serves the option catalog that drives the configuration form.
type CatalogHandler struct{}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler() *CatalogHandler {
	return &CatalogHandler{}
}

// GetOptionsHandler returns every field with its label, placeholder and options.
func (h *CatalogHandler) GetOptionsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"fields": domain.Specs()})
}
