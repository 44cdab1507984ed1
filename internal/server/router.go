package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	catalog_http "promptgen/backend/internal/features/catalog/presentation/http"
	configdomain "promptgen/backend/internal/features/config/domain"
	config_http "promptgen/backend/internal/features/config/presentation/http"
	"promptgen/backend/internal/features/workspace/application"
	workspace_http "promptgen/backend/internal/features/workspace/presentation/http"
	"promptgen/backend/internal/observability"
)

// NewRouter wires every HTTP route onto a gin engine.
func NewRouter(appConfig *configdomain.AppConfig, workspaceService application.WorkspaceService) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), observability.RequestLogger(), observability.CORS())

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	api := r.Group("/api")
	{
		api.GET("/options", catalog_http.NewCatalogHandler().GetOptionsHandler)
		api.GET("/config/app", config_http.NewAppConfigHandler(appConfig).GetAppConfigHandler)
	}

	// Workspace API routes
	workspaceGroup := api.Group("/workspaces")
	{
		handler := workspace_http.NewWorkspaceHandler(workspaceService)
		workspaceGroup.POST("", handler.CreateWorkspaceHandler)
		workspaceGroup.GET("/:id", handler.GetWorkspaceHandler)
		workspaceGroup.DELETE("/:id", handler.DeleteWorkspaceHandler)
		workspaceGroup.PATCH("/:id/configuration", handler.UpdateConfigurationHandler)
		workspaceGroup.POST("/:id/generate", handler.GenerateHandler)
		workspaceGroup.GET("/:id/messages", handler.ListMessagesHandler)
		workspaceGroup.POST("/:id/messages", handler.SendMessageHandler)
		workspaceGroup.GET("/:id/export.md", handler.ExportMarkdownHandler)
		workspaceGroup.GET("/:id/export.html", handler.ExportDocumentHandler)
	}

	return r
}
