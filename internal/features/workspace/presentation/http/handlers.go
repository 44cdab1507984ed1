package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
	catalog "promptgen/backend/internal/features/catalog/domain"
	managerdomain "promptgen/backend/internal/features/manager/domain"
	scenariodomain "promptgen/backend/internal/features/scenario/domain"
	"promptgen/backend/internal/features/workspace/application"
	"promptgen/backend/internal/features/workspace/domain"
	"promptgen/backend/internal/observability"
)

// WorkspaceHandler holds the workspace service.
type WorkspaceHandler struct {
	workspaceService application.WorkspaceService
}

// NewWorkspaceHandler creates a new WorkspaceHandler.
func NewWorkspaceHandler(workspaceService application.WorkspaceService) *WorkspaceHandler {
	return &WorkspaceHandler{workspaceService: workspaceService}
}

type errorBody struct {
	Kind    string          `json:"kind"`
	Message string          `json:"message"`
	Missing []catalog.Field `json:"missing,omitempty"`
}

type scenarioView struct {
	Markdown    string    `json:"markdown"`
	HTML        string    `json:"html"`
	Provider    string    `json:"provider"`
	Model       string    `json:"model"`
	GeneratedAt time.Time `json:"generated_at"`
}

type chatView struct {
	Available bool                    `json:"available"`
	Pending   bool                    `json:"pending"`
	Messages  []managerdomain.Message `json:"messages"`
}

type workspaceView struct {
	ID            string                       `json:"id"`
	Configuration scenariodomain.Configuration `json:"configuration"`
	Status        domain.Status                `json:"status"`
	Loading       bool                         `json:"loading"`
	ErrorPresent  bool                         `json:"error_present"`
	Complete      bool                         `json:"complete"`
	Missing       []catalog.Field              `json:"missing"`
	Error         *errorBody                   `json:"error,omitempty"`
	Scenario      *scenarioView                `json:"scenario,omitempty"`
	Chat          chatView                     `json:"chat"`
	UpdatedAt     time.Time                    `json:"updated_at"`
}

type sendMessageRequest struct {
	Text string `json:"text"`
}

type sendMessageResponse struct {
	Reply    string                  `json:"reply"`
	Messages []managerdomain.Message `json:"messages"`
}

// CreateWorkspaceHandler starts a workspace for a new browser tab.
func (h *WorkspaceHandler) CreateWorkspaceHandler(c *gin.Context) {
	ws := h.workspaceService.Create(c.Request.Context())
	c.JSON(http.StatusCreated, h.view(c, ws))
}

// GetWorkspaceHandler returns the current state of a workspace.
func (h *WorkspaceHandler) GetWorkspaceHandler(c *gin.Context) {
	ws, err := h.workspaceService.Get(c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, h.view(c, ws))
}

// DeleteWorkspaceHandler discards a workspace.
func (h *WorkspaceHandler) DeleteWorkspaceHandler(c *gin.Context) {
	if err := h.workspaceService.Delete(c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UpdateConfigurationHandler applies a partial configuration update.
func (h *WorkspaceHandler) UpdateConfigurationHandler(c *gin.Context) {
	var patch domain.ConfigurationPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errorBody{Kind: "invalid_request", Message: err.Error()}})
		return
	}

	ws, err := h.workspaceService.UpdateConfiguration(c.Param("id"), patch)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, h.view(c, ws))
}

// GenerateHandler generates a scenario for the current configuration.
func (h *WorkspaceHandler) GenerateHandler(c *gin.Context) {
	ws, err := h.workspaceService.Generate(c.Request.Context(), c.Param("id"))
	if errors.Is(err, domain.ErrWorkspaceNotFound) {
		h.fail(c, err)
		return
	}
	view := h.view(c, ws)
	if err != nil {
		status, body := classify(err)
		c.JSON(status, gin.H{"error": body, "workspace": view})
		return
	}
	c.JSON(http.StatusOK, view)
}

// ListMessagesHandler returns the manager chat transcript.
func (h *WorkspaceHandler) ListMessagesHandler(c *gin.Context) {
	msgs, err := h.workspaceService.Transcript(c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": msgs})
}

// SendMessageHandler forwards one chat turn to the manager.
func (h *WorkspaceHandler) SendMessageHandler(c *gin.Context) {
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errorBody{Kind: "invalid_request", Message: err.Error()}})
		return
	}

	reply, msgs, err := h.workspaceService.SendMessage(c.Request.Context(), c.Param("id"), req.Text)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, sendMessageResponse{Reply: reply, Messages: msgs})
}

// ExportMarkdownHandler serves the raw scenario text as a download.
func (h *WorkspaceHandler) ExportMarkdownHandler(c *gin.Context) {
	res, err := h.workspaceService.Scenario(c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.md"`, exportName(res)))
	c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(res.Markdown))
}

// ExportDocumentHandler serves a print-ready document of the rendered scenario.
func (h *WorkspaceHandler) ExportDocumentHandler(c *gin.Context) {
	res, err := h.workspaceService.Scenario(c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	body, err := renderMarkdown(res.Markdown)
	if err != nil {
		h.fail(c, fmt.Errorf("rendering scenario: %w", err))
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`inline; filename="%s.html"`, exportName(res)))
	c.Render(http.StatusOK, render.HTML{
		Template: exportTemplate,
		Name:     "export",
		Data:     exportPage{Title: scenarioTitle(res.Markdown), Body: body},
	})
}

func (h *WorkspaceHandler) view(c *gin.Context, ws domain.Workspace) workspaceView {
	missing := ws.Configuration.Missing()
	if missing == nil {
		missing = []catalog.Field{}
	}
	v := workspaceView{
		ID:            ws.ID,
		Configuration: ws.Configuration,
		Status:        ws.Status,
		Loading:       ws.Status == domain.StatusGenerating,
		ErrorPresent:  ws.Failure != nil,
		Complete:      len(missing) == 0,
		Missing:       missing,
		Chat:          chatView{Messages: []managerdomain.Message{}},
		UpdatedAt:     ws.UpdatedAt,
	}
	if ws.Failure != nil {
		_, body := classify(ws.Failure)
		v.Error = &body
	}
	if ws.Result != nil {
		html, err := renderMarkdown(ws.Result.Markdown)
		if err != nil {
			observability.LoggerFromContext(c.Request.Context()).Warn("markdown render failed", "error", err)
		}
		v.Scenario = &scenarioView{
			Markdown:    ws.Result.Markdown,
			HTML:        string(html),
			Provider:    ws.Result.Provider,
			Model:       ws.Result.Model,
			GeneratedAt: ws.Result.GeneratedAt,
		}
	}
	if ws.Session != nil {
		v.Chat = chatView{Available: true, Pending: ws.Session.Pending(), Messages: ws.Session.Messages()}
	}
	return v
}

func (h *WorkspaceHandler) fail(c *gin.Context, err error) {
	status, body := classify(err)
	if status >= http.StatusInternalServerError {
		observability.LoggerFromContext(c.Request.Context()).Error("request failed", "error", err)
	}
	c.JSON(status, gin.H{"error": body})
}

// classify maps an error onto its HTTP status and user-facing body. Messages
// never include the underlying technical error. Generation errors take their
// kind from scenariodomain.ErrorKind.
func classify(err error) (int, errorBody) {
	switch {
	case errors.Is(err, domain.ErrWorkspaceNotFound):
		return http.StatusNotFound, errorBody{Kind: "workspace_not_found", Message: "This workspace no longer exists. Reload to start a new one."}
	case errors.Is(err, managerdomain.ErrEmptyMessage):
		return http.StatusBadRequest, errorBody{Kind: "empty_message", Message: "Type a question before sending."}
	case errors.Is(err, managerdomain.ErrTurnInProgress):
		return http.StatusConflict, errorBody{Kind: "turn_in_progress", Message: "Wait for the current reply before sending another message."}
	case errors.Is(err, domain.ErrNoSession):
		return http.StatusConflict, errorBody{Kind: "no_session", Message: "Generate a scenario before talking to the manager."}
	case errors.Is(err, domain.ErrNoScenario):
		return http.StatusConflict, errorBody{Kind: "no_scenario", Message: "Generate a scenario before exporting."}
	}

	kind := scenariodomain.ErrorKind(err)
	switch {
	case errors.Is(err, scenariodomain.ErrInvalidOption):
		return http.StatusBadRequest, errorBody{Kind: kind, Message: err.Error()}
	case errors.Is(err, scenariodomain.ErrIncompleteConfiguration):
		return http.StatusUnprocessableEntity, errorBody{
			Kind:    kind,
			Message: "Select a value for every field before generating.",
			Missing: application.MissingFields(err),
		}
	case errors.Is(err, scenariodomain.ErrMissingCredential):
		return http.StatusServiceUnavailable, errorBody{
			Kind:    kind,
			Message: "Setup required: the API key is missing. The site owner needs to configure the environment variables.",
		}
	case errors.Is(err, scenariodomain.ErrEmptyResult):
		return http.StatusBadGateway, errorBody{Kind: kind, Message: "No scenario was generated. Please try again."}
	case errors.Is(err, scenariodomain.ErrGenerationFailed):
		return http.StatusBadGateway, errorBody{Kind: kind, Message: "Failed to generate scenario. Please check your connection and try again."}
	default:
		return http.StatusInternalServerError, errorBody{Kind: "internal", Message: "Something went wrong."}
	}
}

func exportName(res *scenariodomain.GenerationResult) string {
	return "promptgen-" + res.GeneratedAt.Format("2006-01-02")
}

// scenarioTitle returns the first level-one heading, or a generic title.
func scenarioTitle(md string) string {
	for _, line := range strings.Split(md, "\n") {
		if title, ok := strings.CutPrefix(strings.TrimSpace(line), "# "); ok {
			return strings.TrimSpace(title)
		}
	}
	return "PromptGen Scenario"
}
