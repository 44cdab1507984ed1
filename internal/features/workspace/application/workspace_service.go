package application

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
	catalog "promptgen/backend/internal/features/catalog/domain"
	managerapp "promptgen/backend/internal/features/manager/application"
	managerdomain "promptgen/backend/internal/features/manager/domain"
	scenarioapp "promptgen/backend/internal/features/scenario/application"
	scenariodomain "promptgen/backend/internal/features/scenario/domain"
	"promptgen/backend/internal/features/workspace/domain"
	"promptgen/backend/internal/observability"
)

// WorkspaceService defines the interface for the per-tab state container.
type WorkspaceService interface {
	Create(ctx context.Context) domain.Workspace
	Get(id string) (domain.Workspace, error)
	Delete(id string) error
	UpdateConfiguration(id string, patch domain.ConfigurationPatch) (domain.Workspace, error)
	Generate(ctx context.Context, id string) (domain.Workspace, error)
	SendMessage(ctx context.Context, id, text string) (string, []managerdomain.Message, error)
	Transcript(id string) ([]managerdomain.Message, error)
	Scenario(id string) (*scenariodomain.GenerationResult, error)
}

// workspaceService is the implementation of WorkspaceService.
type workspaceService struct {
	scenarios scenarioapp.ScenarioService
	manager   managerapp.ManagerService
	store     *workspaceStore
	flights   singleflight.Group
	ttl       time.Duration
	now       func() time.Time
}

// NewWorkspaceService creates a new instance of workspaceService. Workspaces
// idle for longer than ttl are dropped; zero keeps them forever.
func NewWorkspaceService(scenarios scenarioapp.ScenarioService, manager managerapp.ManagerService, ttl time.Duration) WorkspaceService {
	return &workspaceService{
		scenarios: scenarios,
		manager:   manager,
		store:     newWorkspaceStore(),
		ttl:       ttl,
		now:       time.Now,
	}
}

// Create starts a workspace with an empty configuration.
func (s *workspaceService) Create(ctx context.Context) domain.Workspace {
	now := s.now()
	if s.ttl > 0 {
		if n := s.store.prune(now.Add(-s.ttl)); n > 0 {
			observability.LoggerFromContext(ctx).Debug("pruned idle workspaces", slog.Int("count", n))
		}
	}

	ws := domain.Workspace{
		ID:            uuid.NewString(),
		Configuration: scenariodomain.NewConfiguration(),
		Status:        domain.StatusIdle,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	s.store.put(ws)
	return ws
}

// Get returns a snapshot of the workspace.
func (s *workspaceService) Get(id string) (domain.Workspace, error) {
	e, err := s.store.get(id)
	if err != nil {
		return domain.Workspace{}, err
	}
	return e.snapshot(), nil
}

// Delete discards the workspace together with its scenario and session.
func (s *workspaceService) Delete(id string) error {
	return s.store.delete(id)
}

// UpdateConfiguration applies a patch. Either every field is applied or none.
func (s *workspaceService) UpdateConfiguration(id string, patch domain.ConfigurationPatch) (domain.Workspace, error) {
	e, err := s.store.get(id)
	if err != nil {
		return domain.Workspace{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	cfg := e.ws.Configuration
	fields := []struct {
		field catalog.Field
		value *string
	}{
		{catalog.FieldRole, patch.Role},
		{catalog.FieldSeniority, patch.Seniority},
		{catalog.FieldCompanyType, patch.CompanyType},
		{catalog.FieldIndustry, patch.Industry},
		{catalog.FieldSurface, patch.Surface},
		{catalog.FieldFocusArea, patch.FocusArea},
		{catalog.FieldProjectScope, patch.ProjectScope},
	}
	for _, f := range fields {
		if f.value == nil {
			continue
		}
		if err := cfg.Set(f.field, *f.value); err != nil {
			return e.ws, err
		}
	}
	if patch.IncludeConstraints != nil {
		cfg.IncludeConstraints = *patch.IncludeConstraints
	}

	e.ws.Configuration = cfg
	e.ws.UpdatedAt = s.now()
	return e.ws, nil
}

// Generate produces a new scenario. Callers that arrive while a generation
// for the same workspace is in flight wait for and share its outcome.
func (s *workspaceService) Generate(ctx context.Context, id string) (domain.Workspace, error) {
	e, err := s.store.get(id)
	if err != nil {
		return domain.Workspace{}, err
	}

	// The upstream call cannot be aborted once started.
	detached := context.WithoutCancel(ctx)
	_, err, shared := s.flights.Do(id, func() (any, error) {
		return nil, s.generate(detached, e)
	})
	if shared {
		observability.LoggerFromContext(ctx).Debug("joined in-flight generation", slog.String("workspace_id", id))
	}
	return e.snapshot(), err
}

func (s *workspaceService) generate(ctx context.Context, e *entry) error {
	e.mu.Lock()
	id, cfg := e.ws.ID, e.ws.Configuration
	if missing := cfg.Missing(); len(missing) > 0 {
		e.mu.Unlock()
		return &IncompleteError{Missing: missing}
	}
	e.ws.Status = domain.StatusGenerating
	e.ws.Result = nil
	e.ws.Failure = nil
	e.ws.Session = nil
	e.ws.UpdatedAt = s.now()
	e.mu.Unlock()

	log := observability.LoggerFromContext(ctx).With(slog.String("workspace_id", id))

	result, err := s.scenarios.Generate(ctx, cfg)
	if err != nil {
		e.mu.Lock()
		e.ws.Status = domain.StatusFailed
		e.ws.Failure = err
		e.ws.UpdatedAt = s.now()
		e.mu.Unlock()
		return err
	}

	session, err := s.manager.Open(ctx, cfg, result.Markdown)
	if err != nil {
		log.Warn("scenario ready without manager chat", slog.Any("error", err))
	}

	e.mu.Lock()
	e.ws.Status = domain.StatusReady
	e.ws.Result = result
	e.ws.Session = session
	e.ws.UpdatedAt = s.now()
	e.mu.Unlock()
	return nil
}

// SendMessage forwards a chat turn to the current session and returns the
// reply together with the updated transcript.
func (s *workspaceService) SendMessage(ctx context.Context, id, text string) (string, []managerdomain.Message, error) {
	e, err := s.store.get(id)
	if err != nil {
		return "", nil, err
	}

	e.mu.Lock()
	session := e.ws.Session
	e.ws.UpdatedAt = s.now()
	e.mu.Unlock()

	if session == nil {
		return "", nil, domain.ErrNoSession
	}

	reply, err := s.manager.Send(context.WithoutCancel(ctx), session, text)
	if err != nil {
		return "", session.Messages(), err
	}
	return reply, session.Messages(), nil
}

// Transcript returns the current session's messages, or none.
func (s *workspaceService) Transcript(id string) ([]managerdomain.Message, error) {
	ws, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if ws.Session == nil {
		return []managerdomain.Message{}, nil
	}
	return ws.Session.Messages(), nil
}

// Scenario returns the last generated scenario for export.
func (s *workspaceService) Scenario(id string) (*scenariodomain.GenerationResult, error) {
	ws, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if ws.Result == nil {
		return nil, domain.ErrNoScenario
	}
	return ws.Result, nil
}

// IncompleteError lists the fields that block generation.
type IncompleteError struct {
	Missing []catalog.Field
}

func (e *IncompleteError) Error() string {
	return scenariodomain.ErrIncompleteConfiguration.Error()
}

// Unwrap lets errors.Is match ErrIncompleteConfiguration.
func (e *IncompleteError) Unwrap() error {
	return scenariodomain.ErrIncompleteConfiguration
}

// MissingFields extracts the missing fields from an incomplete-configuration error.
func MissingFields(err error) []catalog.Field {
	var ie *IncompleteError
	if errors.As(err, &ie) {
		return ie.Missing
	}
	return nil
}
