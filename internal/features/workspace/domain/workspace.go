package domain

import (
	"errors"
	"time"

	managerdomain "promptgen/backend/internal/features/manager/domain"
	scenariodomain "promptgen/backend/internal/features/scenario/domain"
)

var (
	// ErrWorkspaceNotFound is returned for unknown or pruned workspace ids.
	ErrWorkspaceNotFound = errors.New("workspace not found")
	// ErrNoScenario is returned by operations that need a generated scenario.
	ErrNoScenario = errors.New("no scenario has been generated")
	// ErrNoSession is returned when chatting before a manager session exists.
	ErrNoSession = errors.New("no manager session is open")
)

// Status is the generation state of a workspace.
type Status string

const (
	StatusIdle       Status = "idle"
	StatusGenerating Status = "generating"
	StatusReady      Status = "ready"
	StatusFailed     Status = "failed"
)

// Workspace is the state container owned by one browser tab: the current
// selection plus the current scenario and session.
type Workspace struct {
	ID            string
	Configuration scenariodomain.Configuration
	Status        Status
	Result        *scenariodomain.GenerationResult
	Failure       error
	Session       *managerdomain.Session
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ConfigurationPatch carries a partial configuration update. Nil fields are
// left untouched; an empty string clears a field.
type ConfigurationPatch struct {
	Role               *string `json:"role"`
	Seniority          *string `json:"seniority"`
	CompanyType        *string `json:"company_type"`
	Industry           *string `json:"industry"`
	Surface            *string `json:"surface"`
	FocusArea          *string `json:"focus_area"`
	ProjectScope       *string `json:"project_scope"`
	IncludeConstraints *bool   `json:"include_constraints"`
}
