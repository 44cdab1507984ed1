package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	catalog "promptgen/backend/internal/features/catalog/domain"
)

var (
	// ErrMissingCredential means no API credential is configured. It is a setup
	// problem and must never be reported as a generic failure.
	ErrMissingCredential = errors.New("missing api credential")
	// ErrGenerationFailed wraps any transport or service failure.
	ErrGenerationFailed = errors.New("scenario generation failed")
	// ErrEmptyResult means the service answered without any text.
	ErrEmptyResult = errors.New("no content generated")
	// ErrIncompleteConfiguration is returned before any call when a field is unset.
	ErrIncompleteConfiguration = errors.New("configuration is incomplete")
	// ErrInvalidOption is returned when a value is not part of the field's catalog.
	ErrInvalidOption = errors.New("invalid option")
)

// Configuration is the user's current set of scenario parameters.
type Configuration struct {
	Role               string `json:"role"`
	Seniority          string `json:"seniority"`
	CompanyType        string `json:"company_type"`
	Industry           string `json:"industry"`
	Surface            string `json:"surface"`
	FocusArea          string `json:"focus_area"`
	ProjectScope       string `json:"project_scope"`
	IncludeConstraints bool   `json:"include_constraints"`
}

// NewConfiguration returns an empty configuration with heavy constraints enabled.
func NewConfiguration() Configuration {
	return Configuration{IncludeConstraints: true}
}

// Get returns the value held by an enumerated field.
func (c *Configuration) Get(f catalog.Field) string {
	if p := c.field(f); p != nil {
		return *p
	}
	return ""
}

// Set assigns a catalog value to a field. An empty value clears it.
func (c *Configuration) Set(f catalog.Field, value string) error {
	p := c.field(f)
	if p == nil {
		return fmt.Errorf("%w: unknown field %q", ErrInvalidOption, f)
	}
	value = strings.TrimSpace(value)
	if value != "" && !catalog.Valid(f, value) {
		return fmt.Errorf("%w: %q is not a valid %s", ErrInvalidOption, value, f)
	}
	*p = value
	return nil
}

// Missing lists the fields that still need a value, in form order.
func (c *Configuration) Missing() []catalog.Field {
	var missing []catalog.Field
	for _, f := range catalog.Fields {
		if c.Get(f) == "" {
			missing = append(missing, f)
		}
	}
	return missing
}

// Complete reports whether every enumerated field holds a value.
func (c *Configuration) Complete() bool {
	return len(c.Missing()) == 0
}

func (c *Configuration) field(f catalog.Field) *string {
	switch f {
	case catalog.FieldRole:
		return &c.Role
	case catalog.FieldSeniority:
		return &c.Seniority
	case catalog.FieldCompanyType:
		return &c.CompanyType
	case catalog.FieldIndustry:
		return &c.Industry
	case catalog.FieldSurface:
		return &c.Surface
	case catalog.FieldFocusArea:
		return &c.FocusArea
	case catalog.FieldProjectScope:
		return &c.ProjectScope
	}
	return nil
}

// GenerationResult is the formatted text returned for one Configuration.
type GenerationResult struct {
	Markdown    string    `json:"markdown"`
	Provider    string    `json:"provider"`
	Model       string    `json:"model"`
	GeneratedAt time.Time `json:"generated_at"`
}

// NewGenerationResult validates raw service output into a result.
func NewGenerationResult(text, provider, model string, at time.Time) (*GenerationResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyResult
	}
	return &GenerationResult{
		Markdown:    text,
		Provider:    provider,
		Model:       model,
		GeneratedAt: at,
	}, nil
}

// ErrorKind maps an error onto the stable kind reported to the browser.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMissingCredential):
		return "missing_credential"
	case errors.Is(err, ErrEmptyResult):
		return "empty_result"
	case errors.Is(err, ErrIncompleteConfiguration):
		return "incomplete_configuration"
	case errors.Is(err, ErrInvalidOption):
		return "invalid_option"
	default:
		return "generation_failed"
	}
}
