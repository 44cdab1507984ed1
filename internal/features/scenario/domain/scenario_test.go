package domain

import (
	"errors"
	"fmt"
	"testing"
	"time"

	catalog "promptgen/backend/internal/features/catalog/domain"
)

func completeConfiguration() Configuration {
	return Configuration{
		Role:               catalog.RoleProductManager,
		Seniority:          catalog.SenioritySenior,
		CompanyType:        catalog.CompanyGrowthStage,
		Industry:           catalog.IndustryFintech,
		Surface:            catalog.SurfaceConsumerApp,
		FocusArea:          catalog.FocusGrowth,
		ProjectScope:       catalog.ScopeTakeHome,
		IncludeConstraints: true,
	}
}

func TestNewConfigurationIsIncomplete(t *testing.T) {
	cfg := NewConfiguration()
	if cfg.Complete() {
		t.Fatal("new configuration should not be complete")
	}
	if !cfg.IncludeConstraints {
		t.Error("heavy constraints should default to on")
	}
	if got := len(cfg.Missing()); got != len(catalog.Fields) {
		t.Errorf("expected %d missing fields, got %d", len(catalog.Fields), got)
	}
}

func TestMissingAnySingleFieldIsIncomplete(t *testing.T) {
	for _, f := range catalog.Fields {
		t.Run(string(f), func(t *testing.T) {
			cfg := completeConfiguration()
			if err := cfg.Set(f, ""); err != nil {
				t.Fatalf("clearing %s: %v", f, err)
			}
			if cfg.Complete() {
				t.Fatalf("configuration without %s reported complete", f)
			}
			missing := cfg.Missing()
			if len(missing) != 1 || missing[0] != f {
				t.Errorf("expected only %s missing, got %v", f, missing)
			}
		})
	}
}

func TestSet(t *testing.T) {
	cfg := NewConfiguration()

	if err := cfg.Set(catalog.FieldIndustry, " "+catalog.IndustryHealthcare+" "); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if cfg.Industry != catalog.IndustryHealthcare {
		t.Errorf("expected industry %q, got %q", catalog.IndustryHealthcare, cfg.Industry)
	}

	err := cfg.Set(catalog.FieldIndustry, "Crypto")
	if !errors.Is(err, ErrInvalidOption) {
		t.Fatalf("expected ErrInvalidOption, got %v", err)
	}
	if cfg.Industry != catalog.IndustryHealthcare {
		t.Error("rejected value must not overwrite the previous one")
	}

	if err := cfg.Set(catalog.Field("budget"), "x"); !errors.Is(err, ErrInvalidOption) {
		t.Errorf("expected ErrInvalidOption for unknown field, got %v", err)
	}
}

func TestNewGenerationResult(t *testing.T) {
	now := time.Now()
	if _, err := NewGenerationResult("  \n\t", "mock", "m", now); !errors.Is(err, ErrEmptyResult) {
		t.Fatalf("expected ErrEmptyResult, got %v", err)
	}
	res, err := NewGenerationResult("# Title", "mock", "m", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Markdown != "# Title" {
		t.Errorf("unexpected markdown %q", res.Markdown)
	}
}

func TestErrorKind(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{ErrMissingCredential, "missing_credential"},
		{fmt.Errorf("generate: %w", ErrMissingCredential), "missing_credential"},
		{ErrEmptyResult, "empty_result"},
		{fmt.Errorf("%w: %w", ErrGenerationFailed, errors.New("dial tcp: timeout")), "generation_failed"},
		{ErrIncompleteConfiguration, "incomplete_configuration"},
		{errors.New("anything else"), "generation_failed"},
	}
	for _, tt := range tests {
		if got := ErrorKind(tt.err); got != tt.want {
			t.Errorf("ErrorKind(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
