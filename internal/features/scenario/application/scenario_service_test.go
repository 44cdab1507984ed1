package application_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	catalog "promptgen/backend/internal/features/catalog/domain"
	"promptgen/backend/internal/features/scenario/application"
	"promptgen/backend/internal/features/scenario/domain"
	"promptgen/backend/internal/features/scenario/infrastructure"
)

func exampleConfiguration() domain.Configuration {
	return domain.Configuration{
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

var settings = application.GenerationSettings{
	Model:    "gemini-2.5-flash",
	Sampling: infrastructure.SamplingParams{Temperature: 0.7, TopK: 40, TopP: 0.95},
}

func TestComposePromptContainsEveryField(t *testing.T) {
	prompt := application.ComposePrompt(exampleConfiguration())

	for _, want := range []string{
		"Product Manager", "Senior", "Growth-stage", "Fintech",
		"Consumer App", "Growth / Optimization", "Take-home Assignment",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt does not contain %q", want)
		}
	}
}

func TestComposePromptIsDeterministic(t *testing.T) {
	cfg := exampleConfiguration()
	if application.ComposePrompt(cfg) != application.ComposePrompt(cfg) {
		t.Fatal("same configuration produced different prompts")
	}
}

func TestComposePromptVariesOnlyBySubstitution(t *testing.T) {
	a := exampleConfiguration()
	b := exampleConfiguration()
	b.Industry = catalog.IndustryHealthcare

	got := strings.Replace(application.ComposePrompt(a), catalog.IndustryFintech+"\n", catalog.IndustryHealthcare+"\n", 1)
	if got != application.ComposePrompt(b) {
		t.Fatal("prompts differ beyond the substituted industry")
	}
}

func TestComposePromptConstraints(t *testing.T) {
	cfg := exampleConfiguration()
	if !strings.Contains(application.ComposePrompt(cfg), "Heavy constraints") {
		t.Error("expected heavy constraints when enabled")
	}
	cfg.IncludeConstraints = false
	if !strings.Contains(application.ComposePrompt(cfg), "Standard constraints.") {
		t.Error("expected standard constraints when disabled")
	}
}

func TestComposePromptAcceptsIncompleteConfiguration(t *testing.T) {
	prompt := application.ComposePrompt(domain.NewConfiguration())
	if !strings.Contains(prompt, "Create a realistic product scenario.") {
		t.Fatal("expected the fixed template even for an empty configuration")
	}
}

func TestGenerateIncompleteConfigurationMakesNoCall(t *testing.T) {
	for _, f := range catalog.Fields {
		t.Run(string(f), func(t *testing.T) {
			mock := infrastructure.NewMockClient()
			svc := application.NewScenarioService(mock, settings)

			cfg := exampleConfiguration()
			_ = cfg.Set(f, "")

			_, err := svc.Generate(context.Background(), cfg)
			if !errors.Is(err, domain.ErrIncompleteConfiguration) {
				t.Fatalf("expected ErrIncompleteConfiguration, got %v", err)
			}
			if mock.GenerateCalls() != 0 {
				t.Fatalf("expected no network call, got %d", mock.GenerateCalls())
			}
		})
	}
}

func TestGenerateSendsFixedInstructionAndSampling(t *testing.T) {
	mock := infrastructure.NewMockClient()
	svc := application.NewScenarioService(mock, settings)

	res, err := svc.Generate(context.Background(), exampleConfiguration())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if res.Markdown == "" || res.Provider != "mock" || res.Model != settings.Model {
		t.Errorf("unexpected result %+v", res)
	}

	req := mock.LastGenerate()
	if req.SystemInstruction != application.SystemInstruction {
		t.Error("system instruction was not sent")
	}
	if req.Prompt != application.ComposePrompt(exampleConfiguration()) {
		t.Error("composed prompt was not sent")
	}
	if req.Sampling != settings.Sampling {
		t.Errorf("unexpected sampling %+v", req.Sampling)
	}
}

func TestGenerateErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name    string
		fn      func(context.Context, infrastructure.GenerateRequest) (string, error)
		wantErr error
		notErr  error
	}{
		{
			name: "missing credential",
			fn: func(context.Context, infrastructure.GenerateRequest) (string, error) {
				return "", domain.ErrMissingCredential
			},
			wantErr: domain.ErrMissingCredential,
			notErr:  domain.ErrGenerationFailed,
		},
		{
			name: "transport failure",
			fn: func(context.Context, infrastructure.GenerateRequest) (string, error) {
				return "", errors.New("connection reset")
			},
			wantErr: domain.ErrGenerationFailed,
			notErr:  domain.ErrMissingCredential,
		},
		{
			name:    "empty payload",
			fn:      func(context.Context, infrastructure.GenerateRequest) (string, error) { return "   ", nil },
			wantErr: domain.ErrEmptyResult,
			notErr:  domain.ErrGenerationFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := infrastructure.NewMockClient()
			mock.GenerateFunc = tt.fn
			svc := application.NewScenarioService(mock, settings)

			_, err := svc.Generate(context.Background(), exampleConfiguration())
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if errors.Is(err, tt.notErr) {
				t.Fatalf("error %v must not match %v", err, tt.notErr)
			}
			if mock.GenerateCalls() != 1 {
				t.Fatalf("expected exactly one attempt, got %d", mock.GenerateCalls())
			}
		})
	}
}

func TestGenerateWithEmptyEnvironmentCredential(t *testing.T) {
	t.Setenv("PROMPTGEN_TEST_API_KEY", "")
	client := infrastructure.NewGeminiClient(infrastructure.EnvCredential("PROMPTGEN_TEST_API_KEY"), infrastructure.GeminiOptions{})
	svc := application.NewScenarioService(client, settings)

	_, err := svc.Generate(context.Background(), exampleConfiguration())
	if !errors.Is(err, domain.ErrMissingCredential) {
		t.Fatalf("expected ErrMissingCredential, got %v", err)
	}
}
