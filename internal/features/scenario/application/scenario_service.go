package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"promptgen/backend/internal/features/scenario/domain"
	"promptgen/backend/internal/features/scenario/infrastructure"
	"promptgen/backend/internal/observability"
)

// ScenarioService defines the interface for scenario generation.
type ScenarioService interface {
	Generate(ctx context.Context, cfg domain.Configuration) (*domain.GenerationResult, error)
}

// GenerationSettings are fixed for the lifetime of the process.
type GenerationSettings struct {
	Model    string
	Sampling infrastructure.SamplingParams
}

// scenarioService is the implementation of ScenarioService.
type scenarioService struct {
	client   infrastructure.AIClient
	settings GenerationSettings
	now      func() time.Time
}

// NewScenarioService creates a new instance of scenarioService.
func NewScenarioService(client infrastructure.AIClient, settings GenerationSettings) ScenarioService {
	return &scenarioService{client: client, settings: settings, now: time.Now}
}

// Generate makes exactly one generation attempt for a complete configuration.
func (s *scenarioService) Generate(ctx context.Context, cfg domain.Configuration) (*domain.GenerationResult, error) {
	if missing := cfg.Missing(); len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing %v", domain.ErrIncompleteConfiguration, missing)
	}

	log := observability.LoggerFromContext(ctx).With(
		slog.String("provider", s.client.Provider()),
		slog.String("model", s.settings.Model),
	)

	start := s.now()
	text, err := s.client.Generate(ctx, infrastructure.GenerateRequest{
		Model:             s.settings.Model,
		SystemInstruction: SystemInstruction,
		Prompt:            ComposePrompt(cfg),
		Sampling:          s.settings.Sampling,
	})
	if err != nil {
		if errors.Is(err, domain.ErrMissingCredential) {
			log.Warn("scenario generation skipped, no credential configured")
			return nil, err
		}
		log.Error("scenario generation failed", slog.Any("error", err))
		return nil, fmt.Errorf("%w: %w", domain.ErrGenerationFailed, err)
	}

	result, err := domain.NewGenerationResult(text, s.client.Provider(), s.settings.Model, s.now())
	if err != nil {
		log.Warn("scenario generation returned no content")
		return nil, err
	}

	log.Info("scenario generated",
		slog.Int("chars", len(result.Markdown)),
		slog.Duration("duration", s.now().Sub(start)),
	)
	return result, nil
}
