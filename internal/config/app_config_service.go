package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
	"promptgen/backend/internal/features/config/domain"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// AppConfigService defines the interface for application configuration management.
type AppConfigService interface {
	LoadAppConfig() (*domain.AppConfig, error)
}

// appConfigService is the implementation of AppConfigService.
type appConfigService struct {
	configPath string
	getenv     func(string) string
}

// NewAppConfigService creates a new instance of appConfigService.
func NewAppConfigService(configPath string) AppConfigService {
	return &appConfigService{configPath: configPath, getenv: os.Getenv}
}

// DefaultAppConfig returns the settings used when no file or env overrides exist.
func DefaultAppConfig() *domain.AppConfig {
	return &domain.AppConfig{
		Port:         "8080",
		LogLevel:     "info",
		Provider:     ProviderGemini,
		WorkspaceTTL: domain.Duration(12 * time.Hour),
		ModelParams: domain.ModelParams{
			Temperature: 0.7,
			TopK:        40,
			TopP:        0.95,
		},
	}
}

// LoadAppConfig loads the configuration file (YAML or JSON by extension) if it
// exists, then applies environment overrides and provider defaults.
func (s *appConfigService) LoadAppConfig() (*domain.AppConfig, error) {
	appConfig := DefaultAppConfig()

	if s.configPath != "" {
		if err := s.loadFile(appConfig); err != nil {
			return nil, err
		}
	}

	if err := s.applyEnv(appConfig); err != nil {
		return nil, err
	}

	if err := applyProviderDefaults(appConfig); err != nil {
		return nil, err
	}
	return appConfig, nil
}

func (s *appConfigService) loadFile(appConfig *domain.AppConfig) error {
	absPath, err := filepath.Abs(s.configPath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path for %s: %w", s.configPath, err)
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read app config file %s: %w", absPath, err)
	}

	switch strings.ToLower(filepath.Ext(absPath)) {
	case ".json":
		err = json.Unmarshal(data, appConfig)
	default:
		err = yaml.Unmarshal(data, appConfig)
	}
	if err != nil {
		return fmt.Errorf("failed to unmarshal app config from %s: %w", absPath, err)
	}
	return nil
}

func (s *appConfigService) applyEnv(c *domain.AppConfig) error {
	if v := s.getenv("PROMPTGEN_PORT"); v != "" {
		c.Port = v
	}
	if v := s.getenv("PROMPTGEN_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := s.getenv("PROMPTGEN_PROVIDER"); v != "" {
		c.Provider = v
	}
	if v := s.getenv("PROMPTGEN_MODEL"); v != "" {
		c.Model = v
	}
	if v := s.getenv("PROMPTGEN_CHAT_MODEL"); v != "" {
		c.ChatModel = v
	}
	if v := s.getenv("PROMPTGEN_CREDENTIAL_ENV"); v != "" {
		c.CredentialEnv = v
	}
	if v := s.getenv("PROMPTGEN_BASE_URL"); v != "" {
		c.BaseURL = v
	}
	if v := s.getenv("PROMPTGEN_USE_MOCK_LLM"); v != "" {
		c.UseMockLLM = v == "1" || strings.EqualFold(v, "true")
	}
	if v := s.getenv("PROMPTGEN_WORKSPACE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid PROMPTGEN_WORKSPACE_TTL %q: %w", v, err)
		}
		c.WorkspaceTTL = domain.Duration(d)
	}
	return nil
}

func applyProviderDefaults(c *domain.AppConfig) error {
	c.Provider = strings.ToLower(strings.TrimSpace(c.Provider))

	var model, credentialEnv string
	switch c.Provider {
	case ProviderGemini:
		model, credentialEnv = "gemini-2.5-flash", "API_KEY"
	case ProviderOpenAI:
		model, credentialEnv = "gpt-4o-mini", "OPENAI_API_KEY"
	default:
		return fmt.Errorf("unknown provider %q (want %q or %q)", c.Provider, ProviderGemini, ProviderOpenAI)
	}

	if c.Model == "" {
		c.Model = model
	}
	if c.ChatModel == "" {
		c.ChatModel = c.Model
	}
	if c.CredentialEnv == "" {
		c.CredentialEnv = credentialEnv
	}
	return nil
}
