package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func serviceWithEnv(path string, env map[string]string) *appConfigService {
	return &appConfigService{
		configPath: path,
		getenv:     func(k string) string { return env[k] },
	}
}

func TestLoadAppConfigDefaults(t *testing.T) {
	svc := serviceWithEnv(filepath.Join(t.TempDir(), "missing.yaml"), nil)

	cfg, err := svc.LoadAppConfig()
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}
	if cfg.Provider != ProviderGemini || cfg.Model != "gemini-2.5-flash" || cfg.ChatModel != cfg.Model {
		t.Errorf("unexpected provider defaults %+v", cfg)
	}
	if cfg.CredentialEnv != "API_KEY" {
		t.Errorf("expected API_KEY credential env, got %q", cfg.CredentialEnv)
	}
	if cfg.ModelParams.Temperature != 0.7 || cfg.ModelParams.TopK != 40 || cfg.ModelParams.TopP != 0.95 {
		t.Errorf("unexpected sampling defaults %+v", cfg.ModelParams)
	}
}

func TestLoadAppConfigYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app_config.yaml")
	content := `
provider: openai
port: "9090"
workspace_ttl: 30m
model_params:
  temperature: 0.2
  top_k: 10
  top_p: 0.5
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := serviceWithEnv(path, nil).LoadAppConfig()
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}
	if cfg.Provider != ProviderOpenAI || cfg.Model != "gpt-4o-mini" || cfg.CredentialEnv != "OPENAI_API_KEY" {
		t.Errorf("unexpected provider settings %+v", cfg)
	}
	if cfg.Port != "9090" || cfg.WorkspaceTTL.Std() != 30*time.Minute {
		t.Errorf("unexpected server settings port=%q ttl=%s", cfg.Port, cfg.WorkspaceTTL)
	}
	if cfg.ModelParams.Temperature != 0.2 || cfg.ModelParams.TopK != 10 {
		t.Errorf("unexpected sampling %+v", cfg.ModelParams)
	}
}

func TestLoadAppConfigJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app_config.json")
	content := `{"model":"gemini-2.5-pro","use_mock_llm":true,"workspace_ttl":"90m"}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := serviceWithEnv(path, nil).LoadAppConfig()
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}
	if cfg.Model != "gemini-2.5-pro" || !cfg.UseMockLLM {
		t.Errorf("unexpected config %+v", cfg)
	}
	if cfg.WorkspaceTTL.Std() != 90*time.Minute {
		t.Errorf("expected 90m ttl, got %s", cfg.WorkspaceTTL)
	}
}

func TestLoadAppConfigJSONDurationForms(t *testing.T) {
	tests := []struct {
		name    string
		ttl     string
		want    time.Duration
		wantErr bool
	}{
		{"string", `"12h"`, 12 * time.Hour, false},
		{"nanoseconds", `60000000000`, time.Minute, false},
		{"zero disables pruning", `0`, 0, false},
		{"malformed string", `"soon"`, 0, true},
		{"wrong type", `true`, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "app_config.json")
			content := `{"provider":"gemini","workspace_ttl":` + tt.ttl + `}`
			if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
				t.Fatal(err)
			}

			cfg, err := serviceWithEnv(path, nil).LoadAppConfig()
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected an error, got ttl %s", cfg.WorkspaceTTL)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadAppConfig failed: %v", err)
			}
			if cfg.WorkspaceTTL.Std() != tt.want {
				t.Errorf("expected %s, got %s", tt.want, cfg.WorkspaceTTL)
			}
		})
	}
}

func TestLoadAppConfigShippedFile(t *testing.T) {
	cfg, err := serviceWithEnv(filepath.Join("..", "..", "config", "app_config.yaml"), nil).LoadAppConfig()
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}
	if cfg.WorkspaceTTL.Std() != 12*time.Hour {
		t.Errorf("expected 12h ttl from the shipped config, got %s", cfg.WorkspaceTTL)
	}
}

func TestLoadAppConfigEnvOverrides(t *testing.T) {
	env := map[string]string{
		"PROMPTGEN_PORT":           "7000",
		"PROMPTGEN_MODEL":          "custom-model",
		"PROMPTGEN_CREDENTIAL_ENV": "GEMINI_API_KEY",
		"PROMPTGEN_USE_MOCK_LLM":   "1",
		"PROMPTGEN_WORKSPACE_TTL":  "5m",
	}
	cfg, err := serviceWithEnv("", env).LoadAppConfig()
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}
	if cfg.Port != "7000" || cfg.Model != "custom-model" || cfg.CredentialEnv != "GEMINI_API_KEY" || !cfg.UseMockLLM {
		t.Errorf("env overrides not applied: %+v", cfg)
	}
	if cfg.WorkspaceTTL.Std() != 5*time.Minute {
		t.Errorf("unexpected ttl %s", cfg.WorkspaceTTL)
	}
}

func TestLoadAppConfigRejectsMalformedTTL(t *testing.T) {
	_, err := serviceWithEnv("", map[string]string{"PROMPTGEN_WORKSPACE_TTL": "twelve hours"}).LoadAppConfig()
	if err == nil || !strings.Contains(err.Error(), "PROMPTGEN_WORKSPACE_TTL") {
		t.Fatalf("expected a PROMPTGEN_WORKSPACE_TTL error, got %v", err)
	}
}

func TestLoadAppConfigRejectsUnknownProvider(t *testing.T) {
	_, err := serviceWithEnv("", map[string]string{"PROMPTGEN_PROVIDER": "llama"}).LoadAppConfig()
	if err == nil {
		t.Fatal("expected an error for an unknown provider")
	}
}

func TestLoadAppConfigRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app_config.yaml")
	if err := os.WriteFile(path, []byte("provider: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := serviceWithEnv(path, nil).LoadAppConfig(); err == nil {
		t.Fatal("expected a parse error")
	}
}
