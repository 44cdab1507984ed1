package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// AppConfig represents the application configuration.
type AppConfig struct {
	Port          string      `json:"port" yaml:"port"`
	LogLevel      string      `json:"log_level" yaml:"log_level"`
	Provider      string      `json:"provider" yaml:"provider"`
	Model         string      `json:"model" yaml:"model"`
	ChatModel     string      `json:"chat_model" yaml:"chat_model"`
	CredentialEnv string      `json:"credential_env" yaml:"credential_env"`
	BaseURL       string      `json:"base_url,omitempty" yaml:"base_url,omitempty"`
	UseMockLLM    bool        `json:"use_mock_llm" yaml:"use_mock_llm"`
	WorkspaceTTL  Duration    `json:"workspace_ttl" yaml:"workspace_ttl"`
	ModelParams   ModelParams `json:"model_params" yaml:"model_params"`
}

// ModelParams defines the sampling parameters for the AI model.
type ModelParams struct {
	Temperature float32 `json:"temperature" yaml:"temperature"`
	TopK        float32 `json:"top_k" yaml:"top_k"`
	TopP        float32 `json:"top_p" yaml:"top_p"`
}

// PublicConfig is the subset of AppConfig that is safe to show a browser.
type PublicConfig struct {
	Provider    string      `json:"provider"`
	Model       string      `json:"model"`
	ChatModel   string      `json:"chat_model"`
	ModelParams ModelParams `json:"model_params"`
}

// Public strips everything a browser has no business seeing.
func (c *AppConfig) Public() PublicConfig {
	return PublicConfig{
		Provider:    c.Provider,
		Model:       c.Model,
		ChatModel:   c.ChatModel,
		ModelParams: c.ModelParams,
	}
}

// Duration is a time.Duration that decodes from "12h"-style strings in both
// YAML and JSON. Plain numbers are read as nanoseconds.
type Duration time.Duration

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

func (d Duration) String() string { return time.Duration(d).String() }

// UnmarshalText implements encoding.TextUnmarshaler, which yaml.v3 uses for
// scalars.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		n, nerr := strconv.ParseInt(string(text), 10, 64)
		if nerr != nil {
			return fmt.Errorf("invalid duration %q: %w", text, err)
		}
		v = time.Duration(n)
	}
	*d = Duration(v)
	return nil
}

// UnmarshalJSON accepts either a duration string or a number of nanoseconds.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return d.UnmarshalText([]byte(s))
	}
	var n int64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("duration must be a string or nanoseconds: %s", data)
	}
	*d = Duration(n)
	return nil
}

// MarshalJSON writes the duration in its string form.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}
