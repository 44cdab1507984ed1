package infrastructure

import "fmt"

// ClientOptions selects and configures a provider.
type ClientOptions struct {
	Provider      string
	CredentialEnv string
	BaseURL       string
	UseMock       bool
}

// NewAIClient builds the AIClient for the configured provider. Credentials
// are not checked here; a missing key surfaces per call.
func NewAIClient(opts ClientOptions) (AIClient, error) {
	if opts.UseMock {
		return NewMockClient(), nil
	}

	credential := EnvCredential(opts.CredentialEnv)
	switch opts.Provider {
	case "gemini":
		return NewGeminiClient(credential, GeminiOptions{BaseURL: opts.BaseURL}), nil
	case "openai":
		return NewOpenAIClient(credential, OpenAIOptions{BaseURL: opts.BaseURL}), nil
	default:
		return nil, fmt.Errorf("unsupported provider %q", opts.Provider)
	}
}
