package infrastructure

import (
	"context"
	"os"
	"strings"
)

// SamplingParams are the fixed sampling settings sent with every generation.
type SamplingParams struct {
	Temperature float32 `json:"temperature"`
	TopK        float32 `json:"top_k"`
	TopP        float32 `json:"top_p"`
}

// GenerateRequest is one single-shot generation call.
type GenerateRequest struct {
	Model             string
	SystemInstruction string
	Prompt            string
	Sampling          SamplingParams
}

// ChatRequest opens a remote conversation seeded with a persona.
type ChatRequest struct {
	Model              string
	PersonaInstruction string
}

// TextGenerator performs a single generation call and returns the raw text.
type TextGenerator interface {
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}

// ChatHandle is an opaque reference to a conversation whose history is kept
// by the remote service.
type ChatHandle interface {
	Send(ctx context.Context, text string) (string, error)
}

// ChatStarter opens remote conversations.
type ChatStarter interface {
	StartChat(ctx context.Context, req ChatRequest) (ChatHandle, error)
}

// AIClient is the full surface a provider exposes to the application.
type AIClient interface {
	TextGenerator
	ChatStarter
	// Provider returns the short provider name, e.g. "gemini".
	Provider() string
}

// CredentialSource resolves the API credential at call time. An empty string
// means no credential is configured.
type CredentialSource func() string

// EnvCredential reads the credential from the named environment variable on
// every call, so a key added after startup is picked up.
func EnvCredential(name string) CredentialSource {
	return func() string {
		return strings.TrimSpace(os.Getenv(name))
	}
}

// StaticCredential always returns key. Intended for tests.
func StaticCredential(key string) CredentialSource {
	return func() string { return key }
}
