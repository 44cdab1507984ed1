package infrastructure

import (
	"context"
	"fmt"

	"google.golang.org/genai"
	"promptgen/backend/internal/features/scenario/domain"
)

// GeminiClient talks to the Gemini API. A fresh SDK client is built per call
// because the credential is resolved at call time.
type GeminiClient struct {
	credential CredentialSource
	baseURL    string
}

// GeminiOptions tunes the Gemini client. An empty BaseURL uses the public API.
type GeminiOptions struct {
	BaseURL string
}

// NewGeminiClient creates a Gemini-backed AIClient.
func NewGeminiClient(credential CredentialSource, opts GeminiOptions) *GeminiClient {
	return &GeminiClient{credential: credential, baseURL: opts.BaseURL}
}

// Provider implements AIClient.
func (g *GeminiClient) Provider() string { return "gemini" }

func (g *GeminiClient) sdk(ctx context.Context) (*genai.Client, error) {
	apiKey := g.credential()
	if apiKey == "" {
		return nil, domain.ErrMissingCredential
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: g.baseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	return client, nil
}

// Generate implements TextGenerator.
func (g *GeminiClient) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	client, err := g.sdk(ctx)
	if err != nil {
		return "", err
	}

	temp := req.Sampling.Temperature
	topK := req.Sampling.TopK
	topP := req.Sampling.TopP

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(req.SystemInstruction, genai.RoleUser),
		Temperature:       &temp,
		TopK:              &topK,
		TopP:              &topP,
	}

	res, err := client.Models.GenerateContent(ctx, req.Model, genai.Text(req.Prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}
	return res.Text(), nil
}

// StartChat implements ChatStarter. The SDK chat object carries the history.
func (g *GeminiClient) StartChat(ctx context.Context, req ChatRequest) (ChatHandle, error) {
	client, err := g.sdk(ctx)
	if err != nil {
		return nil, err
	}

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(req.PersonaInstruction, genai.RoleUser),
	}
	chat, err := client.Chats.Create(ctx, req.Model, cfg, nil)
	if err != nil {
		return nil, fmt.Errorf("gemini create chat: %w", err)
	}
	return &geminiChat{chat: chat}, nil
}

type geminiChat struct {
	chat *genai.Chat
}

func (c *geminiChat) Send(ctx context.Context, text string) (string, error) {
	res, err := c.chat.SendMessage(ctx, genai.Part{Text: text})
	if err != nil {
		return "", fmt.Errorf("gemini send message: %w", err)
	}
	return res.Text(), nil
}
