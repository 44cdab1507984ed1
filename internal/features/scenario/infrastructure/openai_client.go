package infrastructure

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"promptgen/backend/internal/features/scenario/domain"
)

const managerAssistantName = "PromptGen Manager"

// OpenAIOptions tunes the OpenAI client. Zero values use the defaults.
type OpenAIOptions struct {
	BaseURL      string
	PollInterval time.Duration
}

// OpenAIClient uses chat completions for scenarios and the Assistants API for
// the manager chat, so conversation history lives in an OpenAI thread.
type OpenAIClient struct {
	credential   CredentialSource
	baseURL      string
	pollInterval time.Duration

	mu          sync.Mutex
	assistantID string
}

// NewOpenAIClient creates an OpenAI-backed AIClient.
func NewOpenAIClient(credential CredentialSource, opts OpenAIOptions) *OpenAIClient {
	if opts.PollInterval <= 0 {
		opts.PollInterval = time.Second
	}
	return &OpenAIClient{
		credential:   credential,
		baseURL:      opts.BaseURL,
		pollInterval: opts.PollInterval,
	}
}

// Provider implements AIClient.
func (c *OpenAIClient) Provider() string { return "openai" }

func (c *OpenAIClient) sdk() (*openai.Client, error) {
	apiKey := c.credential()
	if apiKey == "" {
		return nil, domain.ErrMissingCredential
	}
	cfg := openai.DefaultConfig(apiKey)
	if c.baseURL != "" {
		cfg.BaseURL = c.baseURL
	}
	return openai.NewClientWithConfig(cfg), nil
}

// Generate implements TextGenerator. The chat completions API has no top-k,
// so that parameter is not sent.
func (c *OpenAIClient) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	client, err := c.sdk()
	if err != nil {
		return "", err
	}

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: req.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.SystemInstruction},
			{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
		},
		Temperature: req.Sampling.Temperature,
		TopP:        req.Sampling.TopP,
	})
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

// StartChat implements ChatStarter by creating a new thread. The persona is
// applied as run instructions on every turn.
func (c *OpenAIClient) StartChat(ctx context.Context, req ChatRequest) (ChatHandle, error) {
	client, err := c.sdk()
	if err != nil {
		return nil, err
	}

	assistantID, err := c.getOrCreateAssistant(ctx, client, req.Model)
	if err != nil {
		return nil, err
	}

	thread, err := client.CreateThread(ctx, openai.ThreadRequest{})
	if err != nil {
		return nil, fmt.Errorf("failed to create thread: %w", err)
	}

	return &openAIThread{
		parent:       c,
		client:       client,
		threadID:     thread.ID,
		assistantID:  assistantID,
		instructions: req.PersonaInstruction,
	}, nil
}

// getOrCreateAssistant reuses the manager assistant across sessions.
func (c *OpenAIClient) getOrCreateAssistant(ctx context.Context, client *openai.Client, model string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.assistantID != "" {
		return c.assistantID, nil
	}

	list, err := client.ListAssistants(ctx, nil, nil, nil, nil)
	if err != nil {
		return "", fmt.Errorf("failed to list assistants: %w", err)
	}
	for _, asst := range list.Assistants {
		if asst.Name != nil && *asst.Name == managerAssistantName {
			c.assistantID = asst.ID
			return asst.ID, nil
		}
	}

	name := managerAssistantName
	instructions := "You are a product leader answering a candidate's questions about an assignment."
	created, err := client.CreateAssistant(ctx, openai.AssistantRequest{
		Name:         &name,
		Instructions: &instructions,
		Model:        model,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create assistant: %w", err)
	}
	c.assistantID = created.ID
	return created.ID, nil
}

type openAIThread struct {
	parent       *OpenAIClient
	client       *openai.Client
	threadID     string
	assistantID  string
	instructions string
}

// Send adds the user turn, runs the assistant and returns its reply.
func (t *openAIThread) Send(ctx context.Context, text string) (string, error) {
	_, err := t.client.CreateMessage(ctx, t.threadID, openai.MessageRequest{
		Role:    "user",
		Content: text,
	})
	if err != nil {
		return "", fmt.Errorf("failed to add message to thread: %w", err)
	}

	run, err := t.client.CreateRun(ctx, t.threadID, openai.RunRequest{
		AssistantID:  t.assistantID,
		Instructions: t.instructions,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create run: %w", err)
	}

	for runPending(run.Status) {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(t.parent.pollInterval):
		}
		run, err = t.client.RetrieveRun(ctx, t.threadID, run.ID)
		if err != nil {
			return "", fmt.Errorf("failed to retrieve run status: %w", err)
		}
	}
	if run.Status != openai.RunStatusCompleted {
		return "", fmt.Errorf("run did not complete successfully, status: %s", run.Status)
	}

	runID := run.ID
	messages, err := t.client.ListMessage(ctx, t.threadID, nil, nil, nil, nil, &runID)
	if err != nil {
		return "", fmt.Errorf("failed to list messages: %w", err)
	}
	for _, msg := range messages.Messages {
		if msg.Role != "assistant" {
			continue
		}
		return messageText(msg), nil
	}
	return "", nil
}

// runPending reports whether a run may still progress on its own. Every other
// status, including requires_action (no tools are registered) and incomplete,
// ends the turn.
func runPending(s openai.RunStatus) bool {
	switch s {
	case openai.RunStatusQueued, openai.RunStatusInProgress, openai.RunStatusCancelling:
		return true
	}
	return false
}

func messageText(msg openai.Message) string {
	var b strings.Builder
	for _, part := range msg.Content {
		if part.Text == nil {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(part.Text.Value)
	}
	return b.String()
}
