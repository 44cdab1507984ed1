package infrastructure

import (
	"context"
	"fmt"
	"sync"
)

// MockClient is an in-process AIClient for local development and tests.
// GenerateFunc and ReplyFunc override the canned behaviour when set.
type MockClient struct {
	GenerateFunc func(ctx context.Context, req GenerateRequest) (string, error)
	ReplyFunc    func(ctx context.Context, text string) (string, error)

	mu            sync.Mutex
	generateCalls int
	replyCalls    int
	chats         []ChatRequest
	lastGenerate  GenerateRequest
}

// NewMockClient returns a MockClient with canned responses.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// Provider implements AIClient.
func (m *MockClient) Provider() string { return "mock" }

// Generate implements TextGenerator.
func (m *MockClient) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	m.mu.Lock()
	m.generateCalls++
	m.lastGenerate = req
	fn := m.GenerateFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, req)
	}
	return mockScenario, nil
}

// StartChat implements ChatStarter.
func (m *MockClient) StartChat(ctx context.Context, req ChatRequest) (ChatHandle, error) {
	m.mu.Lock()
	m.chats = append(m.chats, req)
	m.mu.Unlock()
	return &mockChat{parent: m}, nil
}

// GenerateCalls reports how many generation calls reached the client.
func (m *MockClient) GenerateCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.generateCalls
}

// ReplyCalls reports how many chat turns reached the client.
func (m *MockClient) ReplyCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.replyCalls
}

// Chats returns the requests used to open chats, oldest first.
func (m *MockClient) Chats() []ChatRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ChatRequest(nil), m.chats...)
}

// LastGenerate returns the most recent generation request.
func (m *MockClient) LastGenerate() GenerateRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastGenerate
}

type mockChat struct {
	parent *MockClient
}

func (c *mockChat) Send(ctx context.Context, text string) (string, error) {
	c.parent.mu.Lock()
	c.parent.replyCalls++
	fn := c.parent.ReplyFunc
	c.parent.mu.Unlock()

	if fn != nil {
		return fn(ctx, text)
	}
	return fmt.Sprintf("Good question. On %q, I'm looking to you to make the call and walk me through the trade-offs.", text), nil
}

const mockScenario = `# Checkout Recovery: Reducing Drop-off in Saved Carts

## 1. The Brief
You are a designer at a company analogous to Stripe. We shipped saved carts last quarter, but completion has stalled.

## 2. Context & Data
- Cart completion is down 4% since launch.
- Support tickets mention "lost items" weekly.

## 3. The Problem
Returning users land on an empty cart screen before their saved items load.

## 4. Constraints
Engineering capacity is limited to one squad for six weeks.

## 5. The Task
Redesign the return-to-cart flow.

## 6. Deliverables
- A user flow
- **Two** annotated key screens

## 7. Success Metric
Cart completion returns to pre-launch levels within one quarter.
`
