package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"promptgen/backend/internal/features/manager/domain"
	scenariodomain "promptgen/backend/internal/features/scenario/domain"
	"promptgen/backend/internal/features/scenario/infrastructure"
	"promptgen/backend/internal/observability"
)

const (
	// Greeting seeds every new conversation.
	Greeting = "I've sent over the brief. Let me know if you have any questions before you get started."
	// FallbackReply replaces any failed turn so the roleplay is never broken by error text.
	FallbackReply = "Sorry, I got pulled into a meeting. Can you ask that again?"
)

// ManagerService defines the interface for the manager conversation.
type ManagerService interface {
	Open(ctx context.Context, cfg scenariodomain.Configuration, scenarioText string) (*domain.Session, error)
	Send(ctx context.Context, session *domain.Session, text string) (string, error)
}

// managerService is the implementation of ManagerService.
type managerService struct {
	starter infrastructure.ChatStarter
	model   string
	now     func() time.Time
}

// NewManagerService creates a new instance of managerService.
func NewManagerService(starter infrastructure.ChatStarter, model string) ManagerService {
	return &managerService{starter: starter, model: model, now: time.Now}
}

// Open starts a remote conversation seeded with the scenario.
func (s *managerService) Open(ctx context.Context, cfg scenariodomain.Configuration, scenarioText string) (*domain.Session, error) {
	handle, err := s.starter.StartChat(ctx, infrastructure.ChatRequest{
		Model:              s.model,
		PersonaInstruction: PersonaInstruction(cfg, scenarioText),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open manager chat: %w", err)
	}

	session := domain.NewSession(uuid.NewString(), cfg.Seniority, handle, s.now())
	session.Append(domain.Message{Speaker: domain.SpeakerAssistant, Text: Greeting, At: s.now()})

	observability.LoggerFromContext(ctx).Info("manager chat opened",
		slog.String("session_id", session.ID),
		slog.String("tone", string(ToneFor(cfg.Seniority))),
	)
	return session, nil
}

// Send forwards one user turn as typed. Remote failures are logged and
// answered with FallbackReply; the returned error is only for rejected input.
func (s *managerService) Send(ctx context.Context, session *domain.Session, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", domain.ErrEmptyMessage
	}
	if !session.BeginTurn() {
		return "", domain.ErrTurnInProgress
	}
	defer session.EndTurn()

	session.Append(domain.Message{Speaker: domain.SpeakerUser, Text: text, At: s.now()})

	log := observability.LoggerFromContext(ctx).With(slog.String("session_id", session.ID))

	reply, err := session.Handle().Send(ctx, text)
	if err == nil && strings.TrimSpace(reply) == "" {
		err = errors.New("empty reply")
	}
	if err != nil {
		log.Warn("manager reply failed", slog.Any("error", err))
		reply = FallbackReply
	}

	session.Append(domain.Message{Speaker: domain.SpeakerAssistant, Text: reply, At: s.now()})
	return reply, nil
}
