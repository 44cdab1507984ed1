package domain

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"promptgen/backend/internal/features/scenario/infrastructure"
)

var (
	// ErrEmptyMessage is returned when a turn is blank after trimming.
	ErrEmptyMessage = errors.New("message is empty")
	// ErrTurnInProgress is returned when a turn is sent while another is awaiting a reply.
	ErrTurnInProgress = errors.New("a reply is still pending")
)

// Speaker identifies who authored a message.
type Speaker string

const (
	SpeakerUser      Speaker = "user"
	SpeakerAssistant Speaker = "assistant"
)

// Message is one immutable entry in a conversation.
type Message struct {
	Speaker Speaker   `json:"speaker"`
	Text    string    `json:"text"`
	At      time.Time `json:"at"`
}

// Session binds a remote conversation handle to its local message mirror.
// The mirror exists for display only; the remote side owns the history.
type Session struct {
	ID        string
	Seniority string
	CreatedAt time.Time

	handle  infrastructure.ChatHandle
	pending atomic.Bool

	mu       sync.RWMutex
	messages []Message
}

// NewSession creates a session around an opened remote handle.
func NewSession(id, seniority string, handle infrastructure.ChatHandle, at time.Time) *Session {
	return &Session{ID: id, Seniority: seniority, handle: handle, CreatedAt: at}
}

// Handle returns the opaque remote conversation handle.
func (s *Session) Handle() infrastructure.ChatHandle {
	return s.handle
}

// Append adds a message to the mirror.
func (s *Session) Append(m Message) {
	s.mu.Lock()
	s.messages = append(s.messages, m)
	s.mu.Unlock()
}

// Messages returns a copy of the mirror, oldest first.
func (s *Session) Messages() []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Message(nil), s.messages...)
}

// BeginTurn claims the session for one turn. It returns false if a turn is
// already in flight.
func (s *Session) BeginTurn() bool {
	return s.pending.CompareAndSwap(false, true)
}

// EndTurn releases the claim taken by BeginTurn.
func (s *Session) EndTurn() {
	s.pending.Store(false)
}

// Pending reports whether a turn is awaiting a reply.
func (s *Session) Pending() bool {
	return s.pending.Load()
}
