package email

import (
	"context"
	"sync"
)

// MemorySender records messages instead of delivering them. Used in tests.
type MemorySender struct {
	mu       sync.Mutex
	Messages []Message
	Err      error
}

// NewMemorySender creates an in-memory sender
func NewMemorySender() *MemorySender {
	return &MemorySender{}
}

// Send records the message, or fails with the configured error
func (s *MemorySender) Send(_ context.Context, msg Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.Messages = append(s.Messages, msg)
	return nil
}

// Sent returns a copy of the recorded messages
func (s *MemorySender) Sent() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.Messages))
	copy(out, s.Messages)
	return out
}
