package memory

import (
	"context"
	"sync"

	"github.com/bolibazaar/bolibazaar/pkg/domain"
)

// AuditSink implements ports.AuditSink by holding events in memory. Tests use
// it to assert on emitted events; the CLI chat mode uses it as a cheap sink.
type AuditSink struct {
	mu     sync.Mutex
	events []domain.AuditEvent
}

// NewAuditSink creates an empty in-memory sink.
func NewAuditSink() *AuditSink {
	return &AuditSink{}
}

// Emit appends the event.
func (s *AuditSink) Emit(ctx context.Context, event domain.AuditEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

// Events returns a copy of everything emitted so far.
func (s *AuditSink) Events() []domain.AuditEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.AuditEvent, len(s.events))
	copy(out, s.events)
	return out
}
