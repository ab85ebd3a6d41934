// Package memory provides in-process adapters: session and listing stores for
// single-instance deployments and tests, plus a capturing audit sink.
package memory

import (
	"context"
	"sync"

	"github.com/bolibazaar/bolibazaar/pkg/domain"
)

// SessionStore implements ports.SessionStore in memory.
// Safe for concurrent use.
type SessionStore struct {
	mu   sync.RWMutex
	data map[string]*domain.Session
}

// NewSessionStore creates an empty in-memory session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{data: make(map[string]*domain.Session)}
}

// Save persists a deep copy of the session so callers cannot mutate stored
// state through retained pointers.
func (s *SessionStore) Save(ctx context.Context, session *domain.Session) error {
	copied := session.Clone()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[session.ID] = copied
	return nil
}

// Load retrieves a copy of the session.
func (s *SessionStore) Load(ctx context.Context, sessionID string) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.data[sessionID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return session.Clone(), nil
}

// Delete removes the session.
func (s *SessionStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, sessionID)
	return nil
}

// List returns the IDs of stored sessions.
func (s *SessionStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	return ids, nil
}
