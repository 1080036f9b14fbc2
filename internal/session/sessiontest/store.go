// Package sessiontest provides an in-memory session.Store for tests.
package sessiontest

import (
	"context"
	"sync"
	"time"

	"agribot/internal/session"
)

type Store struct {
	mu       sync.Mutex
	sessions map[string]session.Session
}

func NewStore() *Store {
	return &Store{sessions: make(map[string]session.Session)}
}

func (m *Store) Save(_ context.Context, s *session.Session, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = *s
	return nil
}

func (m *Store) Load(_ context.Context, id string) (*session.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, session.ErrNoSession
	}
	return &s, nil
}

func (m *Store) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

// Len reports how many sessions are stored.
func (m *Store) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
