package session

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory session store.
// Suitable for development, testing, and single-instance deployments;
// sessions do not survive process restarts.
type MemoryStore struct {
	mu      sync.RWMutex
	byToken map[string]*Session
	byID    map[string]string // id -> token
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byToken: make(map[string]*Session),
		byID:    make(map[string]string),
	}
}

// Create persists a new session.
func (m *MemoryStore) Create(_ context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byToken[s.Token] = s
	m.byID[s.ID] = s.Token
	return nil
}

// Get retrieves a session by its token.
func (m *MemoryStore) Get(_ context.Context, token string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.byToken[token]
	m.mu.RUnlock()

	if !ok {
		return nil, ErrNotFound
	}
	if s.IsExpired() {
		return nil, ErrExpired
	}
	return s, nil
}

// Update saves changes to an existing session.
// Handles token rotation by re-indexing the session under its current token.
func (m *MemoryStore) Update(_ context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if oldToken, ok := m.byID[s.ID]; ok && oldToken != s.Token {
		delete(m.byToken, oldToken)
	}
	m.byToken[s.Token] = s
	m.byID[s.ID] = s.Token
	return nil
}

// Delete removes a session by its ID.
func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	token, ok := m.byID[id]
	if !ok {
		return nil
	}
	delete(m.byToken, token)
	delete(m.byID, id)
	return nil
}

// DeleteExpired removes all expired sessions.
func (m *MemoryStore) DeleteExpired(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var deleted int64
	for token, s := range m.byToken {
		if s.IsExpired() {
			delete(m.byToken, token)
			delete(m.byID, s.ID)
			deleted++
		}
	}
	return deleted, nil
}

var _ Store = (*MemoryStore)(nil)
