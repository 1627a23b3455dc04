package session

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory session store, used in tests.
type MemoryStore struct {
	mu      sync.RWMutex
	session Session
	set     bool
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Load(_ context.Context) (Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.set {
		return Session{}, ErrNoSession
	}

	return m.session, nil
}

func (m *MemoryStore) Save(_ context.Context, s Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.session = s
	m.set = true

	return nil
}

func (m *MemoryStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.session = Session{}
	m.set = false

	return nil
}
