package wizard

import (
	"context"
	"sync"
)

// Store persists wizard sessions for the lifetime of a visit. Update applies
// a mutation atomically with respect to other updates of the same session;
// implementations may invoke fn more than once, so it must not have side
// effects outside the session it receives.
type Store interface {
	Create(ctx context.Context, s *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Update(ctx context.Context, id string, fn func(*Session) error) (*Session, error)
	Delete(ctx context.Context, id string) error
}

// MemoryStore keeps sessions in process memory. Suitable for development
// and single-instance deployments.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*Session)}
}

// Create stores a new session.
func (m *MemoryStore) Create(ctx context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *s
	m.sessions[s.ID] = &cp
	return nil
}

// Get returns a copy of the session with the given id.
func (m *MemoryStore) Get(ctx context.Context, id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	cp := *s
	cp.AddOns = append([]string(nil), s.AddOns...)
	return &cp, nil
}

// Update applies fn to the stored session under the store lock. When fn
// returns an error the stored session is left untouched.
func (m *MemoryStore) Update(ctx context.Context, id string, fn func(*Session) error) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}

	work := *s
	work.AddOns = append([]string(nil), s.AddOns...)
	if err := fn(&work); err != nil {
		return nil, err
	}
	m.sessions[id] = &work

	cp := work
	cp.AddOns = append([]string(nil), work.AddOns...)
	return &cp, nil
}

// Delete removes a session; deleting a missing session is not an error.
func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}
