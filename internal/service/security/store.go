package security

import (
	"context"
	"sync"

	"tiretrack/internal/domain"
)

// SessionStore is the durable mirror of the current session. It is written
// only by the session manager; whole-session replacement on every write means
// no partial updates can be observed.
//
// Load returns domain.ErrNoSession when nothing is saved and
// domain.ErrCorruptSession when the saved payload cannot be trusted.
// Implemented by repository.SessionRepo for SQLite persistence.
type SessionStore interface {
	Save(ctx context.Context, s *domain.Session) error
	Load(ctx context.Context) (*domain.Session, error)
	Clear(ctx context.Context) error
}

// MemoryStore is an in-process SessionStore. Used in tests and anywhere
// durability across restarts is not wanted.
type MemoryStore struct {
	mu      sync.Mutex
	session *domain.Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Save(_ context.Context, s *domain.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *s
	m.session = &copied
	return nil
}

func (m *MemoryStore) Load(_ context.Context) (*domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session == nil {
		return nil, domain.ErrNoSession
	}
	copied := *m.session
	if err := copied.Validate(); err != nil {
		return nil, domain.ErrCorruptSession
	}
	return &copied, nil
}

func (m *MemoryStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = nil
	return nil
}
