package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"shopbot/internal/domain"
)

var (
	ErrNotFound   = errors.New("session not found")
	ErrNilSession = errors.New("session is nil")
)

// Store keeps per-user navigation state. A missing session means Idle.
type Store interface {
	Load(ctx context.Context, userID int64) (*domain.Session, error)
	Save(ctx context.Context, s *domain.Session) error
	Delete(ctx context.Context, userID int64) error
}

// MemoryStore is a process-local Store. Entries older than ttl are treated as missing.
type MemoryStore struct {
	mu    sync.Mutex
	items map[int64]domain.Session
	ttl   time.Duration
	now   func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{items: make(map[int64]domain.Session), ttl: ttl, now: time.Now}
}

func (m *MemoryStore) Load(_ context.Context, userID int64) (*domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.items[userID]
	if !ok {
		return nil, ErrNotFound
	}
	if m.ttl > 0 && m.now().Sub(s.UpdatedAt) > m.ttl {
		delete(m.items, userID)
		return nil, ErrNotFound
	}
	return &s, nil
}

func (m *MemoryStore) Save(_ context.Context, s *domain.Session) error {
	if s == nil {
		return ErrNilSession
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *s
	cp.UpdatedAt = m.now().UTC()
	m.items[s.UserID] = cp
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, userID)
	return nil
}

// Len reports the number of stored sessions, expired ones included.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}
