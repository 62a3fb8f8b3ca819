package tokenstore

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/invorya-dashboard/internal/application/ports"
)

var _ ports.TokenStore = (*MemoryStore)(nil)

type entry struct {
	Value     string    `json:"value"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (e entry) expired(now time.Time) bool {
	return !e.ExpiresAt.IsZero() && !now.Before(e.ExpiresAt)
}

// MemoryStore TokenStore en memoria del proceso (tests y TOKEN_STORE=memory).
type MemoryStore struct {
	mu      sync.Mutex
	entries map[ports.TokenKind]entry
	now     func() time.Time
}

// NewMemoryStore construye un store vacío.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[ports.TokenKind]entry), now: time.Now}
}

func (s *MemoryStore) Set(_ context.Context, kind ports.TokenKind, value string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[kind] = newEntry(value, ttl, s.now())
	return nil
}

func (s *MemoryStore) Get(_ context.Context, kind ports.TokenKind) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[kind]
	if !ok {
		return "", false, nil
	}
	if e.expired(s.now()) {
		delete(s.entries, kind)
		return "", false, nil
	}
	return e.Value, true, nil
}

func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, ports.TokenAccess)
	delete(s.entries, ports.TokenRefresh)
	return nil
}

// ttl <= 0 significa sin expiración.
func newEntry(value string, ttl time.Duration, now time.Time) entry {
	e := entry{Value: value}
	if ttl > 0 {
		e.ExpiresAt = now.Add(ttl)
	}
	return e
}
