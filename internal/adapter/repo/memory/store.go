package memory

import (
	"context"
	"sync"

	"wildcraft/internal/app/ports"
	"wildcraft/internal/domain/survival"
)

// Store keeps journaled events and session records in process memory. It is
// the default backend when no database is configured.
type Store struct {
	mu       sync.RWMutex
	events   map[string][]survival.DomainEvent
	sessions map[string]ports.SessionRecord
}

func NewStore() *Store {
	return &Store{
		events:   make(map[string][]survival.DomainEvent),
		sessions: make(map[string]ports.SessionRecord),
	}
}

type txKey struct{}

// inTx reports whether ctx carries a transaction opened on this store, in
// which case the write lock is already held.
func (s *Store) inTx(ctx context.Context) bool {
	held, _ := ctx.Value(txKey{}).(*Store)
	return held == s
}

func (s *Store) read(ctx context.Context, fn func()) {
	if !s.inTx(ctx) {
		s.mu.RLock()
		defer s.mu.RUnlock()
	}
	fn()
}

func (s *Store) write(ctx context.Context, fn func() error) error {
	if !s.inTx(ctx) {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	return fn()
}
