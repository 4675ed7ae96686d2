package memory

import (
	"context"

	"wildcraft/internal/app/ports"
	"wildcraft/internal/domain/survival"
)

type EventRepo struct {
	store *Store
}

func NewEventRepo(store *Store) EventRepo {
	return EventRepo{store: store}
}

func (r EventRepo) Append(ctx context.Context, sessionID string, events []survival.DomainEvent) error {
	return r.store.write(ctx, func() error {
		r.store.events[sessionID] = append(r.store.events[sessionID], events...)
		return nil
	})
}

func (r EventRepo) ListBySessionID(ctx context.Context, sessionID string, filter ports.EventFilter) ([]survival.DomainEvent, error) {
	out := []survival.DomainEvent{}
	r.store.read(ctx, func() {
		all := r.store.events[sessionID]
		for i := len(all) - 1; i >= 0; i-- {
			if filter.Limit > 0 && len(out) >= filter.Limit {
				break
			}
			if filter.Match(all[i]) {
				out = append(out, all[i])
			}
		}
	})
	return out, nil
}

// Forget drops a finished session's journal.
func (r EventRepo) Forget(sessionID string) {
	_ = r.store.write(context.Background(), func() error {
		delete(r.store.events, sessionID)
		return nil
	})
}
