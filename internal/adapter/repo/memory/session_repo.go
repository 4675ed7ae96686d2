package memory

import (
	"context"
	"time"

	"wildcraft/internal/app/ports"
	"wildcraft/internal/domain/survival"
)

type SessionRepo struct {
	store *Store
}

func NewSessionRepo(store *Store) SessionRepo {
	return SessionRepo{store: store}
}

func (r SessionRepo) Create(ctx context.Context, rec ports.SessionRecord) error {
	return r.store.write(ctx, func() error {
		if _, ok := r.store.sessions[rec.ID]; ok {
			return ports.ErrConflict
		}
		if rec.Status == "" {
			rec.Status = ports.SessionActive
		}
		r.store.sessions[rec.ID] = rec
		return nil
	})
}

func (r SessionRepo) Get(ctx context.Context, sessionID string) (ports.SessionRecord, error) {
	var (
		rec ports.SessionRecord
		ok  bool
	)
	r.store.read(ctx, func() {
		rec, ok = r.store.sessions[sessionID]
	})
	if !ok {
		return ports.SessionRecord{}, ports.ErrNotFound
	}
	return rec, nil
}

func (r SessionRepo) MarkReset(ctx context.Context, sessionID string, _ time.Time) error {
	return r.store.write(ctx, func() error {
		rec, ok := r.store.sessions[sessionID]
		if !ok {
			return ports.ErrNotFound
		}
		rec.Resets++
		rec.Status = ports.SessionActive
		rec.EndedAt = nil
		rec.DeathCause = ""
		r.store.sessions[sessionID] = rec
		return nil
	})
}

func (r SessionRepo) Close(ctx context.Context, sessionID string, cause survival.DeathCause, endedAt time.Time) error {
	return r.store.write(ctx, func() error {
		rec, ok := r.store.sessions[sessionID]
		if !ok {
			return ports.ErrNotFound
		}
		rec.Status = ports.SessionOver
		rec.DeathCause = cause
		rec.EndedAt = &endedAt
		r.store.sessions[sessionID] = rec
		return nil
	})
}
