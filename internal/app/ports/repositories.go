package ports

import (
	"context"
	"time"

	"wildcraft/internal/domain/survival"
)

// EventFilter narrows a journal listing. Zero fields do not filter; Since and
// Until are inclusive. Limit applies after the other filters.
type EventFilter struct {
	Type  string
	Since time.Time
	Until time.Time
	Limit int
}

// Match reports whether evt passes every filter except Limit.
func (f EventFilter) Match(evt survival.DomainEvent) bool {
	if f.Type != "" && evt.Type != f.Type {
		return false
	}
	if !f.Since.IsZero() && evt.OccurredAt.Before(f.Since) {
		return false
	}
	if !f.Until.IsZero() && evt.OccurredAt.After(f.Until) {
		return false
	}
	return true
}

type EventRepository interface {
	Append(ctx context.Context, sessionID string, events []survival.DomainEvent) error
	// ListBySessionID returns the newest matching events first.
	ListBySessionID(ctx context.Context, sessionID string, filter EventFilter) ([]survival.DomainEvent, error)
}

type SessionStatus string

const (
	SessionActive SessionStatus = "active"
	SessionOver   SessionStatus = "over"
)

type SessionRecord struct {
	ID         string
	Status     SessionStatus
	Resets     int
	StartedAt  time.Time
	EndedAt    *time.Time
	DeathCause survival.DeathCause
}

type SessionRepository interface {
	Create(ctx context.Context, rec SessionRecord) error
	Get(ctx context.Context, sessionID string) (SessionRecord, error)
	MarkReset(ctx context.Context, sessionID string, at time.Time) error
	Close(ctx context.Context, sessionID string, cause survival.DeathCause, endedAt time.Time) error
}
