package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"wildcraft/internal/app/ports"
	"wildcraft/internal/domain/survival"
)

var (
	_ ports.EventRepository   = EventRepo{}
	_ ports.SessionRepository = SessionRepo{}
	_ ports.TxManager         = TxManager{}
)

func TestEventRepo_ListNewestFirst(t *testing.T) {
	store := NewStore()
	repo := NewEventRepo(store)
	ctx := context.Background()
	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, typ := range []string{survival.EventGameStarted, survival.EventMoved, survival.EventItemUsed} {
		evt := survival.DomainEvent{Type: typ, OccurredAt: t0.Add(time.Duration(i) * time.Second)}
		if err := repo.Append(ctx, "s1", []survival.DomainEvent{evt}); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	_ = repo.Append(ctx, "s2", []survival.DomainEvent{{Type: survival.EventGameStarted}})

	got, err := repo.ListBySessionID(ctx, "s1", ports.EventFilter{Limit: 2})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 || got[0].Type != survival.EventItemUsed || got[1].Type != survival.EventMoved {
		t.Fatalf("unexpected order: %+v", got)
	}
	all, _ := repo.ListBySessionID(ctx, "s1", ports.EventFilter{})
	if len(all) != 3 {
		t.Fatalf("unbounded list mismatch: got=%d want=3", len(all))
	}
}

func TestEventRepo_FiltersBeforeLimit(t *testing.T) {
	repo := NewEventRepo(NewStore())
	ctx := context.Background()
	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	_ = repo.Append(ctx, "s1", []survival.DomainEvent{{Type: survival.EventGameOver, OccurredAt: t0}})
	for i := 1; i <= 20; i++ {
		_ = repo.Append(ctx, "s1", []survival.DomainEvent{{Type: survival.EventVitalsDecayed, OccurredAt: t0.Add(time.Duration(i) * time.Second)}})
	}

	got, err := repo.ListBySessionID(ctx, "s1", ports.EventFilter{Type: survival.EventGameOver, Limit: 5})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].Type != survival.EventGameOver {
		t.Fatalf("type filter mismatch: got=%+v", got)
	}

	got, _ = repo.ListBySessionID(ctx, "s1", ports.EventFilter{Since: t0.Add(5 * time.Second), Until: t0.Add(7 * time.Second), Limit: 2})
	if len(got) != 2 || !got[0].OccurredAt.Equal(t0.Add(7*time.Second)) || !got[1].OccurredAt.Equal(t0.Add(6*time.Second)) {
		t.Fatalf("window filter mismatch: got=%+v", got)
	}
}

func TestSessionRepo_Lifecycle(t *testing.T) {
	store := NewStore()
	repo := NewSessionRepo(store)
	ctx := context.Background()
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	if _, err := repo.Get(ctx, "s1"); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := repo.Create(ctx, ports.SessionRecord{ID: "s1", StartedAt: start}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.Create(ctx, ports.SessionRecord{ID: "s1"}); !errors.Is(err, ports.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if err := repo.Close(ctx, "s1", survival.DeathCauseStarvation, start.Add(time.Hour)); err != nil {
		t.Fatalf("close: %v", err)
	}
	rec, _ := repo.Get(ctx, "s1")
	if rec.Status != ports.SessionOver || rec.DeathCause != survival.DeathCauseStarvation || rec.EndedAt == nil {
		t.Fatalf("unexpected closed record: %+v", rec)
	}
	if err := repo.MarkReset(ctx, "s1", start.Add(2*time.Hour)); err != nil {
		t.Fatalf("mark reset: %v", err)
	}
	rec, _ = repo.Get(ctx, "s1")
	if rec.Status != ports.SessionActive || rec.Resets != 1 || rec.EndedAt != nil {
		t.Fatalf("unexpected reset record: %+v", rec)
	}
	if err := repo.MarkReset(ctx, "missing", start); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTxManager_ReposJoinTransaction(t *testing.T) {
	store := NewStore()
	tx := NewTxManager(store)
	events := NewEventRepo(store)
	sessions := NewSessionRepo(store)

	err := tx.RunInTx(context.Background(), func(ctx context.Context) error {
		if err := sessions.Create(ctx, ports.SessionRecord{ID: "s1"}); err != nil {
			return err
		}
		if err := events.Append(ctx, "s1", []survival.DomainEvent{{Type: survival.EventGameStarted}}); err != nil {
			return err
		}
		return tx.RunInTx(ctx, func(ctx context.Context) error {
			_, err := sessions.Get(ctx, "s1")
			return err
		})
	})
	if err != nil {
		t.Fatalf("tx: %v", err)
	}
	got, _ := events.ListBySessionID(context.Background(), "s1", ports.EventFilter{Limit: 10})
	if len(got) != 1 {
		t.Fatalf("event count mismatch: got=%d want=1", len(got))
	}
}

func TestEventRepo_Forget(t *testing.T) {
	repo := NewEventRepo(NewStore())
	ctx := context.Background()
	_ = repo.Append(ctx, "s1", []survival.DomainEvent{{Type: survival.EventGameStarted}})
	_ = repo.Append(ctx, "s2", []survival.DomainEvent{{Type: survival.EventGameStarted}})

	repo.Forget("s1")
	if got, _ := repo.ListBySessionID(ctx, "s1", ports.EventFilter{}); len(got) != 0 {
		t.Fatalf("forgotten journal mismatch: got=%d want=0", len(got))
	}
	if got, _ := repo.ListBySessionID(ctx, "s2", ports.EventFilter{}); len(got) != 1 {
		t.Fatalf("other journal mismatch: got=%d want=1", len(got))
	}
}
