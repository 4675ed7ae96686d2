package gormrepo

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"wildcraft/internal/app/ports"
	"wildcraft/internal/domain/survival"
	"wildcraft/migrations"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := os.Getenv("WILDCRAFT_DB_DSN")
	if dsn == "" {
		t.Skip("WILDCRAFT_DB_DSN is required for integration test")
	}
	db, err := OpenPostgres(dsn)
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	if _, err := ApplyMigrations(context.Background(), db, migrations.FS); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestSessionRepo_Lifecycle(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewSessionRepo(db)
	id := "it-" + uuid.NewString()
	t.Cleanup(func() { db.Exec("DELETE FROM game_sessions WHERE session_id = ?", id) })

	start := time.Now().UTC().Truncate(time.Second)
	if err := repo.Create(ctx, ports.SessionRecord{ID: id, StartedAt: start}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.Create(ctx, ports.SessionRecord{ID: id, StartedAt: start}); !errors.Is(err, ports.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if err := repo.Close(ctx, id, survival.DeathCauseDehydration, start.Add(time.Minute)); err != nil {
		t.Fatalf("close: %v", err)
	}
	got, err := repo.Get(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != ports.SessionOver || got.DeathCause != survival.DeathCauseDehydration || got.EndedAt == nil {
		t.Fatalf("unexpected closed record: %+v", got)
	}
	if err := repo.MarkReset(ctx, id, start.Add(2*time.Minute)); err != nil {
		t.Fatalf("mark reset: %v", err)
	}
	got, _ = repo.Get(ctx, id)
	if got.Status != ports.SessionActive || got.Resets != 1 || got.EndedAt != nil {
		t.Fatalf("unexpected reset record: %+v", got)
	}
	if _, err := repo.Get(ctx, "it-missing-"+uuid.NewString()); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestEventRepo_AppendAndListInTx(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	events := NewEventRepo(db)
	tx := NewTxManager(db)
	id := "it-" + uuid.NewString()
	t.Cleanup(func() { db.Exec("DELETE FROM domain_events WHERE session_id = ?", id) })

	at := time.Now().UTC().Truncate(time.Millisecond)
	batch := []survival.DomainEvent{
		{Type: survival.EventMoved, OccurredAt: at, Payload: map[string]any{"x": 1}},
		{Type: survival.EventVitalsDecayed, OccurredAt: at, Payload: map[string]any{"after": survival.FullVitals()}},
	}
	err := tx.RunInTx(ctx, func(ctx context.Context) error {
		return events.Append(ctx, id, batch)
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	got, err := events.ListBySessionID(ctx, id, ports.EventFilter{Limit: 10})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 || got[0].Type != survival.EventVitalsDecayed || got[1].Type != survival.EventMoved {
		t.Fatalf("unexpected order: %+v", got)
	}
	after, ok := got[0].Payload["after"].(map[string]any)
	if !ok || after["health"] == nil {
		t.Fatalf("payload did not round trip: %+v", got[0].Payload)
	}

	moved, err := events.ListBySessionID(ctx, id, ports.EventFilter{Type: survival.EventMoved, Since: at, Until: at, Limit: 1})
	if err != nil {
		t.Fatalf("filtered list: %v", err)
	}
	if len(moved) != 1 || moved[0].Type != survival.EventMoved {
		t.Fatalf("filtered list mismatch: %+v", moved)
	}
}
