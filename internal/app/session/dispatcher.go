package session

import (
	"context"
	"log/slog"
	"sync/atomic"

	"wildcraft/internal/app/ports"
	"wildcraft/internal/domain/survival"
)

const defaultDispatchBuffer = 1024

type DispatcherConfig struct {
	Events   ports.EventRepository
	Sessions ports.SessionRepository
	Tx       ports.TxManager
	Notifier ports.Notifier
	Metrics  ports.CommandMetrics
	Buffer   int
	Logger   *slog.Logger
}

type batch struct {
	sessionID string
	events    []survival.DomainEvent
}

// Dispatcher moves events off the writer goroutines: it journals them,
// keeps session lifecycle records current and publishes notifications.
type Dispatcher struct {
	cfg     DispatcherConfig
	queue   chan batch
	dropped atomic.Uint64
	log     *slog.Logger
}

func NewDispatcher(cfg DispatcherConfig) *Dispatcher {
	size := cfg.Buffer
	if size <= 0 {
		size = defaultDispatchBuffer
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{cfg: cfg, queue: make(chan batch, size), log: logger}
}

// Deliver enqueues without blocking; a full queue drops the batch.
func (d *Dispatcher) Deliver(sessionID string, events []survival.DomainEvent) {
	select {
	case d.queue <- batch{sessionID: sessionID, events: events}:
	default:
		d.dropped.Add(1)
		d.log.Warn("event queue full, dropping batch", "session_id", sessionID, "events", len(events))
	}
}

func (d *Dispatcher) Dropped() uint64 { return d.dropped.Load() }

func (d *Dispatcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			d.Drain(context.WithoutCancel(ctx))
			return
		case b := <-d.queue:
			d.handle(ctx, b)
		}
	}
}

// Drain handles every batch already queued and returns.
func (d *Dispatcher) Drain(ctx context.Context) {
	for {
		select {
		case b := <-d.queue:
			d.handle(ctx, b)
		default:
			return
		}
	}
}

func (d *Dispatcher) handle(ctx context.Context, b batch) {
	if err := d.persist(ctx, b); err != nil {
		d.log.Error("persist events", "session_id", b.sessionID, "events", len(b.events), "err", err)
	}
	for _, evt := range b.events {
		if d.cfg.Metrics != nil {
			d.cfg.Metrics.RecordEvent(evt.Type)
		}
		if d.cfg.Notifier == nil || !notifiable(evt.Type) {
			continue
		}
		if err := d.cfg.Notifier.Publish(ctx, b.sessionID, evt); err != nil {
			d.log.Warn("publish notification", "session_id", b.sessionID, "event", evt.Type, "err", err)
		}
	}
}

func (d *Dispatcher) persist(ctx context.Context, b batch) error {
	write := func(ctx context.Context) error {
		if d.cfg.Events != nil {
			if err := d.cfg.Events.Append(ctx, b.sessionID, b.events); err != nil {
				return err
			}
		}
		for _, evt := range b.events {
			if err := d.track(ctx, b.sessionID, evt); err != nil {
				return err
			}
		}
		return nil
	}
	if d.cfg.Tx == nil {
		return write(ctx)
	}
	return d.cfg.Tx.RunInTx(ctx, write)
}

func (d *Dispatcher) track(ctx context.Context, sessionID string, evt survival.DomainEvent) error {
	repo := d.cfg.Sessions
	if repo == nil {
		return nil
	}
	switch evt.Type {
	case survival.EventGameStarted:
		return repo.Create(ctx, ports.SessionRecord{
			ID:        sessionID,
			Status:    ports.SessionActive,
			StartedAt: evt.OccurredAt,
		})
	case survival.EventGameReset:
		return repo.MarkReset(ctx, sessionID, evt.OccurredAt)
	case survival.EventGameOver:
		cause, _ := evt.Payload["cause"].(string)
		if cause == "" {
			cause = string(survival.DeathCauseUnknown)
		}
		return repo.Close(ctx, sessionID, survival.DeathCause(cause), evt.OccurredAt)
	}
	return nil
}

func notifiable(eventType string) bool {
	switch eventType {
	case survival.EventGameOver,
		survival.EventRecipesDiscovered,
		survival.EventItemCrafted,
		survival.EventCraftFailed:
		return true
	default:
		return false
	}
}
