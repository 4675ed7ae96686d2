package session

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"wildcraft/internal/app/ports"
	"wildcraft/internal/domain/survival"
	"wildcraft/internal/domain/world"
)

var ErrStopped = errors.New("session controller stopped")

// EventSink receives every batch of events the controller produces. Deliver
// must not block; it is called from the writer goroutine.
type EventSink interface {
	Deliver(sessionID string, events []survival.DomainEvent)
}

type ControllerConfig struct {
	DecayInterval       time.Duration
	RespawnPollInterval time.Duration
	Now                 func() time.Time
	Sink                EventSink
	Metrics             ports.CommandMetrics
	Logger              *slog.Logger
}

type command struct {
	name string
	fn   func(s *Session, now time.Time) ([]survival.DomainEvent, error)
	done chan commandResult
}

type commandResult struct {
	snap Snapshot
	err  error
}

// Controller is the single writer for a Session. Commands, the decay tick and
// respawn polling all run on its goroutine, one at a time.
type Controller struct {
	session *Session
	cfg     ControllerConfig
	cmds    chan command
	stopped chan struct{}
	log     *slog.Logger
}

func NewController(s *Session, cfg ControllerConfig) *Controller {
	if cfg.DecayInterval <= 0 {
		cfg.DecayInterval = survival.DefaultDecayInterval
	}
	if cfg.RespawnPollInterval <= 0 {
		cfg.RespawnPollInterval = time.Second
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		session: s,
		cfg:     cfg,
		cmds:    make(chan command),
		stopped: make(chan struct{}),
		log:     logger.With("session_id", s.ID()),
	}
}

func (c *Controller) SessionID() string { return c.session.ID() }

// Run owns the session until ctx is cancelled.
func (c *Controller) Run(ctx context.Context) {
	defer close(c.stopped)
	decay := time.NewTicker(c.cfg.DecayInterval)
	defer decay.Stop()
	poll := time.NewTicker(c.cfg.RespawnPollInterval)
	defer poll.Stop()

	c.log.Debug("session controller started", "decay_interval", c.cfg.DecayInterval)
	for {
		select {
		case <-ctx.Done():
			c.log.Debug("session controller stopped")
			return
		case cmd := <-c.cmds:
			events, err := cmd.fn(c.session, c.cfg.Now())
			c.emit(events)
			c.record(cmd.name, err)
			cmd.done <- commandResult{snap: c.session.Snapshot(), err: err}
		case <-decay.C:
			c.emit(c.session.Decay(c.cfg.Now()))
		case <-poll.C:
			c.emit(c.session.RunRespawns(c.cfg.Now()))
		}
	}
}

// Done is closed once Run has returned.
func (c *Controller) Done() <-chan struct{} { return c.stopped }

func (c *Controller) emit(events []survival.DomainEvent) {
	if len(events) == 0 || c.cfg.Sink == nil {
		return
	}
	c.cfg.Sink.Deliver(c.session.ID(), events)
}

func (c *Controller) record(name string, err error) {
	if c.cfg.Metrics == nil || name == "" {
		return
	}
	if err != nil {
		c.cfg.Metrics.RecordFailure(name)
		return
	}
	c.cfg.Metrics.RecordSuccess(name)
}

func (c *Controller) do(ctx context.Context, name string, fn func(*Session, time.Time) ([]survival.DomainEvent, error)) (Snapshot, error) {
	cmd := command{name: name, fn: fn, done: make(chan commandResult, 1)}
	select {
	case c.cmds <- cmd:
	case <-c.stopped:
		return Snapshot{}, ErrStopped
	case <-ctx.Done():
		return Snapshot{}, ctx.Err()
	}
	select {
	case res := <-cmd.done:
		return res.snap, res.err
	case <-ctx.Done():
		return Snapshot{}, ctx.Err()
	}
}

func (c *Controller) Reset(ctx context.Context) (Snapshot, error) {
	return c.do(ctx, "reset", func(s *Session, now time.Time) ([]survival.DomainEvent, error) {
		return s.Reset(now), nil
	})
}

func (c *Controller) Move(ctx context.Context, dir world.Direction) (Snapshot, error) {
	return c.do(ctx, "move", func(s *Session, now time.Time) ([]survival.DomainEvent, error) {
		return s.Move(dir, now)
	})
}

func (c *Controller) Travel(ctx context.Context, section int) (Snapshot, error) {
	return c.do(ctx, "travel", func(s *Session, now time.Time) ([]survival.DomainEvent, error) {
		return s.Travel(section, now)
	})
}

func (c *Controller) Collect(ctx context.Context, instanceID string) (Snapshot, error) {
	return c.do(ctx, "collect", func(s *Session, now time.Time) ([]survival.DomainEvent, error) {
		return s.Collect(instanceID, now)
	})
}

func (c *Controller) Craft(ctx context.Context, recipeID string) (Snapshot, error) {
	return c.do(ctx, "craft", func(s *Session, now time.Time) ([]survival.DomainEvent, error) {
		return s.Craft(recipeID, now)
	})
}

func (c *Controller) Use(ctx context.Context, itemID string) (Snapshot, error) {
	return c.do(ctx, "use", func(s *Session, now time.Time) ([]survival.DomainEvent, error) {
		return s.Use(itemID, now)
	})
}

func (c *Controller) Drop(ctx context.Context, itemID string, qty int) (Snapshot, error) {
	return c.do(ctx, "drop", func(s *Session, now time.Time) ([]survival.DomainEvent, error) {
		return s.Drop(itemID, qty, now)
	})
}

func (c *Controller) AdvanceTime(ctx context.Context) (Snapshot, error) {
	return c.do(ctx, "advance_time", func(s *Session, now time.Time) ([]survival.DomainEvent, error) {
		return s.AdvanceTime(now)
	})
}

// Snapshot reads the current state through the writer so it never observes a
// half-applied command.
func (c *Controller) Snapshot(ctx context.Context) (Snapshot, error) {
	return c.do(ctx, "", func(*Session, time.Time) ([]survival.DomainEvent, error) {
		return nil, nil
	})
}

func (c *Controller) World(ctx context.Context) (world.GameWorld, error) {
	var out world.GameWorld
	_, err := c.do(ctx, "", func(s *Session, _ time.Time) ([]survival.DomainEvent, error) {
		out = s.World()
		return nil, nil
	})
	if err != nil {
		return world.GameWorld{}, err
	}
	return out, nil
}

func (c *Controller) Query(ctx context.Context, itemID string) (int, error) {
	var n int
	_, err := c.do(ctx, "", func(s *Session, _ time.Time) ([]survival.DomainEvent, error) {
		n = s.Query(itemID)
		return nil, nil
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}

// Observe returns the snapshot together with a copy of the section the player
// is standing in, both taken in the same turn of the writer.
func (c *Controller) Observe(ctx context.Context) (Snapshot, world.Section, error) {
	var sec world.Section
	snap, err := c.do(ctx, "", func(s *Session, _ time.Time) ([]survival.DomainEvent, error) {
		sec = s.CurrentSection()
		return nil, nil
	})
	if err != nil {
		return Snapshot{}, world.Section{}, err
	}
	return snap, sec, nil
}
