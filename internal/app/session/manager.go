package session

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"wildcraft/internal/app/ports"
	"wildcraft/internal/domain/catalog"
)

var ErrSessionNotFound = fmt.Errorf("session %w", ports.ErrNotFound)

type ManagerConfig struct {
	Catalog *catalog.Catalog
	// Rules nil means DefaultRules.
	Rules      *Rules
	Controller ControllerConfig
	// NewRand supplies each new session's randomness. Nil seeds from the clock.
	NewRand func() *rand.Rand
	NewID   func() string
	Logger  *slog.Logger
	// IdleTimeout ends sessions nobody has looked up for this long. Zero
	// keeps sessions until they are ended explicitly.
	IdleTimeout  time.Duration
	ReapInterval time.Duration
	// OnEnd runs after a session's controller has stopped, whether it was
	// ended explicitly or reaped.
	OnEnd func(sessionID string)
}

// Manager hosts many independent sessions, each behind its own controller.
type Manager struct {
	cfg     ManagerConfig
	ctx     context.Context
	cancel  context.CancelFunc
	mu      sync.RWMutex
	running map[string]*runningSession
	wg      sync.WaitGroup
}

type runningSession struct {
	ctrl     *Controller
	cancel   context.CancelFunc
	lastSeen atomic.Int64
}

func (rs *runningSession) touch(now time.Time) { rs.lastSeen.Store(now.UnixNano()) }

func (rs *runningSession) idleSince(cutoff time.Time) bool {
	return rs.lastSeen.Load() < cutoff.UnixNano()
}

func (rs *runningSession) stop() {
	rs.cancel()
	<-rs.ctrl.Done()
}

func NewManager(ctx context.Context, cfg ManagerConfig) *Manager {
	if cfg.Catalog == nil {
		cfg.Catalog = catalog.Default()
	}
	if cfg.NewID == nil {
		cfg.NewID = uuid.NewString
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Controller.Now == nil {
		cfg.Controller.Now = time.Now
	}
	if cfg.Controller.Logger == nil {
		cfg.Controller.Logger = cfg.Logger
	}
	if cfg.IdleTimeout > 0 && cfg.ReapInterval <= 0 {
		cfg.ReapInterval = time.Minute
	}
	mctx, cancel := context.WithCancel(ctx)
	m := &Manager{cfg: cfg, ctx: mctx, cancel: cancel, running: map[string]*runningSession{}}
	if cfg.IdleTimeout > 0 {
		m.wg.Add(1)
		go m.reapLoop()
	}
	return m
}

func (m *Manager) reapLoop() {
	defer m.wg.Done()
	t := time.NewTicker(m.cfg.ReapInterval)
	defer t.Stop()
	for {
		select {
		case <-m.ctx.Done():
			return
		case <-t.C:
			m.Reap()
		}
	}
}

func (m *Manager) Catalog() *catalog.Catalog { return m.cfg.Catalog }

// Start creates a session, starts its controller and returns the first snapshot.
func (m *Manager) Start(ctx context.Context) (*Controller, Snapshot, error) {
	if m.ctx.Err() != nil {
		return nil, Snapshot{}, ErrStopped
	}
	id := m.cfg.NewID()
	var rng *rand.Rand
	if m.cfg.NewRand != nil {
		rng = m.cfg.NewRand()
	}
	s, events := New(id, Options{
		Catalog: m.cfg.Catalog,
		Rand:    rng,
		Rules:   m.cfg.Rules,
		Logger:  m.cfg.Logger,
	}, m.cfg.Controller.Now())
	ctrl := NewController(s, m.cfg.Controller)
	ctrl.emit(events)

	sctx, cancel := context.WithCancel(m.ctx)
	m.mu.Lock()
	if _, dup := m.running[id]; dup {
		m.mu.Unlock()
		cancel()
		return nil, Snapshot{}, fmt.Errorf("session %s: %w", id, ports.ErrConflict)
	}
	rs := &runningSession{ctrl: ctrl, cancel: cancel}
	rs.touch(m.cfg.Controller.Now())
	m.running[id] = rs
	m.mu.Unlock()

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		ctrl.Run(sctx)
	}()
	m.cfg.Logger.Info("session started", "session_id", id)

	snap, err := ctrl.Snapshot(ctx)
	if err != nil {
		return nil, Snapshot{}, err
	}
	return ctrl, snap, nil
}

// Get looks a session up and counts as activity for the idle reaper.
func (m *Manager) Get(id string) (*Controller, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rs, ok := m.running[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	rs.touch(m.cfg.Controller.Now())
	return rs.ctrl, nil
}

// End stops one session's controller and forgets it.
func (m *Manager) End(id string) error {
	m.mu.Lock()
	rs, ok := m.running[id]
	delete(m.running, id)
	m.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}
	rs.stop()
	m.ended(id)
	return nil
}

// Reap ends every session idle for longer than IdleTimeout and returns
// their ids.
func (m *Manager) Reap() []string {
	if m.cfg.IdleTimeout <= 0 {
		return nil
	}
	cutoff := m.cfg.Controller.Now().Add(-m.cfg.IdleTimeout)
	idle := map[string]*runningSession{}
	m.mu.Lock()
	for id, rs := range m.running {
		if rs.idleSince(cutoff) {
			idle[id] = rs
			delete(m.running, id)
		}
	}
	m.mu.Unlock()

	ids := make([]string, 0, len(idle))
	for id, rs := range idle {
		rs.stop()
		m.ended(id)
		ids = append(ids, id)
	}
	if len(ids) > 0 {
		m.cfg.Logger.Info("reaped idle sessions", "count", len(ids), "idle_timeout", m.cfg.IdleTimeout)
	}
	return ids
}

func (m *Manager) ended(id string) {
	if m.cfg.OnEnd != nil {
		m.cfg.OnEnd(id)
	}
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.running)
}

// Close stops every controller and waits for them to exit.
func (m *Manager) Close() {
	m.cancel()
	m.wg.Wait()
	m.mu.Lock()
	m.running = map[string]*runningSession{}
	m.mu.Unlock()
}
