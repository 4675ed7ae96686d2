package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"os"
	"time"

	catalogyaml "wildcraft/internal/adapter/catalog/yamlfile"
	httpadapter "wildcraft/internal/adapter/http"
	metricsinmem "wildcraft/internal/adapter/metrics/inmemory"
	redisnotify "wildcraft/internal/adapter/notify/redis"
	gormrepo "wildcraft/internal/adapter/repo/gorm"
	memrepo "wildcraft/internal/adapter/repo/memory"
	"wildcraft/internal/app/auth"
	"wildcraft/internal/app/observe"
	"wildcraft/internal/app/ports"
	"wildcraft/internal/app/replay"
	"wildcraft/internal/app/session"
	"wildcraft/internal/app/status"
	"wildcraft/internal/config"
	"wildcraft/internal/domain/catalog"
	"wildcraft/migrations"

	"github.com/cloudwego/hertz/pkg/app/server"
)

func main() {
	cfg, err := config.Load(os.Getenv("WILDCRAFT_CONFIG"), os.Getenv)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	cat, err := loadCatalog(cfg.Catalog)
	if err != nil {
		log.Fatalf("load catalog: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	repos, err := buildRepos(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("build repos: %v", err)
	}
	kpiRecorder := metricsinmem.NewRecorder()

	dispatchCfg := session.DispatcherConfig{
		Events:   repos.events,
		Sessions: repos.sessions,
		Tx:       repos.tx,
		Metrics:  kpiRecorder,
		Buffer:   cfg.Simulation.EventBuffer,
	}
	if cfg.Redis.Address != "" {
		pub, err := redisnotify.Connect(ctx, redisnotify.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Channel:  cfg.Redis.Channel,
		})
		if err != nil {
			log.Fatalf("redis: %v", err)
		}
		defer pub.Close()
		dispatchCfg.Notifier = pub
		log.Printf("publishing notifications on redis channel %s", pub.Channel())
	}
	dispatcher := session.NewDispatcher(dispatchCfg)
	dispatched := make(chan struct{})
	go func() {
		defer close(dispatched)
		dispatcher.Run(ctx)
	}()

	manager := session.NewManager(ctx, session.ManagerConfig{
		Catalog: cat,
		Rules: &session.Rules{
			MoveTimeAdvanceChance: cfg.Simulation.MoveTimeAdvanceChance,
			WeatherChangeChance:   cfg.Simulation.WeatherChangeChance,
		},
		Controller: session.ControllerConfig{
			DecayInterval:       cfg.Simulation.DecayInterval,
			RespawnPollInterval: cfg.Simulation.RespawnPollInterval,
			Sink:                dispatcher,
			Metrics:             kpiRecorder,
		},
		IdleTimeout:  cfg.Simulation.SessionIdleTimeout,
		ReapInterval: cfg.Simulation.SessionReapInterval,
		OnEnd:        repos.forget,
	})

	tokens, err := buildTokens(cfg.JWT)
	if err != nil {
		log.Fatalf("tokens: %v", err)
	}

	h := httpadapter.Handler{
		Sessions:  manager,
		Tokens:    tokens,
		Catalog:   cat,
		ObserveUC: observe.UseCase{Sessions: manager},
		StatusUC:  status.UseCase{Sessions: manager, Catalog: cat},
		ReplayUC:  replay.UseCase{Events: repos.events},
		KPI:       kpiRecorder,
	}

	s := server.Default(server.WithHostPorts(cfg.Server.Addr()))
	h.RegisterRoutes(s)

	log.Printf("wildcraft server listening on %s (journal: %s)", cfg.Server.Addr(), repos.kind)
	s.Spin()

	manager.Close()
	cancel()
	<-dispatched
	if n := dispatcher.Dropped(); n > 0 {
		log.Printf("dropped %d event batches under load", n)
	}
}

type repoSet struct {
	kind     string
	events   ports.EventRepository
	sessions ports.SessionRepository
	tx       ports.TxManager
	// forget releases an ended session's journal; nil for durable journals.
	forget func(sessionID string)
}

// buildRepos journals to postgres when a DSN is configured and to memory
// otherwise.
func buildRepos(ctx context.Context, cfg config.DatabaseConfig) (repoSet, error) {
	if cfg.DSN == "" {
		store := memrepo.NewStore()
		events := memrepo.NewEventRepo(store)
		return repoSet{
			kind:     "memory",
			events:   events,
			sessions: memrepo.NewSessionRepo(store),
			tx:       memrepo.NewTxManager(store),
			forget:   events.Forget,
		}, nil
	}
	db, err := gormrepo.OpenPostgres(cfg.DSN)
	if err != nil {
		return repoSet{}, err
	}
	if cfg.Migrate {
		applied, err := gormrepo.ApplyMigrations(ctx, db, migrations.FS)
		if err != nil {
			return repoSet{}, err
		}
		if len(applied) > 0 {
			log.Printf("applied migrations: %v", applied)
		}
	}
	return repoSet{
		kind:     "postgres",
		events:   gormrepo.NewEventRepo(db),
		sessions: gormrepo.NewSessionRepo(db),
		tx:       gormrepo.NewTxManager(db),
	}, nil
}

func loadCatalog(cfg config.CatalogConfig) (*catalog.Catalog, error) {
	if cfg.Path == "" {
		return catalog.Default(), nil
	}
	cat, err := catalogyaml.Load(cfg.Path)
	if err != nil {
		return nil, err
	}
	if cat.Empty() {
		return nil, fmt.Errorf("catalog %s defines nothing", cfg.Path)
	}
	return cat, nil
}

// buildTokens falls back to a random per-process secret, which invalidates
// every token on restart.
func buildTokens(cfg config.JWTConfig) (auth.Tokens, error) {
	secret := []byte(cfg.Secret)
	if len(secret) == 0 {
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			return auth.Tokens{}, fmt.Errorf("generate jwt secret: %w", err)
		}
		secret = []byte(hex.EncodeToString(buf))
		log.Println("WILDCRAFT_JWT_SECRET not set, using a random secret for this process")
	}
	return auth.Tokens{Secret: secret, Issuer: cfg.Issuer, TTL: cfg.TTL, Now: time.Now}, nil
}
