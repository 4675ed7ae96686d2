// Package config loads server configuration from an optional YAML file and
// WILDCRAFT_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Redis      RedisConfig      `yaml:"redis"`
	JWT        JWTConfig        `yaml:"jwt"`
	Simulation SimulationConfig `yaml:"simulation"`
	Catalog    CatalogConfig    `yaml:"catalog"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// Addr is the host:port the HTTP server binds.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatabaseConfig selects the postgres journal. An empty DSN keeps everything
// in memory.
type DatabaseConfig struct {
	DSN     string `yaml:"dsn"`
	Migrate bool   `yaml:"migrate"`
}

// RedisConfig enables event notifications when Address is set.
type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Channel  string `yaml:"channel"`
}

type JWTConfig struct {
	Secret string        `yaml:"secret"`
	Issuer string        `yaml:"issuer"`
	TTL    time.Duration `yaml:"ttl"`
}

type SimulationConfig struct {
	DecayInterval         time.Duration `yaml:"decay_interval"`
	RespawnPollInterval   time.Duration `yaml:"respawn_poll_interval"`
	MoveTimeAdvanceChance float64       `yaml:"move_time_advance_chance"`
	WeatherChangeChance   float64       `yaml:"weather_change_chance"`
	EventBuffer           int           `yaml:"event_buffer"`
	// SessionIdleTimeout ends games nobody has touched for this long. Zero
	// disables the reaper.
	SessionIdleTimeout  time.Duration `yaml:"session_idle_timeout"`
	SessionReapInterval time.Duration `yaml:"session_reap_interval"`
}

type CatalogConfig struct {
	// Path to a YAML catalog. Empty uses the built-in catalog.
	Path string `yaml:"path"`
}

func Default() Config {
	return Config{
		Server: ServerConfig{Host: "", Port: 8080},
		Database: DatabaseConfig{
			Migrate: true,
		},
		Redis: RedisConfig{Channel: "wildcraft:events"},
		JWT: JWTConfig{
			Issuer: "wildcraft",
			TTL:    24 * time.Hour,
		},
		Simulation: SimulationConfig{
			DecayInterval:         10 * time.Second,
			RespawnPollInterval:   time.Second,
			MoveTimeAdvanceChance: 0.2,
			WeatherChangeChance:   0.1,
			EventBuffer:           1024,
			SessionIdleTimeout:    2 * time.Hour,
			SessionReapInterval:   time.Minute,
		},
	}
}

// Load starts from Default, overlays the YAML file at path when path is not
// empty, then applies environment overrides read through getenv.
func Load(path string, getenv func(string) string) (Config, error) {
	cfg := Default()
	if getenv == nil {
		getenv = os.Getenv
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file: %w", err)
		}
	}
	env := envReader{getenv: getenv}
	env.applyTo(&cfg)
	if env.err != nil {
		return Config{}, env.err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch {
	case c.Server.Port <= 0 || c.Server.Port > 65535:
		return fmt.Errorf("%w: server.port %d out of range", ErrInvalidConfig, c.Server.Port)
	case c.JWT.TTL <= 0:
		return fmt.Errorf("%w: jwt.ttl must be positive", ErrInvalidConfig)
	case c.Simulation.DecayInterval <= 0:
		return fmt.Errorf("%w: simulation.decay_interval must be positive", ErrInvalidConfig)
	case c.Simulation.RespawnPollInterval <= 0:
		return fmt.Errorf("%w: simulation.respawn_poll_interval must be positive", ErrInvalidConfig)
	case !isChance(c.Simulation.MoveTimeAdvanceChance):
		return fmt.Errorf("%w: simulation.move_time_advance_chance must be within [0,1]", ErrInvalidConfig)
	case !isChance(c.Simulation.WeatherChangeChance):
		return fmt.Errorf("%w: simulation.weather_change_chance must be within [0,1]", ErrInvalidConfig)
	case c.Simulation.EventBuffer < 0:
		return fmt.Errorf("%w: simulation.event_buffer must not be negative", ErrInvalidConfig)
	case c.Simulation.SessionIdleTimeout < 0:
		return fmt.Errorf("%w: simulation.session_idle_timeout must not be negative", ErrInvalidConfig)
	case c.Simulation.SessionIdleTimeout > 0 && c.Simulation.SessionReapInterval <= 0:
		return fmt.Errorf("%w: simulation.session_reap_interval must be positive", ErrInvalidConfig)
	}
	return nil
}

func isChance(p float64) bool {
	return p >= 0 && p <= 1
}

type envReader struct {
	getenv func(string) string
	err    error
}

func (e *envReader) applyTo(cfg *Config) {
	e.setString("WILDCRAFT_HOST", &cfg.Server.Host)
	e.setInt("WILDCRAFT_PORT", &cfg.Server.Port)
	e.setString("WILDCRAFT_DB_DSN", &cfg.Database.DSN)
	e.setBool("WILDCRAFT_DB_MIGRATE", &cfg.Database.Migrate)
	e.setString("WILDCRAFT_REDIS_ADDR", &cfg.Redis.Address)
	e.setString("WILDCRAFT_REDIS_PASSWORD", &cfg.Redis.Password)
	e.setInt("WILDCRAFT_REDIS_DB", &cfg.Redis.DB)
	e.setString("WILDCRAFT_REDIS_CHANNEL", &cfg.Redis.Channel)
	e.setString("WILDCRAFT_JWT_SECRET", &cfg.JWT.Secret)
	e.setString("WILDCRAFT_JWT_ISSUER", &cfg.JWT.Issuer)
	e.setDuration("WILDCRAFT_JWT_TTL", &cfg.JWT.TTL)
	e.setDuration("WILDCRAFT_DECAY_INTERVAL", &cfg.Simulation.DecayInterval)
	e.setDuration("WILDCRAFT_RESPAWN_POLL_INTERVAL", &cfg.Simulation.RespawnPollInterval)
	e.setFloat("WILDCRAFT_MOVE_TIME_ADVANCE_CHANCE", &cfg.Simulation.MoveTimeAdvanceChance)
	e.setFloat("WILDCRAFT_WEATHER_CHANGE_CHANCE", &cfg.Simulation.WeatherChangeChance)
	e.setInt("WILDCRAFT_EVENT_BUFFER", &cfg.Simulation.EventBuffer)
	e.setDuration("WILDCRAFT_SESSION_IDLE_TIMEOUT", &cfg.Simulation.SessionIdleTimeout)
	e.setDuration("WILDCRAFT_SESSION_REAP_INTERVAL", &cfg.Simulation.SessionReapInterval)
	e.setString("WILDCRAFT_CATALOG_FILE", &cfg.Catalog.Path)
}

func (e *envReader) lookup(key string) (string, bool) {
	v := strings.TrimSpace(e.getenv(key))
	return v, v != ""
}

func (e *envReader) fail(key, raw string, err error) {
	if e.err == nil {
		e.err = fmt.Errorf("%w: %s=%q: %v", ErrInvalidConfig, key, raw, err)
	}
}

func (e *envReader) setString(key string, dst *string) {
	if v, ok := e.lookup(key); ok {
		*dst = v
	}
}

func (e *envReader) setInt(key string, dst *int) {
	v, ok := e.lookup(key)
	if !ok {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		e.fail(key, v, err)
		return
	}
	*dst = n
}

func (e *envReader) setFloat(key string, dst *float64) {
	v, ok := e.lookup(key)
	if !ok {
		return
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		e.fail(key, v, err)
		return
	}
	*dst = f
}

func (e *envReader) setBool(key string, dst *bool) {
	v, ok := e.lookup(key)
	if !ok {
		return
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		e.fail(key, v, err)
		return
	}
	*dst = b
}

func (e *envReader) setDuration(key string, dst *time.Duration) {
	v, ok := e.lookup(key)
	if !ok {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		e.fail(key, v, err)
		return
	}
	*dst = d
}
