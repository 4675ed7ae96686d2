// Package redisnotify publishes player-facing game events on a redis channel.
package redisnotify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"wildcraft/internal/app/ports"
	"wildcraft/internal/domain/survival"
)

const DefaultChannel = "wildcraft:events"

type Options struct {
	Addr     string
	Password string
	DB       int
	Channel  string
}

// Message is the JSON body published for each event.
type Message struct {
	SessionID  string         `json:"session_id"`
	Type       string         `json:"type"`
	OccurredAt time.Time      `json:"occurred_at"`
	Payload    map[string]any `json:"payload,omitempty"`
}

type Publisher struct {
	client  *redis.Client
	channel string
}

// Connect dials redis and checks the connection with a ping.
func Connect(ctx context.Context, opts Options) (*Publisher, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect redis %s: %w: %v", opts.Addr, ports.ErrUnavailable, err)
	}
	return NewPublisher(client, opts.Channel), nil
}

func NewPublisher(client *redis.Client, channel string) *Publisher {
	if channel == "" {
		channel = DefaultChannel
	}
	return &Publisher{client: client, channel: channel}
}

func (p *Publisher) Channel() string { return p.channel }

func (p *Publisher) Publish(ctx context.Context, sessionID string, evt survival.DomainEvent) error {
	body, err := json.Marshal(Message{
		SessionID:  sessionID,
		Type:       evt.Type,
		OccurredAt: evt.OccurredAt,
		Payload:    evt.Payload,
	})
	if err != nil {
		return fmt.Errorf("encode %s: %w", evt.Type, err)
	}
	return p.client.Publish(ctx, p.channel, body).Err()
}

func (p *Publisher) Close() error {
	return p.client.Close()
}
