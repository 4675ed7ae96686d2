package redisnotify

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"

	"wildcraft/internal/app/ports"
	"wildcraft/internal/domain/survival"
)

var _ ports.Notifier = (*Publisher)(nil)

func TestNewPublisher_DefaultChannel(t *testing.T) {
	p := NewPublisher(redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"}), "")
	defer p.Close()
	if p.Channel() != DefaultChannel {
		t.Fatalf("channel mismatch: got=%q want=%q", p.Channel(), DefaultChannel)
	}
}

func TestConnect_UnreachableIsUnavailable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := Connect(ctx, Options{Addr: "127.0.0.1:1"})
	if !errors.Is(err, ports.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestPublisher_DeliversToSubscriber(t *testing.T) {
	addr := os.Getenv("WILDCRAFT_REDIS_ADDR")
	if addr == "" {
		t.Skip("WILDCRAFT_REDIS_ADDR is required for integration test")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	channel := "wildcraft:test:" + time.Now().Format("150405.000000")
	p, err := Connect(ctx, Options{Addr: addr, Channel: channel})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer p.Close()

	sub := redis.NewClient(&redis.Options{Addr: addr}).Subscribe(ctx, channel)
	defer sub.Close()
	if _, err := sub.Receive(ctx); err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	evt := survival.DomainEvent{
		Type:       survival.EventGameOver,
		OccurredAt: time.Now().UTC(),
		Payload:    map[string]any{"cause": "starvation"},
	}
	if err := p.Publish(ctx, "s1", evt); err != nil {
		t.Fatalf("publish: %v", err)
	}
	msg, err := sub.ReceiveMessage(ctx)
	if err != nil {
		t.Fatalf("receive: %v", err)
	}
	var got Message
	if err := json.Unmarshal([]byte(msg.Payload), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.SessionID != "s1" || got.Type != survival.EventGameOver || got.Payload["cause"] != "starvation" {
		t.Fatalf("unexpected message: %+v", got)
	}
}
