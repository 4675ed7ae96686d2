package ports

import (
	"context"

	"wildcraft/internal/domain/survival"
)

// Notifier pushes player-facing events (game over, discoveries, craft
// outcomes) to whatever is listening outside the process.
type Notifier interface {
	Publish(ctx context.Context, sessionID string, evt survival.DomainEvent) error
}
