package replay

import (
	"context"
	"errors"
	"strings"
	"time"

	"wildcraft/internal/app/ports"
	"wildcraft/internal/domain/survival"
)

const (
	defaultLimit = 50
	maxLimit     = 500
)

var ErrInvalidRequest = errors.New("invalid replay request")

type UseCase struct {
	Events ports.EventRepository
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	if strings.TrimSpace(req.SessionID) == "" || u.Events == nil {
		return Response{}, ErrInvalidRequest
	}
	limit := req.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	events, err := u.Events.ListBySessionID(ctx, req.SessionID, eventFilter(req, limit))
	if err != nil {
		return Response{}, err
	}

	counts := make(map[string]int, 8)
	for _, evt := range events {
		counts[evt.Type]++
	}
	return Response{Events: events, CountsByType: counts, LatestVitals: latestVitals(events)}, nil
}

// eventFilter turns the unix-second window into an inclusive time range; the
// upper bound covers the whole of its second.
func eventFilter(req Request, limit int) ports.EventFilter {
	f := ports.EventFilter{Type: strings.TrimSpace(req.Type), Limit: limit}
	if req.OccurredFrom > 0 {
		f.Since = time.Unix(req.OccurredFrom, 0)
	}
	if req.OccurredTo > 0 {
		f.Until = time.Unix(req.OccurredTo, int64(time.Second-1))
	}
	return f
}

// latestVitals scans newest-first events for the first vitals reading.
func latestVitals(events []survival.DomainEvent) *survival.Vitals {
	for _, evt := range events {
		for _, key := range []string{"after", "vitals"} {
			if v, ok := vitalsOf(evt.Payload[key]); ok {
				return &v
			}
		}
	}
	return nil
}

// vitalsOf accepts both live payloads and ones decoded back from JSON.
func vitalsOf(raw any) (survival.Vitals, bool) {
	switch v := raw.(type) {
	case survival.Vitals:
		return v, true
	case map[string]any:
		h, okH := num(v["health"])
		g, okG := num(v["hunger"])
		t, okT := num(v["thirst"])
		if !okH || !okG || !okT {
			return survival.Vitals{}, false
		}
		return survival.Vitals{Health: h, Hunger: g, Thirst: t}, true
	default:
		return survival.Vitals{}, false
	}
}

func num(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
