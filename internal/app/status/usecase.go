package status

import (
	"context"
	"errors"
	"strings"

	"wildcraft/internal/app/session"
	"wildcraft/internal/app/stateview"
	"wildcraft/internal/domain/catalog"
	"wildcraft/internal/domain/survival"
	"wildcraft/internal/domain/world"
)

var ErrInvalidRequest = errors.New("invalid status request")

type SessionSource interface {
	Get(id string) (*session.Controller, error)
}

type UseCase struct {
	Sessions SessionSource
	Catalog  *catalog.Catalog
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	if strings.TrimSpace(req.SessionID) == "" {
		return Response{}, ErrInvalidRequest
	}
	ctrl, err := u.Sessions.Get(req.SessionID)
	if err != nil {
		return Response{}, err
	}
	snap, err := ctrl.Snapshot(ctx)
	if err != nil {
		return Response{}, err
	}
	return Response{
		State:                 snap,
		Forecast:              stateview.ForecastDecay(snap.Player.Vitals),
		HoursUntilPhaseChange: world.HoursUntilPhaseChange(snap.Player.Hour),
		Recipes:               u.recipes(&snap.Player),
	}, nil
}

func (u UseCase) recipes(p *survival.PlayerState) []RecipeStatus {
	out := make([]RecipeStatus, 0, len(p.Discovered))
	if u.Catalog == nil {
		return out
	}
	for _, id := range p.Discovered.IDs() {
		r, err := u.Catalog.Recipe(id)
		if err != nil {
			continue
		}
		missing := survival.Shortfalls(&p.Inventory, r)
		out = append(out, RecipeStatus{
			ID:        r.ID,
			Name:      r.Name,
			Craftable: len(missing) == 0,
			Missing:   missing,
		})
	}
	return out
}
