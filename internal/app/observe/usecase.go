package observe

import (
	"context"
	"errors"
	"strings"

	"wildcraft/internal/app/session"
	"wildcraft/internal/app/stateview"
	"wildcraft/internal/domain/world"
)

var ErrInvalidRequest = errors.New("invalid observe request")

const (
	viewRadius        = 6
	viewSize          = viewRadius*2 + 1
	dayVisionRadius   = 6
	nightVisionRadius = 3
	torchLightRadius  = 3

	unknownTerrain world.Terrain = "unknown"
)

type SessionSource interface {
	Get(id string) (*session.Controller, error)
}

type UseCase struct {
	Sessions SessionSource
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	if strings.TrimSpace(req.SessionID) == "" {
		return Response{}, ErrInvalidRequest
	}
	ctrl, err := u.Sessions.Get(req.SessionID)
	if err != nil {
		return Response{}, err
	}
	snap, sec, err := ctrl.Observe(ctx)
	if err != nil {
		return Response{}, err
	}
	center := snap.Player.Position
	lit := litRadius(snap)
	vision := max(visionRadius(snap.Phase), lit)
	tiles := buildWindowTiles(&sec, center, vision, lit)
	return Response{
		State:    snap,
		Forecast: stateview.ForecastDecay(snap.Player.Vitals),
		View: View{
			Width:  viewSize,
			Height: viewSize,
			Center: center,
			Radius: viewRadius,
			Vision: vision,
		},
		Tiles:     tiles,
		Resources: projectResources(&sec, tiles),
	}, nil
}

func visionRadius(phase world.Phase) int {
	if phase == world.PhaseDay {
		return dayVisionRadius
	}
	return nightVisionRadius
}

// litRadius is the radius of tiles lit around the player. Daylight covers the
// whole window; at night only a carried torch lights anything.
func litRadius(snap session.Snapshot) int {
	if snap.Phase == world.PhaseDay {
		return viewRadius
	}
	if snap.Player.Inventory.Query(stateview.LightSourceItem) > 0 {
		return nightVisionRadius + torchLightRadius
	}
	return 0
}

func buildWindowTiles(sec *world.Section, center world.Point, vision, lit int) []ObservedTile {
	out := make([]ObservedTile, 0, viewSize*viewSize)
	for y := center.Y - viewRadius; y <= center.Y+viewRadius; y++ {
		for x := center.X - viewRadius; x <= center.X+viewRadius; x++ {
			p := world.Point{X: x, Y: y}
			tile := sec.Tile(p)
			if tile == nil {
				out = append(out, ObservedTile{Pos: p, Terrain: unknownTerrain})
				continue
			}
			dist := abs(x-center.X) + abs(y-center.Y)
			out = append(out, ObservedTile{
				Pos:       p,
				Terrain:   tile.Terrain,
				IsLit:     dist <= lit,
				IsVisible: dist <= vision,
			})
		}
	}
	return out
}

func projectResources(sec *world.Section, tiles []ObservedTile) []ObservedResource {
	out := make([]ObservedResource, 0)
	for _, t := range tiles {
		if !t.IsVisible {
			continue
		}
		tile := sec.Tile(t.Pos)
		for _, r := range tile.Resources {
			out = append(out, ObservedResource{
				ID:         r.ID,
				ResourceID: r.ResourceID,
				Name:       r.Name,
				Icon:       r.Icon,
				Quantity:   r.Quantity,
				Pos:        t.Pos,
			})
		}
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
