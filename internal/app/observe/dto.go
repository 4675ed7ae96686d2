package observe

import (
	"wildcraft/internal/app/session"
	"wildcraft/internal/app/stateview"
	"wildcraft/internal/domain/world"
)

type Request struct {
	SessionID string
}

type Response struct {
	State     session.Snapshot   `json:"state"`
	Forecast  stateview.Forecast `json:"forecast"`
	View      View               `json:"view"`
	Tiles     []ObservedTile     `json:"tiles"`
	Resources []ObservedResource `json:"resources"`
}

type View struct {
	Width  int         `json:"width"`
	Height int         `json:"height"`
	Center world.Point `json:"center"`
	Radius int         `json:"radius"`
	// Vision is how far the player can actually see under the current light.
	Vision int `json:"vision"`
}

type ObservedTile struct {
	Pos       world.Point   `json:"pos"`
	Terrain   world.Terrain `json:"terrain"`
	IsLit     bool          `json:"is_lit"`
	IsVisible bool          `json:"is_visible"`
}

type ObservedResource struct {
	ID         string      `json:"id"`
	ResourceID string      `json:"resource_id"`
	Name       string      `json:"name"`
	Icon       string      `json:"icon,omitempty"`
	Quantity   int         `json:"quantity"`
	Pos        world.Point `json:"pos"`
}
