package status

import (
	"wildcraft/internal/app/session"
	"wildcraft/internal/app/stateview"
	"wildcraft/internal/domain/survival"
)

type Request struct {
	SessionID string
}

type Response struct {
	State                 session.Snapshot   `json:"state"`
	Forecast              stateview.Forecast `json:"forecast"`
	HoursUntilPhaseChange int                `json:"hours_until_phase_change"`
	Recipes               []RecipeStatus     `json:"recipes"`
}

// RecipeStatus tells whether a discovered recipe can be crafted right now.
type RecipeStatus struct {
	ID        string               `json:"id"`
	Name      string               `json:"name"`
	Craftable bool                 `json:"craftable"`
	Missing   []survival.Shortfall `json:"missing,omitempty"`
}
