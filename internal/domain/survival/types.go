package survival

import (
	"time"

	"wildcraft/internal/domain/catalog"
)

type Vitals struct {
	Health float64 `json:"health"`
	Hunger float64 `json:"hunger"`
	Thirst float64 `json:"thirst"`
}

func FullVitals() Vitals {
	return Vitals{Health: MaxVital, Hunger: MaxVital, Thirst: MaxVital}
}

// Clamped returns v with every stat pinned to [MinVital, MaxVital].
func (v Vitals) Clamped() Vitals {
	return Vitals{
		Health: clampVital(v.Health),
		Hunger: clampVital(v.Hunger),
		Thirst: clampVital(v.Thirst),
	}
}

func (v Vitals) Apply(e catalog.Effect) Vitals {
	switch e.Stat {
	case catalog.StatHealth:
		v.Health += e.Delta
	case catalog.StatHunger:
		v.Hunger += e.Delta
	case catalog.StatThirst:
		v.Thirst += e.Delta
	}
	return v.Clamped()
}

func clampVital(x float64) float64 {
	if x < MinVital {
		return MinVital
	}
	if x > MaxVital {
		return MaxVital
	}
	return x
}

type DeathCause string

const (
	DeathCauseUnknown     DeathCause = "unknown"
	DeathCauseStarvation  DeathCause = "starvation"
	DeathCauseDehydration DeathCause = "dehydration"
	DeathCauseConsumption DeathCause = "consumption"
)

type DomainEvent struct {
	Type       string         `json:"type"`
	OccurredAt time.Time      `json:"occurred_at"`
	Payload    map[string]any `json:"payload"`
}

const (
	EventGameStarted       = "game_started"
	EventGameReset         = "game_reset"
	EventMoved             = "moved"
	EventSectionChanged    = "section_changed"
	EventResourceCollected = "resource_collected"
	EventResourceRespawned = "resource_respawned"
	EventItemCrafted       = "item_crafted"
	EventCraftFailed       = "craft_failed"
	EventRecipesDiscovered = "recipes_discovered"
	EventItemUsed          = "item_used"
	EventItemDropped       = "item_dropped"
	EventTimeAdvanced      = "time_advanced"
	EventWeatherChanged    = "weather_changed"
	EventVitalsDecayed     = "vitals_decayed"
	EventGameOver          = "game_over"
)
