package stateview

import (
	"math"

	"wildcraft/internal/domain/survival"
)

// Forecast projects decay ticks forward assuming the player does nothing.
type Forecast struct {
	TicksUntilHungerEmpty int      `json:"ticks_until_hunger_empty"`
	TicksUntilThirstEmpty int      `json:"ticks_until_thirst_empty"`
	TicksUntilDeath       int      `json:"ticks_until_death"`
	IsLosingHealth        bool     `json:"is_losing_health"`
	Causes                []string `json:"causes"`
}

func ForecastDecay(v survival.Vitals) Forecast {
	hunger := ticksToEmpty(v.Hunger, survival.HungerDecayPerTick)
	thirst := ticksToEmpty(v.Thirst, survival.ThirstDecayPerTick)

	causes := make([]string, 0, 2)
	if v.Hunger <= survival.MinVital {
		causes = append(causes, EffectStarving)
	}
	if v.Thirst <= survival.MinVital {
		causes = append(causes, EffectDehydrated)
	}

	// Damage starts on the tick that empties the first of hunger or thirst.
	start := max(1, min(hunger, thirst))
	health := int(math.Ceil(v.Health / survival.StarvationDamagePerTick))
	death := 0
	if health > 0 {
		death = start + health - 1
	}
	return Forecast{
		TicksUntilHungerEmpty: hunger,
		TicksUntilThirstEmpty: thirst,
		TicksUntilDeath:       death,
		IsLosingHealth:        len(causes) > 0,
		Causes:                causes,
	}
}

func ticksToEmpty(level, perTick float64) int {
	if level <= 0 || perTick <= 0 {
		return 0
	}
	return int(math.Ceil(level / perTick))
}
