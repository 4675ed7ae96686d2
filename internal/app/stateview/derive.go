package stateview

import (
	"wildcraft/internal/domain/survival"
	"wildcraft/internal/domain/world"
)

const LightSourceItem = "torch"

const (
	EffectStarving   = "STARVING"
	EffectDehydrated = "DEHYDRATED"
	EffectHungry     = "HUNGRY"
	EffectThirsty    = "THIRSTY"
	EffectCritical   = "CRITICAL"
	EffectInDark     = "IN_DARK"
	EffectStorm      = "CAUGHT_IN_STORM"
)

// StatusEffects derives the player's condition flags from vitals, clock and weather.
func StatusEffects(p survival.PlayerState) []string {
	effects := make([]string, 0, 4)
	v := p.Vitals
	switch {
	case v.Hunger <= survival.MinVital:
		effects = append(effects, EffectStarving)
	case v.Hunger <= survival.LowVitalThreshold:
		effects = append(effects, EffectHungry)
	}
	switch {
	case v.Thirst <= survival.MinVital:
		effects = append(effects, EffectDehydrated)
	case v.Thirst <= survival.LowVitalThreshold:
		effects = append(effects, EffectThirsty)
	}
	if v.Health <= survival.CriticalHPThreshold {
		effects = append(effects, EffectCritical)
	}
	if p.Phase() == world.PhaseNight && p.Inventory.Query(LightSourceItem) == 0 {
		effects = append(effects, EffectInDark)
	}
	if p.Weather == world.WeatherStorm {
		effects = append(effects, EffectStorm)
	}
	return effects
}
