package survival

import "wildcraft/internal/domain/world"

type DecayResult struct {
	Before   Vitals `json:"before"`
	After    Vitals `json:"after"`
	Damaged  bool   `json:"damaged"`
	GameOver bool   `json:"game_over"`
}

// DecayTick drains hunger and thirst once. Health only suffers while either
// of them is exhausted after the drain, so a stat that empties on this tick
// already costs health on this tick rather than the next one. A finished game
// does not decay.
func (p *PlayerState) DecayTick() DecayResult {
	res := DecayResult{Before: p.Vitals, After: p.Vitals}
	if p.GameOver {
		return res
	}
	v := p.Vitals
	v.Hunger -= HungerDecayPerTick
	v.Thirst -= ThirstDecayPerTick
	v = v.Clamped()
	if v.Hunger <= MinVital || v.Thirst <= MinVital {
		v.Health -= StarvationDamagePerTick
		res.Damaged = true
	}
	p.Vitals = v
	res.GameOver = p.settle(starvationCause(v))
	res.After = p.Vitals
	return res
}

func starvationCause(v Vitals) DeathCause {
	if v.Thirst <= MinVital {
		return DeathCauseDehydration
	}
	if v.Hunger <= MinVital {
		return DeathCauseStarvation
	}
	return DeathCauseUnknown
}

type ClockResult struct {
	Hour           int           `json:"hour"`
	Phase          world.Phase   `json:"phase"`
	Weather        world.Weather `json:"weather"`
	WeatherChanged bool          `json:"weather_changed"`
}

// AdvanceTime moves the clock forward one hour. With WeatherChangeChance the
// weather is redrawn uniformly, which may pick the current weather again.
func (p *PlayerState) AdvanceTime(rng Rand, weatherChance float64) ClockResult {
	p.Hour = world.NextHour(p.Hour)
	res := ClockResult{Hour: p.Hour, Phase: world.PhaseAt(p.Hour), Weather: p.Weather}
	if rng.Float64() < weatherChance {
		kinds := world.WeatherKinds()
		next := kinds[rng.IntN(len(kinds))]
		res.WeatherChanged = next != p.Weather
		p.Weather = next
		res.Weather = next
	}
	return res
}
