package survival

import "time"

const (
	MinVital = 0.0
	MaxVital = 100.0

	HungerDecayPerTick      = 1.0
	ThirstDecayPerTick      = 1.5
	StarvationDamagePerTick = 1.0

	MoveHungerCost        = 1.0
	MoveThirstCost        = 1.0
	MoveTimeAdvanceChance = 0.2

	WeatherChangeChance = 0.1

	DefaultDecayInterval = 10 * time.Second

	LowVitalThreshold   = 20.0
	CriticalHPThreshold = 15.0
)
