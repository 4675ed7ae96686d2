package world

type Phase string

const (
	PhaseDay   Phase = "day"
	PhaseNight Phase = "night"
)

const (
	HoursPerDay = 24
	DawnHour    = 6
	DuskHour    = 18
	StartHour   = 8
)

// PhaseAt derives day or night from the hour of day.
func PhaseAt(hour int) Phase {
	hour = NormalizeHour(hour)
	if hour >= DawnHour && hour < DuskHour {
		return PhaseDay
	}
	return PhaseNight
}

func NormalizeHour(hour int) int {
	hour %= HoursPerDay
	if hour < 0 {
		hour += HoursPerDay
	}
	return hour
}

// NextHour advances the clock by one hour, wrapping at midnight.
func NextHour(hour int) int {
	return NormalizeHour(hour + 1)
}

// HoursUntilPhaseChange counts whole hours until the next dawn or dusk.
func HoursUntilPhaseChange(hour int) int {
	hour = NormalizeHour(hour)
	switch {
	case hour < DawnHour:
		return DawnHour - hour
	case hour < DuskHour:
		return DuskHour - hour
	default:
		return HoursPerDay - hour + DawnHour
	}
}
