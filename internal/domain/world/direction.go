package world

import "strings"

type Direction string

const (
	North Direction = "north"
	South Direction = "south"
	East  Direction = "east"
	West  Direction = "west"
)

func ParseDirection(raw string) (Direction, bool) {
	switch d := Direction(strings.ToLower(strings.TrimSpace(raw))); d {
	case North, South, East, West:
		return d, true
	default:
		return "", false
	}
}

// Step moves one tile in dir, clamped to a size×size grid.
func Step(from Point, dir Direction, size int) Point {
	next := from
	switch dir {
	case North:
		next.Y--
	case South:
		next.Y++
	case West:
		next.X--
	case East:
		next.X++
	}
	next.X = clamp(next.X, 0, size-1)
	next.Y = clamp(next.Y, 0, size-1)
	return next
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
