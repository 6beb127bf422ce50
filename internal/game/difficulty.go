package game

import (
	"fmt"
	"strings"
)

// Tier is the difficulty chosen on the settings screen. It only decides where
// on the ramp a run starts.
type Tier int

const (
	TierEasy Tier = iota
	TierNormal
	TierHard
	TierExpert
)

var tierNames = [...]string{"easy", "normal", "hard", "expert"}

// Tiers lists every tier in menu order.
var Tiers = []Tier{TierEasy, TierNormal, TierHard, TierExpert}

func (t Tier) String() string {
	if t < 0 || int(t) >= len(tierNames) {
		return fmt.Sprintf("tier(%d)", int(t))
	}
	return tierNames[t]
}

// StartOffset is the elapsed time a run begins with.
// Easy starts below zero so the ramp is delayed by 20 s; expert starts at the top.
func (t Tier) StartOffset() float64 {
	switch t {
	case TierEasy:
		return -20
	case TierHard:
		return 40
	case TierExpert:
		return RampWindow
	default:
		return 0
	}
}

// Next cycles to the following tier, wrapping after expert.
func (t Tier) Next() Tier {
	return Tier((int(t) + 1) % len(tierNames))
}

func (t Tier) Prev() Tier {
	return Tier((int(t) + len(tierNames) - 1) % len(tierNames))
}

// ParseTier accepts a tier name (case-insensitive) or its menu index 0-3.
func ParseTier(s string) (Tier, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range tierNames {
		if s == name || s == fmt.Sprint(i) {
			return Tier(i), nil
		}
	}
	return TierNormal, fmt.Errorf("unknown difficulty %q", s)
}

// Progress maps elapsed seconds to ramp progress in [0, 1].
// The ramp is continuous in time, so it behaves the same at any frame rate.
func Progress(elapsed float64) float64 {
	return clampF(elapsed/RampWindow, 0, 1)
}

// SpawnInterval is the seconds between spawn rounds; it shrinks as progress rises.
func SpawnInterval(elapsed float64) float64 {
	return lerp(InitialSpawnInterval, MinSpawnInterval, Progress(elapsed))
}

// ObstacleSpeed is the fall speed of traffic in px/s; it grows as progress rises.
func ObstacleSpeed(elapsed float64) float64 {
	return lerp(InitialObstacleSpeed, MaxObstacleSpeed, Progress(elapsed))
}

// Level is the 0..10 value shown on the difficulty meter.
func Level(elapsed float64) int {
	return int(Progress(elapsed) * DifficultyLevels)
}
