package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// presetScaling describes how a preset bends the loaded config.
type presetScaling struct {
	speed        float64 // multiplier on base speed
	increment    float64 // multiplier on per-pipe speed increment
	bounceChance float64 // replaces bounce chance when >= 0
}

var presets = map[DifficultyPreset]presetScaling{
	DifficultyEasy:   {speed: 0.8, increment: 0.5, bounceChance: 0.3},
	DifficultyNormal: {speed: 1.0, increment: 1.0, bounceChance: -1},
	DifficultyHard:   {speed: 1.25, increment: 1.5, bounceChance: 0.1},
	DifficultyFixed:  {speed: 1.0, increment: 0, bounceChance: -1},
}

// ParsePreset converts a CLI string to a preset. An empty string means
// "use the config as loaded" and returns "".
func ParsePreset(s string) (DifficultyPreset, error) {
	if s == "" {
		return "", nil
	}
	p := DifficultyPreset(s)
	if _, ok := presets[p]; !ok {
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
	return p, nil
}

// ApplyPreset modifies the config based on a difficulty preset.
// Fixed keeps the base speed for the whole episode.
func ApplyPreset(cfg *FlappyConfig, preset DifficultyPreset) {
	scaling, ok := presets[preset]
	if !ok {
		return
	}
	cfg.Pipes.BaseSpeed *= scaling.speed
	cfg.Pipes.SpeedIncrement *= scaling.increment
	if scaling.bounceChance >= 0 {
		cfg.Pipes.BounceChance = scaling.bounceChance
	}
}
