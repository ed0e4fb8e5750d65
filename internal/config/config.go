// Package config provides YAML-based game configuration loading, difficulty
// presets and hot reload for the flappy game.
package config

import (
	"errors"
	"fmt"
)

// FlappyConfig contains all tuning for the flappy simulation.
// Distances are logical pixels, speeds px/s, durations milliseconds.
type FlappyConfig struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Bird      BirdConfig      `yaml:"bird"`
	Pipes     PipeConfig      `yaml:"pipes"`
	Spawn     SpawnConfig     `yaml:"spawn"`
	Explosion ExplosionConfig `yaml:"explosion"`
	Scoring   ScoringConfig   `yaml:"scoring"`
	Debug     DebugConfig     `yaml:"debug"`
	Timing    TimingConfig    `yaml:"timing"`
}

// ScreenConfig is the logical playfield size.
type ScreenConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// PhysicsConfig defines the bird's vertical kinematics.
type PhysicsConfig struct {
	Gravity      float64 `yaml:"gravity"`       // px/s^2, positive is down
	JumpVelocity float64 `yaml:"jump_velocity"` // px/s, negative is up
	Restitution  float64 `yaml:"restitution"`   // velocity kept on a bounce
}

// BirdConfig places the bird and times its wing animation.
type BirdConfig struct {
	X               float64 `yaml:"x"`
	StartY          float64 `yaml:"start_y"`
	Radius          float64 `yaml:"radius"`
	FrameDurationMs float64 `yaml:"frame_duration_ms"`
}

// PipeConfig shapes every spawned pipe.
type PipeConfig struct {
	Width          int     `yaml:"width"`
	BaseGap        float64 `yaml:"base_gap"`
	GapVariance    float64 `yaml:"gap_variance"` // fraction, gap = base * (1 ± variance)
	MinHeight      int     `yaml:"min_height"`   // minimum segment height
	BaseSpeed      float64 `yaml:"base_speed"`
	SpeedIncrement float64 `yaml:"speed_increment"` // added per scored pipe
	BounceChance   float64 `yaml:"bounce_chance"`
	MaxUpShift     float64 `yaml:"max_up_shift"`   // gap center may rise at most this much
	MaxDownShift   float64 `yaml:"max_down_shift"` // gap center may sink at most this much
	FirstOffset    float64 `yaml:"first_offset"`   // first pipe x = bird x + offset
	StripeHeight   int     `yaml:"stripe_height"`  // bounce stripe drawn on bounce pipes
}

// SpawnConfig times pipe spawning.
type SpawnConfig struct {
	BaseIntervalMs float64 `yaml:"base_interval_ms"`
	ReferenceSpeed float64 `yaml:"reference_speed"` // speed at which base interval applies
	Variance       float64 `yaml:"variance"`
}

// ExplosionConfig times the crash animation.
type ExplosionConfig struct {
	FrameDurationMs float64 `yaml:"frame_duration_ms"`
}

// ScoringConfig defines points per passed pipe.
type ScoringConfig struct {
	PassPoints   int `yaml:"pass_points"`
	BouncePoints int `yaml:"bounce_points"`
}

// DebugConfig controls the debug toggle.
type DebugConfig struct {
	StartEnabled      bool `yaml:"start_enabled"`
	DisableCollisions bool `yaml:"disable_collisions"` // debug mode turns collision checks off
}

// TimingConfig bounds the variable timestep.
type TimingConfig struct {
	MaxFrameDtMs float64 `yaml:"max_frame_dt_ms"` // 0 disables the clamp
}

// ErrInvalidConfig is wrapped by Validate failures.
var ErrInvalidConfig = errors.New("invalid config")

// Validate rejects values the simulation cannot work with.
// Gap geometry that merely does not fit is clamped by the generator and is
// not an error here.
func (c FlappyConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
		}
	}

	check(c.Screen.Width > 0 && c.Screen.Height > 0, "screen must be positive, got %dx%d", c.Screen.Width, c.Screen.Height)
	check(c.Physics.Restitution >= 0 && c.Physics.Restitution <= 1, "restitution %v outside [0,1]", c.Physics.Restitution)
	check(c.Bird.Radius > 0, "bird radius must be positive")
	check(c.Bird.FrameDurationMs > 0, "bird frame duration must be positive")
	check(c.Pipes.Width > 0, "pipe width must be positive")
	check(c.Pipes.BaseGap > 0, "base gap must be positive")
	check(c.Pipes.GapVariance >= 0 && c.Pipes.GapVariance < 1, "gap variance %v outside [0,1)", c.Pipes.GapVariance)
	check(c.Pipes.MinHeight >= 0, "min height must not be negative")
	check(c.Pipes.BaseSpeed > 0, "base speed must be positive")
	check(c.Pipes.SpeedIncrement >= 0, "speed increment must not be negative")
	check(c.Pipes.BounceChance >= 0 && c.Pipes.BounceChance <= 1, "bounce chance %v outside [0,1]", c.Pipes.BounceChance)
	check(c.Pipes.MaxUpShift >= 0 && c.Pipes.MaxDownShift >= 0, "gap shifts must not be negative")
	check(c.Spawn.BaseIntervalMs > 0, "spawn interval must be positive")
	check(c.Spawn.ReferenceSpeed > 0, "reference speed must be positive")
	check(c.Spawn.Variance >= 0 && c.Spawn.Variance < 1, "spawn variance %v outside [0,1)", c.Spawn.Variance)
	check(c.Explosion.FrameDurationMs > 0, "explosion frame duration must be positive")

	return errors.Join(errs...)
}
