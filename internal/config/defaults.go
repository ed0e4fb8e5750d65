package config

import (
	_ "embed"
)

//go:embed defaults/flappy.yaml
var defaultFlappyYAML []byte

// DefaultFlappyConfig returns the built-in configuration. It mirrors
// defaults/flappy.yaml and is used when the embedded file cannot be parsed.
func DefaultFlappyConfig() FlappyConfig {
	return FlappyConfig{
		Screen: ScreenConfig{
			Width:  400,
			Height: 600,
		},
		Physics: PhysicsConfig{
			Gravity:      200.0,
			JumpVelocity: -105.0,
			Restitution:  0.8,
		},
		Bird: BirdConfig{
			X:               100,
			StartY:          300,
			Radius:          20,
			FrameDurationMs: 80,
		},
		Pipes: PipeConfig{
			Width:          70,
			BaseGap:        170,
			GapVariance:    0.25,
			MinHeight:      50,
			BaseSpeed:      100,
			SpeedIncrement: 4,
			BounceChance:   0.2,
			MaxUpShift:     110,
			MaxDownShift:   170,
			FirstOffset:    250,
			StripeHeight:   8,
		},
		Spawn: SpawnConfig{
			BaseIntervalMs: 2400,
			ReferenceSpeed: 100,
			Variance:       0.25,
		},
		Explosion: ExplosionConfig{
			FrameDurationMs: 60,
		},
		Scoring: ScoringConfig{
			PassPoints:   10,
			BouncePoints: 100,
		},
		Debug: DebugConfig{
			StartEnabled:      false,
			DisableCollisions: true,
		},
		Timing: TimingConfig{
			MaxFrameDtMs: 100,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultFlappyYAML
}
