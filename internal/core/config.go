package core

import "time"

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW  int   // Terminal width in characters
	ScreenH  int   // Terminal height in characters
	TickRate int   // Frame requests per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// FrameInterval returns the wall-clock interval between frame requests.
func (c RuntimeConfig) FrameInterval() time.Duration {
	rate := c.TickRate
	if rate <= 0 {
		rate = 60
	}
	return time.Second / time.Duration(rate)
}

// GameState is the summary a game reports to the platform after each step.
type GameState struct {
	Score    int    // Current score
	Phase    string // Game-specific phase name
	GameOver bool   // Whether the episode has ended
	Paused   bool   // Whether the game is paused
	Debug    bool   // Whether the debug overlay is on
}

// Event is something noteworthy that happened during a step.
// Events are informational; the platform logs them.
type Event struct {
	Kind   EventKind
	Points int    // EventScored
	Detail string // Free-form context (crash cause, phase names)
}

// EventKind enumerates event types.
type EventKind int

const (
	EventScored EventKind = iota
	EventBounced
	EventCrashed
	EventPhaseChanged
	EventSpawned
)

// String returns the event kind name.
func (k EventKind) String() string {
	switch k {
	case EventScored:
		return "scored"
	case EventBounced:
		return "bounced"
	case EventCrashed:
		return "crashed"
	case EventPhaseChanged:
		return "phase"
	case EventSpawned:
		return "spawned"
	default:
		return "unknown"
	}
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State  GameState
	Events []Event
}
