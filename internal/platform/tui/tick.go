// Package tui provides the Bubble Tea integration for the game.
// It handles the terminal UI loop, input mapping, frame timing and the
// menu and replay screens.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/flappy-bounce/internal/config"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// ConfigReloadedMsg carries a configuration reloaded from disk.
type ConfigReloadedMsg struct {
	Config config.FlappyConfig
}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// frameDelta is the simulated time between two ticks. It is truncated to
// microseconds so a recorded replay feeds the game the exact same values.
func frameDelta(prev, now time.Time, nominal time.Duration) time.Duration {
	if prev.IsZero() {
		return nominal.Truncate(time.Microsecond)
	}
	dt := now.Sub(prev)
	if dt < 0 {
		dt = 0
	}
	return dt.Truncate(time.Microsecond)
}
