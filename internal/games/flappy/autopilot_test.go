package flappy

import (
	"testing"

	"github.com/vovakirdan/flappy-bounce/internal/core"
)

func TestAutopilotDecide(t *testing.T) {
	tests := []struct {
		name     string
		y        float64
		velocity float64
		phase    Phase
		restart  bool
		want     core.Action
	}{
		{"below gap and falling", 500, 10, PhasePlaying, false, core.ActionFlap},
		{"below gap but rising", 500, -50, PhasePlaying, false, core.ActionNone},
		{"above gap", 100, 10, PhasePlaying, false, core.ActionNone},
		{"exploding", 500, 10, PhaseExploding, false, core.ActionNone},
		{"game over with restart", 500, 10, PhaseGameOver, true, core.ActionRestart},
		{"game over without restart", 500, 10, PhaseGameOver, false, core.ActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGame(t, WithSeed(1))
			cfg := g.Config()
			// Gap 200..350, target a little under its center.
			g.ep.pipes = []*Pipe{NewPipe(300, PipeSpec{Gap: 150, TopHeight: 200}, g.Speed(), cfg.Pipes.Width, cfg.Screen.Height)}
			g.ep.phase = tt.phase
			g.Bird().Y = tt.y
			g.Bird().Velocity = tt.velocity

			in := Autopilot{Restart: tt.restart}.Decide(g)

			if tt.want == core.ActionNone {
				if !in.Empty() {
					t.Errorf("expected no input, got mask %08b", in.Mask())
				}
				return
			}
			if !in.Has(tt.want) {
				t.Errorf("expected %v, got mask %08b", tt.want, in.Mask())
			}
		})
	}
}
