package flappy

import "github.com/vovakirdan/flappy-bounce/internal/core"

// Autopilot is a simple controller that aims for the middle of the next
// gap. It reads the game and never mutates it.
type Autopilot struct {
	// Margin is how far below the target the bird may sink before flapping.
	Margin float64
	// Restart makes the autopilot press restart on game over.
	Restart bool
}

// Decide returns the input for the next tick.
func (a Autopilot) Decide(g *Game) core.InputFrame {
	in := core.NewInputFrame()
	switch g.Phase() {
	case PhaseGameOver:
		if a.Restart {
			in.Set(core.ActionRestart)
		}
		return in
	case PhaseExploding:
		return in
	}

	b := g.Bird()
	target := float64(g.Config().Screen.Height) / 2
	for _, p := range g.Pipes() {
		if float64(p.Right()) >= b.X-b.Radius() {
			// Aim a bit below center: a flap lifts the bird well past it.
			target = p.GapCenter() + float64(p.Gap)/6
			break
		}
	}

	if b.Y > target+a.Margin && b.Velocity >= 0 {
		in.Set(core.ActionFlap)
	}
	return in
}
