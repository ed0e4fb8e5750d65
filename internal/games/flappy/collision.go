package flappy

import "github.com/vovakirdan/flappy-bounce/internal/core"

// resolveCollisions checks the ground first, then each pipe's top and
// bottom segment. A falling bird that lands on the top edge of a bounce
// zone is thrown back up; every other contact ends the run.
func (g *Game) resolveCollisions() {
	ep := &g.ep
	b := ep.bird

	if b.Bottom() >= float64(g.cfg.Screen.Height) {
		g.crash("ground")
		return
	}

	r := b.Radius()
	for _, p := range ep.pipes {
		if core.CircleIntersectsRect(b.X, b.Y, r, p.TopRect) {
			g.crash("top pipe")
			return
		}
		if !core.CircleIntersectsRect(b.X, b.Y, r, p.BottomRect) {
			continue
		}

		_, ny := p.BottomRect.NearestPoint(b.X, b.Y)
		top := float64(p.BottomRect.Y)
		if ny == top && p.BounceZone && b.Velocity > 0 {
			b.Velocity = -b.Velocity * g.cfg.Physics.Restitution
			b.Y = top - r
			b.syncRect()
			p.Bounced = true
			g.emit(core.Event{Kind: core.EventBounced})
			continue
		}

		g.crash("bottom pipe")
		return
	}
}

// crash starts the explosion and takes the bird out of play. The bird
// itself is kept for its burnt pose.
func (g *Game) crash(cause string) {
	ep := &g.ep
	b := ep.bird
	ep.explosions = append(ep.explosions, NewExplosion(b.X, b.Y, g.explosionFrames, g.cfg.Explosion.FrameDurationMs))
	ep.birdActive = false
	g.emit(core.Event{Kind: core.EventCrashed, Detail: cause})
	g.setPhase(PhaseExploding)
}
