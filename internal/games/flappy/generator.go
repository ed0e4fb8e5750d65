package flappy

import (
	"github.com/vovakirdan/flappy-bounce/internal/config"
	"github.com/vovakirdan/flappy-bounce/internal/core"
)

// PipeSpec is the shape of the next pipe, before it is placed on screen.
type PipeSpec struct {
	Gap        int
	TopHeight  int
	Center     float64
	BounceZone bool
}

// Generator decides when the next pipe appears and what it looks like.
// Every random draw goes through rng, in a fixed order per spawn:
// gap variance, gap center, bounce zone, then the next interval.
type Generator struct {
	pipes   config.PipeConfig
	spawn   config.SpawnConfig
	screenH int
	rng     core.Random

	lastCenter float64
	hasLast    bool

	timer    float64 // ms since the last spawn
	interval float64 // ms until the next spawn
}

// NewGenerator creates a generator for a playfield of height screenH.
func NewGenerator(pipes config.PipeConfig, spawn config.SpawnConfig, screenH int, rng core.Random) *Generator {
	return &Generator{
		pipes:   pipes,
		spawn:   spawn,
		screenH: screenH,
		rng:     rng,
	}
}

// Reset forgets the previous gap center and zeroes the timers.
func (g *Generator) Reset() {
	g.hasLast = false
	g.lastCenter = 0
	g.timer = 0
	g.interval = 0
}

// Next draws the shape of the next pipe and remembers its gap center.
// Geometry that cannot satisfy the minimum segment height is clamped,
// never reported.
func (g *Generator) Next() PipeSpec {
	h := g.screenH
	minH := g.pipes.MinHeight

	gap := int(g.pipes.BaseGap * (1 + core.Uniform(g.rng, -g.pipes.GapVariance, g.pipes.GapVariance)))
	if maxGap := h - 2*minH; maxGap < 1 {
		// The playfield cannot fit both minimum segments; shrink them.
		minH = core.Max(0, (h-1)/2)
		gap = core.Clamp(gap, 1, h-2*minH)
	} else {
		gap = core.Clamp(gap, 1, maxGap)
	}

	half := float64(gap) / 2
	lo := float64(minH) + half
	hi := float64(h-minH) - half
	if g.hasLast {
		nlo := max(lo, g.lastCenter-g.pipes.MaxUpShift)
		nhi := min(hi, g.lastCenter+g.pipes.MaxDownShift)
		if nlo <= nhi {
			lo, hi = nlo, nhi
		}
	}
	center := core.Uniform(g.rng, lo, hi)

	top := core.Clamp(core.Round(center-half), minH, h-minH-gap)

	g.lastCenter = center
	g.hasLast = true

	return PipeSpec{
		Gap:        gap,
		TopHeight:  top,
		Center:     center,
		BounceZone: core.Chance(g.rng, g.pipes.BounceChance),
	}
}

// Interval draws a spawn interval in ms for the given scroll speed.
// Slower or faster play rescales it so spacing in pixels stays roughly
// constant.
func (g *Generator) Interval(speed float64) float64 {
	if speed <= 0 {
		speed = g.spawn.ReferenceSpeed
	}
	base := g.spawn.BaseIntervalMs * (g.spawn.ReferenceSpeed / speed)
	return base * (1 + core.Uniform(g.rng, -g.spawn.Variance, g.spawn.Variance))
}

// Start produces the first pipe of an episode and schedules the next one.
func (g *Generator) Start(speed float64) PipeSpec {
	g.Reset()
	return g.Spawn(speed)
}

// Spawn produces a pipe now and schedules the next one.
func (g *Generator) Spawn(speed float64) PipeSpec {
	spec := g.Next()
	g.timer = 0
	g.interval = g.Interval(speed)
	return spec
}

// Tick accumulates dt milliseconds and reports whether a spawn is due.
func (g *Generator) Tick(dt float64) bool {
	g.timer += dt
	return g.timer >= g.interval
}

// LastCenter returns the most recent gap center, if any.
func (g *Generator) LastCenter() (float64, bool) {
	return g.lastCenter, g.hasLast
}

// Timer returns ms elapsed since the last spawn.
func (g *Generator) Timer() float64 { return g.timer }

// NextInterval returns the current spawn interval in ms.
func (g *Generator) NextInterval() float64 { return g.interval }
