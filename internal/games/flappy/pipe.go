package flappy

import "github.com/vovakirdan/flappy-bounce/internal/core"

// Pipe is a top and bottom segment pair with a gap between them.
type Pipe struct {
	posX float64 // left edge, sub-pixel

	Width        int
	Gap          int
	TopHeight    int
	BottomY      int // top edge of the bottom segment
	BottomHeight int
	Speed        float64 // px/s, written by the game on every speed bump

	TopRect    core.Rect
	BottomRect core.Rect

	Passed     bool // scored
	Bounced    bool // the bird bounced off it at least once
	BounceZone bool // bottom segment's top edge is a bounce surface
}

// NewPipe builds a pipe with its left edge at x.
func NewPipe(x float64, spec PipeSpec, speed float64, width, screenH int) *Pipe {
	p := &Pipe{
		posX:         x,
		Width:        width,
		Gap:          spec.Gap,
		TopHeight:    spec.TopHeight,
		BottomY:      spec.TopHeight + spec.Gap,
		BottomHeight: screenH - spec.TopHeight - spec.Gap,
		Speed:        speed,
		BounceZone:   spec.BounceZone,
	}
	p.TopRect = core.NewRect(0, 0, width, p.TopHeight)
	p.BottomRect = core.NewRect(0, p.BottomY, width, p.BottomHeight)
	p.syncRects()
	return p
}

// Advance scrolls the pipe left by Speed over dt milliseconds.
func (p *Pipe) Advance(dt float64) {
	p.posX -= p.Speed * dt / 1000.0
	p.syncRects()
}

func (p *Pipe) syncRects() {
	x := core.Round(p.posX)
	p.TopRect.X = x
	p.BottomRect.X = x
}

// X returns the sub-pixel left edge.
func (p *Pipe) X() float64 { return p.posX }

// Right returns the integer right edge of the collision rectangles.
func (p *Pipe) Right() int { return p.TopRect.Right() }

// Offscreen reports whether the pipe has fully left the screen.
func (p *Pipe) Offscreen() bool { return p.TopRect.Right() < 0 }

// SetSpeed changes the scroll speed.
func (p *Pipe) SetSpeed(v float64) { p.Speed = v }

// Rect returns the whole column the pipe occupies.
func (p *Pipe) Rect() core.Rect {
	return core.NewRect(p.TopRect.X, 0, p.Width, p.TopHeight+p.Gap+p.BottomHeight)
}

// GapCenter returns the vertical middle of the gap.
func (p *Pipe) GapCenter() float64 {
	return float64(p.TopHeight) + float64(p.Gap)/2
}
