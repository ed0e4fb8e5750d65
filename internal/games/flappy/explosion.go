package flappy

import (
	"github.com/vovakirdan/flappy-bounce/internal/assets"
	"github.com/vovakirdan/flappy-bounce/internal/core"
)

// Explosion plays its frames once at a fixed point and then reports Done.
type Explosion struct {
	X, Y float64

	frames   []*assets.Frame // shared, never modified
	index    int
	timer    float64
	duration float64
	done     bool
}

// NewExplosion starts an explosion centered at (x, y).
func NewExplosion(x, y float64, frames []*assets.Frame, frameDurationMs float64) *Explosion {
	return &Explosion{
		X:        x,
		Y:        y,
		frames:   frames,
		duration: frameDurationMs,
		done:     len(frames) == 0,
	}
}

// Advance moves to the next frame once the frame duration has elapsed.
func (e *Explosion) Advance(dt float64) {
	if e.done {
		return
	}
	e.timer += dt
	if e.timer >= e.duration {
		e.timer -= e.duration
		e.index++
		if e.index >= len(e.frames) {
			e.index = len(e.frames) - 1
			e.done = true
		}
	}
}

// Done reports whether the last frame has been consumed.
func (e *Explosion) Done() bool { return e.done }

// Index returns the current frame index.
func (e *Explosion) Index() int { return e.index }

// Image returns the current frame, nil for an empty sequence.
func (e *Explosion) Image() *assets.Frame {
	if len(e.frames) == 0 {
		return nil
	}
	return e.frames[e.index]
}

// Rect returns the render rectangle of the current frame.
func (e *Explosion) Rect() core.Rect {
	img := e.Image()
	if img == nil {
		return core.NewRect(int(e.X), int(e.Y), 0, 0)
	}
	return core.RectCentered(int(e.X), int(e.Y), img.Width, img.Height)
}
