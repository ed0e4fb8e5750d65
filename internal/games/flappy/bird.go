package flappy

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/flappy-bounce/internal/assets"
	"github.com/vovakirdan/flappy-bounce/internal/config"
	"github.com/vovakirdan/flappy-bounce/internal/core"
)

// BirdFrames are the images a bird cycles through.
type BirdFrames struct {
	Glide *assets.Frame   // neutral wings, shown when not flapping
	Wings []*assets.Frame // flap sequence
	Burnt *assets.Frame   // terminal pose after an explosion
}

// LoadBirdFrames fetches the bird's frames. A missing burnt sprite falls
// back to the glide frame; anything else missing is an error.
func LoadBirdFrames(p *assets.Provider) (BirdFrames, error) {
	var frames BirdFrames
	var err error

	if frames.Glide, err = p.Frame(assets.WingsLevel); err != nil {
		return frames, err
	}
	for _, name := range []string{assets.WingsDown, assets.WingsLevel, assets.WingsUp} {
		f, err := p.Frame(name)
		if err != nil {
			return frames, err
		}
		frames.Wings = append(frames.Wings, f)
	}

	frames.Burnt, err = p.Frame(assets.BirdBurnt)
	if errors.Is(err, assets.ErrAssetUnavailable) {
		frames.Burnt = frames.Glide
	} else if err != nil {
		return frames, fmt.Errorf("flappy: burnt sprite: %w", err)
	}
	return frames, nil
}

// Bird is the player. Only its vertical position is dynamic.
type Bird struct {
	X        float64 // fixed horizontal center
	Y        float64 // vertical center, grows downward
	Velocity float64 // px/s, negative is up

	gravity       float64
	jumpVelocity  float64
	frameDuration float64 // ms per wing frame
	radius        float64

	frames    BirdFrames
	image     *assets.Frame
	animIndex int
	animTimer float64
	animating bool
	frozen    bool
	rect      core.Rect
}

// NewBird places a gliding bird centered at (x, y).
func NewBird(x, y float64, frames BirdFrames, physics config.PhysicsConfig, bird config.BirdConfig) *Bird {
	b := &Bird{
		X:             x,
		Y:             y,
		gravity:       physics.Gravity,
		jumpVelocity:  physics.JumpVelocity,
		frameDuration: bird.FrameDurationMs,
		radius:        bird.Radius,
		frames:        frames,
		image:         frames.Glide,
	}
	b.syncRect()
	return b
}

// Advance integrates gravity, steps the wing animation and keeps the bird
// below the top of the screen. A frozen bird does not change.
func (b *Bird) Advance(dt float64) {
	if b.frozen {
		return
	}
	sec := dt / 1000.0
	b.Velocity += b.gravity * sec
	b.Y += b.Velocity * sec

	b.animate(dt)

	// Ceiling: clamp and lose upward momentum. The floor is the game's
	// business, not the bird's.
	if half := b.HalfHeight(); b.Y < half {
		b.Y = half
		b.Velocity = 0
	}
	b.syncRect()
}

func (b *Bird) animate(dt float64) {
	if b.animating {
		b.animTimer += dt
		if b.animTimer >= b.frameDuration {
			b.animTimer -= b.frameDuration
			b.animIndex++
			if b.animIndex >= len(b.frames.Wings) {
				b.animating = false
			}
		}
	}
	if b.animating {
		b.image = b.frames.Wings[b.animIndex]
	} else {
		b.image = b.frames.Glide
	}
}

// Flap gives the bird its upward impulse. An animation already in
// progress keeps running; otherwise a new one starts at frame 0.
func (b *Bird) Flap() {
	b.Velocity = b.jumpVelocity
	if !b.animating {
		b.animating = true
		b.animIndex = 0
		b.animTimer = 0
	}
}

// Freeze stops the bird for good and shows its burnt pose at its last
// position.
func (b *Bird) Freeze() {
	b.animating = false
	b.animIndex = 0
	b.animTimer = 0
	b.image = b.frames.Burnt
	b.frozen = true
	b.syncRect()
}

func (b *Bird) syncRect() {
	b.rect = core.RectCentered(int(b.X), int(b.Y), b.image.Width, b.image.Height)
}

// Image returns the frame currently displayed.
func (b *Bird) Image() *assets.Frame { return b.image }

// Rect returns the bird's render rectangle.
func (b *Bird) Rect() core.Rect { return b.rect }

// Radius is the collision circle radius.
func (b *Bird) Radius() float64 { return b.radius }

// HalfHeight is half the current sprite height.
func (b *Bird) HalfHeight() float64 { return float64(b.image.Height) / 2 }

// Bottom is the lower edge of the current sprite.
func (b *Bird) Bottom() float64 { return b.Y + b.HalfHeight() }

// Animating reports whether a flap animation is in progress.
func (b *Bird) Animating() bool { return b.animating }

// AnimIndex is the current wing frame index.
func (b *Bird) AnimIndex() int { return b.animIndex }

// Frozen reports whether the bird has been frozen after a crash.
func (b *Bird) Frozen() bool { return b.frozen }
