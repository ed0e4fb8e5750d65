package flappy

import (
	"github.com/vovakirdan/flappy-bounce/internal/assets"
	"github.com/vovakirdan/flappy-bounce/internal/core"
)

// Sprite is anything placed on the playfield that moves or animates with
// elapsed time. dt is in milliseconds.
type Sprite interface {
	Rect() core.Rect
	Advance(dt float64)
}

// Imaged is a sprite drawn from an asset frame rather than procedurally.
type Imaged interface {
	Sprite
	Image() *assets.Frame
}

var (
	_ Imaged = (*Bird)(nil)
	_ Imaged = (*Explosion)(nil)
	_ Sprite = (*Pipe)(nil)
)
