// Package snapshot draws the flappy playfield into an image at its logical
// pixel size, for screenshots and headless previews.
package snapshot

import (
	"fmt"
	"image"
	"io"
	"math"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"github.com/vovakirdan/flappy-bounce/internal/core"
	"github.com/vovakirdan/flappy-bounce/internal/games/flappy"
)

// palette maps screen colours to RGB in [0,1].
var palette = map[core.Color][3]float64{
	core.ColorDefault:      {0.9, 0.9, 0.9},
	core.ColorRed:          {0.8, 0.1, 0.1},
	core.ColorGreen:        {0.2, 0.6, 0.2},
	core.ColorYellow:       {0.9, 0.8, 0.1},
	core.ColorBlue:         {0.2, 0.3, 0.8},
	core.ColorCyan:         {0.1, 0.8, 0.8},
	core.ColorWhite:        {1, 1, 1},
	core.ColorBrightRed:    {1, 0.3, 0.3},
	core.ColorBrightGreen:  {0.4, 0.9, 0.4},
	core.ColorBrightYellow: {1, 0.9, 0.2},
	core.ColorOrange:       {1, 0.55, 0.1},
	core.ColorGray:         {0.45, 0.45, 0.45},
}

func setColor(dc *gg.Context, c core.Color) {
	rgb, ok := palette[c]
	if !ok {
		rgb = palette[core.ColorDefault]
	}
	dc.SetRGB(rgb[0], rgb[1], rgb[2])
}

// Render draws the game at one image pixel per logical pixel.
func Render(g *flappy.Game) image.Image {
	cfg := g.Config()
	w, h := cfg.Screen.Width, cfg.Screen.Height
	dc := gg.NewContext(w, h)

	// Sky
	dc.SetRGB(0.45, 0.75, 0.95)
	dc.Clear()

	for _, p := range g.Pipes() {
		drawPipe(dc, p, cfg.Pipes.StripeHeight)
	}

	// Ground
	setColor(dc, core.ColorGray)
	dc.SetLineWidth(4)
	dc.DrawLine(0, float64(h)-2, float64(w), float64(h)-2)
	dc.Stroke()

	if g.BirdVisible() {
		drawBird(dc, g.Bird())
		if g.Debug() {
			setColor(dc, core.ColorCyan)
			dc.SetLineWidth(1)
			dc.DrawCircle(g.Bird().X, g.Bird().Y, g.Bird().Radius())
			dc.Stroke()
		}
	}
	for _, e := range g.Explosions() {
		drawExplosion(dc, e)
	}

	setColor(dc, core.ColorWhite)
	dc.DrawString(fmt.Sprintf("Score: %d", g.Score()), 8, 16)
	if g.Phase() == flappy.PhaseGameOver {
		dc.DrawStringAnchored("Game Over!", float64(w)/2, float64(h)/2, 0.5, 0.5)
	}

	return dc.Image()
}

func drawPipe(dc *gg.Context, p *flappy.Pipe, stripe int) {
	setColor(dc, core.ColorGreen)
	for _, r := range []core.Rect{p.TopRect, p.BottomRect} {
		dc.DrawRectangle(float64(r.X), float64(r.Y), float64(r.W), float64(r.H))
		dc.Fill()
	}
	if p.BounceZone && stripe > 0 {
		setColor(dc, core.ColorYellow)
		r := p.BottomRect
		dc.DrawRectangle(float64(r.X), float64(r.Y), float64(r.W), float64(min(stripe, r.H)))
		dc.Fill()
	}
}

func drawBird(dc *gg.Context, b *flappy.Bird) {
	img := b.Image()
	rw, rh := float64(img.Width)/2, float64(img.Height)/2

	setColor(dc, img.Color)
	dc.DrawEllipse(b.X, b.Y, rw, rh)
	dc.Fill()

	// Eye, looking ahead
	dc.SetRGB(0, 0, 0)
	dc.DrawCircle(b.X+rw/2, b.Y-rh/3, math.Max(2, rh/6))
	dc.Fill()

	// Wing position follows the animation frame.
	setColor(dc, core.ColorWhite)
	wingY := b.Y
	if b.Animating() {
		wingY += float64(b.AnimIndex()-1) * rh / 2
	}
	dc.DrawEllipse(b.X-rw/3, wingY, rw/3, rh/4)
	dc.Fill()
}

func drawExplosion(dc *gg.Context, e *flappy.Explosion) {
	img := e.Image()
	if img == nil {
		return
	}
	// Rings grow with the frame index.
	progress := float64(e.Index()+1) / 8
	radius := float64(img.Width) / 2 * math.Min(1, progress)
	setColor(dc, img.Color)
	dc.DrawCircle(e.X, e.Y, radius)
	dc.Fill()
	setColor(dc, core.ColorBrightYellow)
	dc.DrawCircle(e.X, e.Y, radius/2)
	dc.Fill()
}

// Scale enlarges an image by an integer factor without smoothing.
func Scale(img image.Image, factor int) image.Image {
	if factor <= 1 {
		return img
	}
	b := img.Bounds()
	return imaging.Resize(img, b.Dx()*factor, b.Dy()*factor, imaging.NearestNeighbor)
}

// Save writes img to path; the format follows the extension.
func Save(img image.Image, path string) error {
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	return nil
}

// Encode writes img as PNG.
func Encode(w io.Writer, img image.Image) error {
	if err := imaging.Encode(w, img, imaging.PNG); err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	return nil
}
