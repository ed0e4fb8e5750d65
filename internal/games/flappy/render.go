package flappy

import (
	"fmt"
	"math"

	"github.com/vovakirdan/flappy-bounce/internal/assets"
	"github.com/vovakirdan/flappy-bounce/internal/core"
)

// Visual characters for rendering
const (
	PipeChar      = '█'
	PipeCapTop    = '▄'
	PipeCapBottom = '▀'
	GroundChar    = '═'
	DebugChar     = '·'
)

// viewport maps logical pixels onto terminal cells. Cells are roughly
// twice as tall as they are wide, so a row covers twice the pixels of a
// column.
type viewport struct {
	ox, oy     int     // top-left cell of the playfield
	cols, rows int     // playfield size in cells
	sx, sy     float64 // pixels per column and per row
}

func newViewport(screenW, screenH, worldW, worldH int) viewport {
	availRows := screenH - 1 // ground line
	if availRows < 1 || screenW < 1 {
		return viewport{cols: 0, rows: 0, sx: 1, sy: 1}
	}

	sy := float64(worldH) / float64(availRows)
	sx := sy / 2
	cols := int(math.Ceil(float64(worldW) / sx))
	rows := availRows
	if cols > screenW {
		sx = float64(worldW) / float64(screenW)
		sy = sx * 2
		cols = screenW
		rows = int(math.Ceil(float64(worldH) / sy))
	}

	return viewport{
		ox:   (screenW - cols) / 2,
		oy:   (availRows - rows) / 2,
		cols: cols,
		rows: rows,
		sx:   sx,
		sy:   sy,
	}
}

func (v viewport) col(x float64) int { return v.ox + int(math.Floor(x/v.sx)) }
func (v viewport) row(y float64) int { return v.oy + int(math.Floor(y/v.sy)) }

func (v viewport) set(dst *core.Screen, c, r int, ch rune, color core.Color) {
	if c < v.ox || c >= v.ox+v.cols || r < v.oy || r >= v.oy+v.rows {
		return
	}
	dst.SetColored(c, r, ch, color)
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	v := newViewport(dst.Width(), dst.Height(), g.cfg.Screen.Width, g.cfg.Screen.Height)

	// Draw ground
	dst.DrawHLine(v.ox, v.oy+v.rows, v.cols, GroundChar, core.ColorGray)

	// Draw pipes
	for _, p := range g.ep.pipes {
		g.drawPipe(dst, v, p)
	}

	if g.ep.birdActive {
		drawImage(dst, v, g.ep.bird.Image(), g.ep.bird.X, g.ep.bird.Y)
		if g.debug {
			drawCircle(dst, v, g.ep.bird.X, g.ep.bird.Y, g.ep.bird.Radius())
		}
	}
	for _, e := range g.ep.explosions {
		drawImage(dst, v, e.Image(), e.X, e.Y)
	}

	g.drawHUD(dst)

	if g.paused {
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
	if g.ep.phase == PhaseGameOver {
		drawCenteredMessage(dst, "Game Over!", fmt.Sprintf("Score: %d  |  Press R to restart", g.ep.score))
	}
}

// drawPipe renders both segments of a pipe, clipped to the playfield.
func (g *Game) drawPipe(dst *core.Screen, v viewport, p *Pipe) {
	c0 := v.col(float64(p.TopRect.X))
	c1 := v.col(float64(p.TopRect.Right()))
	if c1 <= c0 {
		c1 = c0 + 1
	}

	topEnd := v.row(float64(p.TopHeight))
	bottomStart := v.row(float64(p.BottomY))
	bottomEnd := v.oy + v.rows

	capColor := core.ColorBrightGreen
	if p.BounceZone {
		capColor = core.ColorYellow
	}

	for c := c0; c < c1; c++ {
		for r := v.oy; r < topEnd; r++ {
			v.set(dst, c, r, PipeChar, core.ColorGreen)
		}
		if topEnd > v.oy {
			v.set(dst, c, topEnd-1, PipeCapTop, core.ColorBrightGreen)
		}
		for r := bottomStart; r < bottomEnd; r++ {
			v.set(dst, c, r, PipeChar, core.ColorGreen)
		}
		v.set(dst, c, bottomStart, PipeCapBottom, capColor)
	}

	// Bounce pipes carry a stripe below the cap.
	if p.BounceZone && g.cfg.Pipes.StripeHeight > 0 {
		stripeEnd := v.row(float64(p.BottomY + g.cfg.Pipes.StripeHeight))
		for c := c0; c < c1; c++ {
			for r := bottomStart + 1; r <= stripeEnd && r < bottomEnd; r++ {
				v.set(dst, c, r, PipeChar, core.ColorYellow)
			}
		}
	}
}

// drawImage draws a frame's glyph art centered on (x, y).
// Spaces are transparent.
func drawImage(dst *core.Screen, v viewport, f *assets.Frame, x, y float64) {
	if f == nil {
		return
	}
	cx, cy := v.col(x), v.row(y)
	left := cx - f.Cols()/2
	top := cy - f.Rows()/2
	for dy, line := range f.Art {
		dx := 0
		for _, ch := range line {
			if ch != ' ' {
				v.set(dst, left+dx, top+dy, ch, f.Color)
			}
			dx++
		}
	}
}

// drawCircle outlines the collision circle on empty cells.
func drawCircle(dst *core.Screen, v viewport, x, y, radius float64) {
	const steps = 32
	for i := 0; i < steps; i++ {
		a := 2 * math.Pi * float64(i) / steps
		c := v.col(x + radius*math.Cos(a))
		r := v.row(y + radius*math.Sin(a))
		if dst.Get(c, r) == ' ' {
			v.set(dst, c, r, DebugChar, core.ColorCyan)
		}
	}
}

func (g *Game) drawHUD(dst *core.Screen) {
	dst.DrawText(1, 0, "Press SPACE to flap, Q to quit")

	scoreText := fmt.Sprintf(" Score: %d ", g.ep.score)
	dst.DrawTextColored(dst.Width()-len(scoreText)-1, 0, scoreText, core.ColorWhite)

	if g.debug {
		info := fmt.Sprintf(" DEBUG speed=%.0f pipes=%d", g.ep.speed, len(g.ep.pipes))
		if g.CollisionsDisabled() {
			info += " collisions=off"
		}
		dst.DrawTextColored(1, 1, info, core.ColorCyan)
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len([]rune(title)), len([]rune(subtitle))) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	box := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorWhite)

	dst.DrawTextColored(boxX+(boxW-len([]rune(title)))/2, boxY+1, title, core.ColorBrightYellow)
	dst.DrawText(boxX+(boxW-len([]rune(subtitle)))/2, boxY+3, subtitle)
}
