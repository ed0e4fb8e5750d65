// Package assets provides the sprite frames used by the game and its
// renderers. Frames are decoded once from a YAML definition, cached by
// logical name and treated as immutable afterwards.
package assets

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/flappy-bounce/internal/core"
)

// Logical asset names used by the game.
const (
	WingsLevel = "wings_level"
	WingsDown  = "wings_down"
	WingsUp    = "wings_up"
	BirdBurnt  = "bird_burnt"
	Explosion  = "explosion"
)

//go:embed sprites.yaml
var defaultSpritesYAML []byte

// ErrAssetUnavailable is returned when a requested asset is not defined.
var ErrAssetUnavailable = errors.New("asset unavailable")

// Frame is one immutable image: its size in logical pixels and its glyph
// form for the terminal.
type Frame struct {
	Name   string
	Width  int
	Height int
	Art    []string
	Color  core.Color
}

// Cols returns the glyph width of the frame in terminal cells.
func (f *Frame) Cols() int {
	cols := 0
	for _, row := range f.Art {
		if n := len([]rune(row)); n > cols {
			cols = n
		}
	}
	return cols
}

// Rows returns the glyph height of the frame in terminal cells.
func (f *Frame) Rows() int {
	return len(f.Art)
}

// spriteDef is a single frame in the YAML file.
type spriteDef struct {
	Width  int      `yaml:"width"`
	Height int      `yaml:"height"`
	Color  string   `yaml:"color"`
	Art    []string `yaml:"art"`
}

// sheetDef is a grid of equally sized frames drawn side by side.
type sheetDef struct {
	FrameWidth  int      `yaml:"frame_width"`
	FrameHeight int      `yaml:"frame_height"`
	Cols        int      `yaml:"cols"`
	Rows        int      `yaml:"rows"`
	CellCols    int      `yaml:"cell_cols"`
	CellRows    int      `yaml:"cell_rows"`
	Color       string   `yaml:"color"`
	Art         []string `yaml:"art"`
}

type spriteFile struct {
	Sprites map[string]spriteDef `yaml:"sprites"`
	Sheets  map[string]sheetDef  `yaml:"sheets"`
}

// Provider hands out frames by name. It is built once by the composition
// root and passed to whatever needs images.
type Provider struct {
	defs   spriteFile
	frames map[string]*Frame
	sheets map[string][]*Frame
}

// Load parses a sprite definition file.
func Load(data []byte) (*Provider, error) {
	var defs spriteFile
	if err := yaml.Unmarshal(data, &defs); err != nil {
		return nil, fmt.Errorf("assets: cannot parse sprites: %w", err)
	}
	return &Provider{
		defs:   defs,
		frames: make(map[string]*Frame),
		sheets: make(map[string][]*Frame),
	}, nil
}

// LoadDefault returns a provider over the embedded sprite set.
func LoadDefault() (*Provider, error) {
	return Load(defaultSpritesYAML)
}

// LoadFile returns a provider over a sprite file on disk, or the embedded
// set when path is empty.
func LoadFile(path string) (*Provider, error) {
	if path == "" {
		return LoadDefault()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("assets: cannot read %s: %w", path, err)
	}
	return Load(data)
}

// Frame returns the named single frame.
func (p *Provider) Frame(name string) (*Frame, error) {
	if f, ok := p.frames[name]; ok {
		return f, nil
	}
	def, ok := p.defs.Sprites[name]
	if !ok {
		return nil, fmt.Errorf("assets: %w: %q", ErrAssetUnavailable, name)
	}
	if def.Width <= 0 || def.Height <= 0 {
		return nil, fmt.Errorf("assets: sprite %q has no size", name)
	}
	f := &Frame{
		Name:   name,
		Width:  def.Width,
		Height: def.Height,
		Art:    def.Art,
		Color:  core.ParseColor(def.Color),
	}
	p.frames[name] = f
	return f, nil
}

// Sheet returns the frames of the named sheet in row-major order.
// The slice is shared between callers and must not be modified.
func (p *Provider) Sheet(name string) ([]*Frame, error) {
	if frames, ok := p.sheets[name]; ok {
		return frames, nil
	}
	def, ok := p.defs.Sheets[name]
	if !ok {
		return nil, fmt.Errorf("assets: %w: %q", ErrAssetUnavailable, name)
	}
	frames, err := slice(name, def)
	if err != nil {
		return nil, err
	}
	p.sheets[name] = frames
	return frames, nil
}

// Require checks that every named sprite or sheet exists, so a missing
// asset fails at startup instead of mid-game.
func (p *Provider) Require(names ...string) error {
	for _, name := range names {
		if _, ok := p.defs.Sheets[name]; ok {
			if _, err := p.Sheet(name); err != nil {
				return err
			}
			continue
		}
		if _, err := p.Frame(name); err != nil {
			return err
		}
	}
	return nil
}

// slice cuts a sheet's art into Cols×Rows frames.
func slice(name string, def sheetDef) ([]*Frame, error) {
	if def.Cols <= 0 || def.Rows <= 0 || def.CellCols <= 0 || def.CellRows <= 0 {
		return nil, fmt.Errorf("assets: sheet %q has an empty grid", name)
	}
	if len(def.Art) < def.Rows*def.CellRows {
		return nil, fmt.Errorf("assets: sheet %q needs %d art rows, has %d", name, def.Rows*def.CellRows, len(def.Art))
	}

	lines := make([][]rune, len(def.Art))
	for i, l := range def.Art {
		lines[i] = []rune(l)
	}

	color := core.ParseColor(def.Color)
	frames := make([]*Frame, 0, def.Cols*def.Rows)
	for r := 0; r < def.Rows; r++ {
		for c := 0; c < def.Cols; c++ {
			art := make([]string, def.CellRows)
			for y := 0; y < def.CellRows; y++ {
				line := lines[r*def.CellRows+y]
				start := c * def.CellCols
				cell := make([]rune, def.CellCols)
				for x := range cell {
					cell[x] = ' '
					if start+x < len(line) {
						cell[x] = line[start+x]
					}
				}
				art[y] = string(cell)
			}
			frames = append(frames, &Frame{
				Name:   fmt.Sprintf("%s_%d", name, len(frames)),
				Width:  def.FrameWidth,
				Height: def.FrameHeight,
				Art:    art,
				Color:  color,
			})
		}
	}
	return frames, nil
}
