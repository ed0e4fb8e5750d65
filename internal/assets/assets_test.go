package assets

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/flappy-bounce/internal/core"
)

func TestDefaultSpritesComplete(t *testing.T) {
	p, err := LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault() failed: %v", err)
	}
	if err := p.Require(WingsLevel, WingsDown, WingsUp, BirdBurnt, Explosion); err != nil {
		t.Fatalf("default sprite set incomplete: %v", err)
	}
}

func TestFrameCached(t *testing.T) {
	p, err := LoadDefault()
	if err != nil {
		t.Fatal(err)
	}
	a, err := p.Frame(WingsLevel)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := p.Frame(WingsLevel)
	if a != b {
		t.Error("Frame should return the cached instance")
	}
	if a.Width <= 0 || a.Height <= 0 {
		t.Errorf("wings_level has no size: %+v", a)
	}
	if a.Color != core.ColorBrightYellow {
		t.Errorf("wings_level color = %v, expected bright yellow", a.Color)
	}
}

func TestMissingAsset(t *testing.T) {
	p, err := LoadDefault()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := p.Frame("unicorn"); !errors.Is(err, ErrAssetUnavailable) {
		t.Errorf("Frame(unicorn) error = %v, expected ErrAssetUnavailable", err)
	}
	if _, err := p.Sheet("unicorn"); !errors.Is(err, ErrAssetUnavailable) {
		t.Errorf("Sheet(unicorn) error = %v, expected ErrAssetUnavailable", err)
	}
	if err := p.Require(WingsLevel, "unicorn"); !errors.Is(err, ErrAssetUnavailable) {
		t.Errorf("Require error = %v, expected ErrAssetUnavailable", err)
	}
}

func TestSheetSlicing(t *testing.T) {
	data := []byte(`
sheets:
  boom:
    frame_width: 10
    frame_height: 20
    cols: 3
    rows: 2
    cell_cols: 2
    cell_rows: 1
    art:
      - 'aabbcc'
      - 'ddeef'
`)
	p, err := Load(data)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	frames, err := p.Sheet("boom")
	if err != nil {
		t.Fatalf("Sheet() failed: %v", err)
	}

	want := []string{"aa", "bb", "cc", "dd", "ee", "f "}
	if len(frames) != len(want) {
		t.Fatalf("got %d frames, expected %d", len(frames), len(want))
	}
	for i, w := range want {
		if frames[i].Art[0] != w {
			t.Errorf("frame %d = %q, expected %q", i, frames[i].Art[0], w)
		}
		if frames[i].Width != 10 || frames[i].Height != 20 {
			t.Errorf("frame %d size = %dx%d", i, frames[i].Width, frames[i].Height)
		}
	}

	again, _ := p.Sheet("boom")
	if &again[0] != &frames[0] {
		t.Error("Sheet should return the shared cached slice")
	}
}

func TestSheetTooShort(t *testing.T) {
	data := []byte(`
sheets:
  boom:
    cols: 1
    rows: 2
    cell_cols: 1
    cell_rows: 2
    art: ['a']
`)
	p, err := Load(data)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := p.Sheet("boom"); err == nil {
		t.Error("expected error for sheet with missing art rows")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sprites.yaml")
	data := []byte("sprites:\n  dot:\n    width: 2\n    height: 2\n    art: ['.']\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}
	p, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() failed: %v", err)
	}
	f, err := p.Frame("dot")
	if err != nil {
		t.Fatal(err)
	}
	if f.Cols() != 1 || f.Rows() != 1 {
		t.Errorf("dot glyph size = %dx%d", f.Cols(), f.Rows())
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing sprite file")
	}
}
