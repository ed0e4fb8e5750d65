package replay

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/flappy-bounce/internal/assets"
	"github.com/vovakirdan/flappy-bounce/internal/config"
	"github.com/vovakirdan/flappy-bounce/internal/core"
	"github.com/vovakirdan/flappy-bounce/internal/games/flappy"
	"github.com/vovakirdan/flappy-bounce/internal/storage"
)

// playEpisode drives a game with the autopilot until game over or maxTicks,
// recording every step.
func playEpisode(t *testing.T, g *flappy.Game, maxTicks int) Trace {
	t.Helper()
	rec, err := NewRecorder(g)
	if err != nil {
		t.Fatalf("NewRecorder() failed: %v", err)
	}
	pilot := flappy.Autopilot{}
	for i := 0; i < maxTicks && g.Phase() != flappy.PhaseGameOver; i++ {
		dt := time.Duration(15000+(i*137)%3000) * time.Microsecond
		in := pilot.Decide(g)
		if i == 40 {
			in.Set(core.ActionToggleDebug)
		}
		g.Step(dt, in)
		rec.Record(dt, in)
	}
	return rec.Finish(g.Score())
}

func newGame(t *testing.T, seed int64) (*flappy.Game, *assets.Provider) {
	t.Helper()
	p, err := assets.LoadDefault()
	if err != nil {
		t.Fatal(err)
	}
	g, err := flappy.New(config.DefaultFlappyConfig(), p, flappy.WithSeed(seed))
	if err != nil {
		t.Fatal(err)
	}
	return g, p
}

func TestRunReproducesEpisode(t *testing.T) {
	g, p := newGame(t, 2024)
	trace := playEpisode(t, g, 4000)

	if len(trace.Ticks) == 0 {
		t.Fatal("nothing recorded")
	}
	if trace.Seed != 2024 || trace.GameID != "flappy" {
		t.Errorf("trace header = %q/%d", trace.GameID, trace.Seed)
	}

	out, err := Run(trace, p)
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if out.Score != g.Score() {
		t.Errorf("score = %d, expected %d", out.Score, g.Score())
	}
	if out.Phase != g.Phase() {
		t.Errorf("phase = %v, expected %v", out.Phase, g.Phase())
	}
	if out.Ticks != g.Ticks() {
		t.Errorf("ticks = %d, expected %d", out.Ticks, g.Ticks())
	}
	if out.BirdY != g.Bird().Y {
		t.Errorf("bird y = %v, expected %v", out.BirdY, g.Bird().Y)
	}
}

func TestRunAfterReset(t *testing.T) {
	g, p := newGame(t, 1)
	playEpisode(t, g, 500)

	// A recorder started after Reset captures the new seed and the
	// debug flag carried over from the previous episode.
	rc := core.DefaultConfig()
	rc.Seed = 99
	g.Reset(rc)
	trace := playEpisode(t, g, 1500)
	if trace.Seed != 99 {
		t.Fatalf("seed = %d, expected 99", trace.Seed)
	}
	if !trace.Debug {
		t.Error("debug toggled in the first episode should be recorded as on")
	}

	out, err := Run(trace, p)
	if err != nil {
		t.Fatal(err)
	}
	if out.Score != g.Score() || out.BirdY != g.Bird().Y {
		t.Errorf("outcome %+v does not match game (score %d, y %v)", out, g.Score(), g.Bird().Y)
	}
}

func TestStorageRoundTrip(t *testing.T) {
	g, p := newGame(t, 7)
	trace := playEpisode(t, g, 2000)

	store, err := storage.Open(filepath.Join(t.TempDir(), "replays.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	id, err := store.SaveReplay(trace.Record())
	if err != nil {
		t.Fatalf("SaveReplay() failed: %v", err)
	}
	stored, err := store.Replay(id)
	if err != nil {
		t.Fatalf("Replay() failed: %v", err)
	}

	out, err := Run(FromRecord(stored), p)
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if out.Score != trace.Score {
		t.Errorf("stored replay score = %d, expected %d", out.Score, trace.Score)
	}
}

func TestRunRejectsBadTrace(t *testing.T) {
	p, err := assets.LoadDefault()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Run(Trace{GameID: "dino"}, p); err == nil {
		t.Error("expected error for unknown game")
	}
	if _, err := Run(Trace{GameID: "flappy", Config: []byte("screen: [")}, p); err == nil {
		t.Error("expected error for bad config")
	}
}
