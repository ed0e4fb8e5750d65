// Package replay records the inputs and frame timings of an episode and
// simulates them again headless. A seed, the effective configuration and
// the per-tick (dt, actions) pairs fully determine an episode.
package replay

import (
	"fmt"
	"time"

	"github.com/vovakirdan/flappy-bounce/internal/assets"
	"github.com/vovakirdan/flappy-bounce/internal/config"
	"github.com/vovakirdan/flappy-bounce/internal/core"
	"github.com/vovakirdan/flappy-bounce/internal/games/flappy"
	"github.com/vovakirdan/flappy-bounce/internal/storage"
)

// Recordable is the part of a game a recorder needs at episode start.
type Recordable interface {
	ID() string
	Seed() int64
	Debug() bool
	Config() config.FlappyConfig
}

// Trace is one recorded episode.
type Trace struct {
	GameID string
	Seed   int64
	Debug  bool
	Config []byte // YAML
	Ticks  []storage.ReplayTick
	Score  int // score when recording stopped
}

// Recorder collects ticks for one episode.
type Recorder struct {
	trace Trace
}

// NewRecorder starts recording a game that has just begun an episode.
func NewRecorder(g Recordable) (*Recorder, error) {
	data, err := config.Marshal(g.Config())
	if err != nil {
		return nil, fmt.Errorf("replay: %w", err)
	}
	return &Recorder{trace: Trace{
		GameID: g.ID(),
		Seed:   g.Seed(),
		Debug:  g.Debug(),
		Config: data,
	}}, nil
}

// Record appends one step.
func (r *Recorder) Record(dt time.Duration, in core.InputFrame) {
	r.trace.Ticks = append(r.trace.Ticks, storage.ReplayTick{
		DtMicros: dt.Microseconds(),
		Actions:  in.Mask(),
	})
}

// Len returns the number of recorded ticks.
func (r *Recorder) Len() int { return len(r.trace.Ticks) }

// Finish stamps the final score and returns the trace.
func (r *Recorder) Finish(score int) Trace {
	t := r.trace
	t.Score = score
	return t
}

// Record converts a trace for storage.
func (t Trace) Record() storage.Replay {
	return storage.Replay{
		GameID:     t.GameID,
		Seed:       t.Seed,
		Score:      t.Score,
		Debug:      t.Debug,
		ConfigYAML: string(t.Config),
		Ticks:      t.Ticks,
	}
}

// FromRecord converts a stored replay back into a trace.
func FromRecord(r *storage.Replay) Trace {
	return Trace{
		GameID: r.GameID,
		Seed:   r.Seed,
		Debug:  r.Debug,
		Config: []byte(r.ConfigYAML),
		Ticks:  r.Ticks,
		Score:  r.Score,
	}
}

// Outcome is the end state of a simulated trace.
type Outcome struct {
	Score   int
	Phase   flappy.Phase
	Ticks   int
	BirdY   float64
	Elapsed time.Duration
}

// Run simulates a trace from scratch.
func Run(t Trace, provider *assets.Provider) (Outcome, error) {
	if t.GameID != "" && t.GameID != "flappy" {
		return Outcome{}, fmt.Errorf("replay: unsupported game %q", t.GameID)
	}
	cfg, err := config.Parse(t.Config)
	if err != nil {
		return Outcome{}, fmt.Errorf("replay: %w", err)
	}
	cfg.Debug.StartEnabled = t.Debug

	g, err := flappy.New(cfg, provider, flappy.WithSeed(t.Seed))
	if err != nil {
		return Outcome{}, fmt.Errorf("replay: %w", err)
	}

	for _, tick := range t.Ticks {
		g.Step(time.Duration(tick.DtMicros)*time.Microsecond, core.InputFromMask(tick.Actions))
	}

	return Outcome{
		Score:   g.Score(),
		Phase:   g.Phase(),
		Ticks:   g.Ticks(),
		BirdY:   g.Bird().Y,
		Elapsed: g.Elapsed(),
	}, nil
}
