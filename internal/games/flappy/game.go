// Package flappy implements a Flappy Bird-style game with bounce pipes.
// The bird falls under gravity and flaps upward; pipes scroll in from the
// right at a speed that grows with every pipe passed. Some pipes carry a
// bounce zone on their lower segment that throws a falling bird back up
// instead of ending the run.
package flappy

import (
	"fmt"
	"time"

	"github.com/vovakirdan/flappy-bounce/internal/assets"
	"github.com/vovakirdan/flappy-bounce/internal/config"
	"github.com/vovakirdan/flappy-bounce/internal/core"
	"github.com/vovakirdan/flappy-bounce/internal/registry"
)

// episode is everything a restart throws away.
type episode struct {
	bird       *Bird
	birdActive bool // bird is advanced and rendered
	pipes      []*Pipe
	explosions []*Explosion
	gen        *Generator

	score   int
	speed   float64
	phase   Phase
	ticks   int
	elapsed float64 // ms of simulated time
}

// Game is the flappy simulation. It is driven by Step and observed through
// its accessors; nothing outside the package mutates it.
type Game struct {
	cfg     config.FlappyConfig
	pending *config.FlappyConfig // applied at the next episode

	birdFrames      BirdFrames
	explosionFrames []*assets.Frame

	seed      int64
	rng       core.Random
	customRNG bool

	debug  bool // survives restarts
	paused bool

	ep     episode
	events []core.Event
}

// Option customizes a new Game.
type Option func(*Game)

// WithSeed seeds the game's random source.
func WithSeed(seed int64) Option {
	return func(g *Game) { g.seed = seed }
}

// WithRandom injects a random source. Reset keeps using it instead of
// reseeding.
func WithRandom(r core.Random) Option {
	return func(g *Game) {
		g.rng = r
		g.customRNG = true
	}
}

// New creates a game and starts its first episode. Missing sprites are
// reported here so the caller can fail at startup.
func New(cfg config.FlappyConfig, provider *assets.Provider, opts ...Option) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("flappy: %w", err)
	}
	birdFrames, err := LoadBirdFrames(provider)
	if err != nil {
		return nil, fmt.Errorf("flappy: %w", err)
	}
	explosion, err := provider.Sheet(assets.Explosion)
	if err != nil {
		return nil, fmt.Errorf("flappy: %w", err)
	}
	if len(explosion) == 0 {
		return nil, fmt.Errorf("flappy: explosion sheet has no frames")
	}

	g := &Game{
		cfg:             cfg,
		birdFrames:      birdFrames,
		explosionFrames: explosion,
		debug:           cfg.Debug.StartEnabled,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = core.NewRandom(g.seed)
	}
	g.newEpisode()
	return g, nil
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "flappy"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Flappy Bounce"
}

// Reset reseeds the random source from cfg.Seed and starts a new episode.
// The debug flag is kept.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.seed = cfg.Seed
	if !g.customRNG {
		g.rng = core.NewRandom(cfg.Seed)
	}
	g.paused = false
	g.newEpisode()
}

// Configure replaces the tuning. It takes effect at the next episode so a
// run in progress is never reshaped mid-flight.
func (g *Game) Configure(cfg config.FlappyConfig) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("flappy: %w", err)
	}
	g.pending = &cfg
	return nil
}

func (g *Game) newEpisode() {
	if g.pending != nil {
		g.cfg = *g.pending
		g.pending = nil
	}
	cfg := g.cfg

	bird := NewBird(cfg.Bird.X, cfg.Bird.StartY, g.birdFrames, cfg.Physics, cfg.Bird)
	gen := NewGenerator(cfg.Pipes, cfg.Spawn, cfg.Screen.Height, g.rng)
	speed := cfg.Pipes.BaseSpeed

	first := gen.Start(speed)
	g.ep = episode{
		bird:       bird,
		birdActive: true,
		gen:        gen,
		speed:      speed,
		phase:      PhasePlaying,
		pipes: []*Pipe{
			NewPipe(cfg.Bird.X+cfg.Pipes.FirstOffset, first, speed, cfg.Pipes.Width, cfg.Screen.Height),
		},
	}
}

// Step advances the simulation by dt of wall-clock time.
func (g *Game) Step(dt time.Duration, in core.InputFrame) core.StepResult {
	g.events = g.events[:0]

	ms := float64(dt) / float64(time.Millisecond)
	if ms < 0 {
		ms = 0
	}
	if limit := g.cfg.Timing.MaxFrameDtMs; limit > 0 && ms > limit {
		ms = limit
	}

	if in.Has(core.ActionToggleDebug) {
		g.debug = !g.debug
	}
	if in.Has(core.ActionPause) && g.ep.phase != PhaseGameOver {
		g.paused = !g.paused
	}
	if g.paused {
		return g.result()
	}

	switch g.ep.phase {
	case PhasePlaying:
		g.ep.ticks++
		g.ep.elapsed += ms
		g.stepPlaying(ms, in)
	case PhaseExploding:
		g.ep.ticks++
		g.ep.elapsed += ms
		g.stepExploding(ms)
	case PhaseGameOver:
		if in.Has(core.ActionRestart) {
			g.newEpisode()
			g.emit(core.Event{Kind: core.EventPhaseChanged, Detail: PhaseGameOver.String() + "->" + PhasePlaying.String()})
		}
	}
	return g.result()
}

func (g *Game) stepPlaying(ms float64, in core.InputFrame) {
	ep := &g.ep

	if in.Has(core.ActionFlap) {
		ep.bird.Flap()
	}
	ep.bird.Advance(ms)

	if ep.gen.Tick(ms) {
		spec := ep.gen.Spawn(ep.speed)
		ep.pipes = append(ep.pipes, NewPipe(float64(g.cfg.Screen.Width), spec, ep.speed, g.cfg.Pipes.Width, g.cfg.Screen.Height))
		detail := fmt.Sprintf("gap=%d top=%d", spec.Gap, spec.TopHeight)
		if spec.BounceZone {
			detail += " bounce"
		}
		g.emit(core.Event{Kind: core.EventSpawned, Detail: detail})
	}

	live := ep.pipes[:0]
	for _, p := range ep.pipes {
		p.Advance(ms)
		if !p.Offscreen() {
			live = append(live, p)
		}
	}
	for i := len(live); i < len(ep.pipes); i++ {
		ep.pipes[i] = nil
	}
	ep.pipes = live

	g.scorePassed()

	if !g.CollisionsDisabled() {
		g.resolveCollisions()
	}
}

// scorePassed awards every pipe whose right edge has just gone behind the
// bird, then bumps the shared speed into every live pipe.
func (g *Game) scorePassed() {
	ep := &g.ep
	for _, p := range ep.pipes {
		if p.Passed || float64(p.Right()) >= ep.bird.X {
			continue
		}
		p.Passed = true
		points := g.cfg.Scoring.PassPoints
		if p.Bounced {
			points = g.cfg.Scoring.BouncePoints
		}
		ep.score += points
		g.emit(core.Event{Kind: core.EventScored, Points: points})

		ep.speed += g.cfg.Pipes.SpeedIncrement
		for _, q := range ep.pipes {
			q.SetSpeed(ep.speed)
		}
	}
}

func (g *Game) stepExploding(ms float64) {
	ep := &g.ep

	live := ep.explosions[:0]
	for _, e := range ep.explosions {
		e.Advance(ms)
		if !e.Done() {
			live = append(live, e)
		}
	}
	ep.explosions = live

	if len(ep.explosions) > 0 {
		return
	}
	ep.bird.Freeze()
	ep.birdActive = true
	g.setPhase(PhaseGameOver)
}

func (g *Game) setPhase(p Phase) {
	if g.ep.phase == p {
		return
	}
	g.emit(core.Event{Kind: core.EventPhaseChanged, Detail: g.ep.phase.String() + "->" + p.String()})
	g.ep.phase = p
}

func (g *Game) emit(e core.Event) {
	g.events = append(g.events, e)
}

func (g *Game) result() core.StepResult {
	var events []core.Event
	if len(g.events) > 0 {
		events = append(events, g.events...)
	}
	return core.StepResult{State: g.State(), Events: events}
}

// State returns the summary reported to the platform.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.ep.score,
		Phase:    g.ep.phase.String(),
		GameOver: g.ep.phase == PhaseGameOver,
		Paused:   g.paused,
		Debug:    g.debug,
	}
}

// CollisionsDisabled reports whether the collision step is skipped.
func (g *Game) CollisionsDisabled() bool {
	return g.debug && g.cfg.Debug.DisableCollisions
}

// Bird returns the bird. It is valid in every phase.
func (g *Game) Bird() *Bird { return g.ep.bird }

// BirdVisible reports whether the bird is in the rendered set.
func (g *Game) BirdVisible() bool { return g.ep.birdActive }

// Pipes returns the live pipes, oldest first.
func (g *Game) Pipes() []*Pipe { return g.ep.pipes }

// Explosions returns the running explosions.
func (g *Game) Explosions() []*Explosion { return g.ep.explosions }

// Generator returns the episode's pipe generator.
func (g *Game) Generator() *Generator { return g.ep.gen }

// Phase returns the current phase.
func (g *Game) Phase() Phase { return g.ep.phase }

// Score returns the episode score.
func (g *Game) Score() int { return g.ep.score }

// Speed returns the current pipe speed in px/s.
func (g *Game) Speed() float64 { return g.ep.speed }

// Debug reports whether debug mode is on.
func (g *Game) Debug() bool { return g.debug }

// Paused reports whether the game is paused.
func (g *Game) Paused() bool { return g.paused }

// Config returns the tuning of the current episode.
func (g *Game) Config() config.FlappyConfig { return g.cfg }

// Seed returns the seed of the random source.
func (g *Game) Seed() int64 { return g.seed }

// Ticks returns the number of simulated ticks in this episode.
func (g *Game) Ticks() int { return g.ep.ticks }

// Elapsed returns the simulated time of this episode.
func (g *Game) Elapsed() time.Duration {
	return time.Duration(g.ep.elapsed * float64(time.Millisecond))
}

func init() {
	registry.Register("flappy", "Flappy Bounce", func(env registry.Env) (registry.Game, error) {
		return New(env.Config, env.Assets, WithSeed(env.Seed))
	})
}
