package flappy

import (
	"testing"
	"time"

	"github.com/vovakirdan/flappy-bounce/internal/assets"
	"github.com/vovakirdan/flappy-bounce/internal/config"
	"github.com/vovakirdan/flappy-bounce/internal/core"
)

func newTestGame(t *testing.T, opts ...Option) *Game {
	t.Helper()
	return newTestGameWith(t, config.DefaultFlappyConfig(), opts...)
}

func newTestGameWith(t *testing.T, cfg config.FlappyConfig, opts ...Option) *Game {
	t.Helper()
	p, err := assets.LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault() failed: %v", err)
	}
	g, err := New(cfg, p, opts...)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return g
}

func none() core.InputFrame { return core.NewInputFrame() }

func hasEvent(events []core.Event, kind core.EventKind) bool {
	for _, e := range events {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

// Scenario A: a resting bird flaps.
func TestFlapFromRest(t *testing.T) {
	g := newTestGame(t, WithSeed(1))
	b := g.Bird()
	b.Y = 300
	b.Velocity = 0

	g.Step(0, core.InputOf(core.ActionFlap))

	if b.Velocity != -105.0 {
		t.Errorf("velocity after flap = %v, expected -105", b.Velocity)
	}
	if !b.Animating() {
		t.Error("bird should be flapping after a flap")
	}
	if b.AnimIndex() != 0 {
		t.Errorf("animation index = %d, expected 0", b.AnimIndex())
	}
	if g.Phase() != PhasePlaying {
		t.Errorf("phase = %v, expected playing", g.Phase())
	}
}

// Scenario B: the bird sinks into the ground.
func TestGroundIsFatal(t *testing.T) {
	g := newTestGame(t, WithSeed(1))
	g.ep.pipes = nil
	b := g.Bird()
	b.Y = float64(g.Config().Screen.Height) - b.HalfHeight() + 1

	res := g.Step(0, none())

	if g.Phase() != PhaseExploding {
		t.Fatalf("phase = %v, expected exploding", g.Phase())
	}
	if !hasEvent(res.Events, core.EventCrashed) || !hasEvent(res.Events, core.EventPhaseChanged) {
		t.Errorf("expected crash and phase events, got %+v", res.Events)
	}
	if g.BirdVisible() {
		t.Error("bird should leave the rendered set while exploding")
	}
	if len(g.Explosions()) != 1 {
		t.Errorf("explosions = %d, expected 1", len(g.Explosions()))
	}
	if e := g.Explosions()[0]; e.X != b.X || e.Y != b.Y {
		t.Errorf("explosion at (%v,%v), expected bird position (%v,%v)", e.X, e.Y, b.X, b.Y)
	}
}

// bottomPipe returns a pipe whose bottom segment starts at y=400 and spans
// the bird's column.
func bottomPipe(g *Game, bounce bool) *Pipe {
	cfg := g.Config()
	spec := PipeSpec{Gap: 150, TopHeight: 250, BounceZone: bounce}
	return NewPipe(cfg.Bird.X-20, spec, g.Speed(), cfg.Pipes.Width, cfg.Screen.Height)
}

// Scenario C and its fatal counterparts.
func TestBottomPipeContact(t *testing.T) {
	tests := []struct {
		name      string
		bounce    bool
		y         float64
		velocity  float64
		wantPhase Phase
	}{
		{"descending onto bounce zone", true, 385, 50, PhasePlaying},
		{"descending onto plain pipe", false, 385, 50, PhaseExploding},
		{"rising into bounce zone", true, 385, -50, PhaseExploding},
		{"center inside bounce pipe", true, 420, 50, PhaseExploding},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGame(t, WithSeed(1))
			p := bottomPipe(g, tt.bounce)
			g.ep.pipes = []*Pipe{p}
			b := g.Bird()
			b.Y = tt.y
			b.Velocity = tt.velocity

			res := g.Step(0, none())

			if g.Phase() != tt.wantPhase {
				t.Fatalf("phase = %v, expected %v", g.Phase(), tt.wantPhase)
			}
			if tt.wantPhase != PhasePlaying {
				return
			}
			restitution := g.Config().Physics.Restitution
			if b.Velocity != -tt.velocity*restitution {
				t.Errorf("velocity = %v, expected %v", b.Velocity, -tt.velocity*restitution)
			}
			if want := float64(p.BottomRect.Y) - b.Radius(); b.Y != want {
				t.Errorf("bird y = %v, expected %v", b.Y, want)
			}
			if !p.Bounced {
				t.Error("pipe should be marked bounced")
			}
			if !hasEvent(res.Events, core.EventBounced) {
				t.Error("expected bounce event")
			}
		})
	}
}

// Scenario D: passing a pipe scores and speeds everything up.
func TestScoringAndSpeedPropagation(t *testing.T) {
	tests := []struct {
		name    string
		bounced bool
		points  int
	}{
		{"plain pass", false, 10},
		{"pass after bounce", true, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGame(t, WithSeed(1))
			cfg := g.Config()
			spec := PipeSpec{Gap: 150, TopHeight: 225}

			// Right edge at bird.X-1: passed but clear of the bird's circle
			// vertically.
			passed := NewPipe(cfg.Bird.X-1-float64(cfg.Pipes.Width), spec, g.Speed(), cfg.Pipes.Width, cfg.Screen.Height)
			passed.Bounced = tt.bounced
			ahead := NewPipe(350, spec, g.Speed(), cfg.Pipes.Width, cfg.Screen.Height)
			g.ep.pipes = []*Pipe{passed, ahead}
			g.Bird().Y = 300

			before := g.Speed()
			res := g.Step(0, none())

			if g.Score() != tt.points {
				t.Errorf("score = %d, expected %d", g.Score(), tt.points)
			}
			if !passed.Passed {
				t.Error("pipe should be marked passed")
			}
			want := before + cfg.Pipes.SpeedIncrement
			if g.Speed() != want {
				t.Errorf("speed = %v, expected %v", g.Speed(), want)
			}
			for i, p := range g.Pipes() {
				if p.Speed != want {
					t.Errorf("pipe %d speed = %v, expected %v", i, p.Speed, want)
				}
			}
			if len(res.Events) == 0 || res.Events[0].Points != tt.points {
				t.Errorf("expected scored event with %d points, got %+v", tt.points, res.Events)
			}

			// Scored once only.
			g.Step(0, none())
			if g.Score() != tt.points {
				t.Errorf("score after second step = %d, expected %d", g.Score(), tt.points)
			}
		})
	}
}

// Scenario E: the explosion's last frame ends the run in the same tick.
func TestExplosionEndsInGameOver(t *testing.T) {
	g := newTestGame(t, WithSeed(1))
	b := g.Bird()
	b.Y = float64(g.Config().Screen.Height)
	g.Step(0, none())
	if g.Phase() != PhaseExploding {
		t.Fatalf("phase = %v, expected exploding", g.Phase())
	}

	pipeX := g.Pipes()[0].X()
	frameDur := time.Duration(g.Config().Explosion.FrameDurationMs) * time.Millisecond
	frames := len(g.explosionFrames)

	for i := 0; i < frames-1; i++ {
		g.Step(frameDur, core.InputOf(core.ActionFlap))
		if g.Phase() != PhaseExploding {
			t.Fatalf("phase after frame %d = %v, expected exploding", i, g.Phase())
		}
		if b.Frozen() {
			t.Fatal("bird frozen before the explosion finished")
		}
	}

	res := g.Step(frameDur, none())
	if g.Phase() != PhaseGameOver {
		t.Fatalf("phase = %v, expected game over", g.Phase())
	}
	if !res.State.GameOver {
		t.Error("state should report game over")
	}
	if !b.Frozen() {
		t.Error("bird should be frozen")
	}
	if b.Image() != g.birdFrames.Burnt || b.Image().Name != assets.BirdBurnt {
		t.Errorf("bird image = %q, expected burnt sprite", b.Image().Name)
	}
	if !g.BirdVisible() {
		t.Error("bird should be back in the rendered set")
	}
	if len(g.Explosions()) != 0 {
		t.Errorf("explosions = %d, expected none", len(g.Explosions()))
	}
	if g.Pipes()[0].X() != pipeX {
		t.Error("pipes must not move while exploding")
	}

	y := b.Y
	g.Step(frameDur, core.InputOf(core.ActionFlap))
	if b.Y != y {
		t.Error("frozen bird moved")
	}
}

func TestRestartOnlyInGameOver(t *testing.T) {
	g := newTestGame(t, WithSeed(3))
	g.ep.score = 50
	g.ep.speed = 150

	g.Step(10*time.Millisecond, core.InputOf(core.ActionRestart))
	if g.Score() != 50 {
		t.Fatal("restart must be ignored while playing")
	}

	g.ep.phase = PhaseGameOver
	res := g.Step(10*time.Millisecond, core.InputOf(core.ActionRestart))

	if g.Phase() != PhasePlaying {
		t.Errorf("phase = %v, expected playing", g.Phase())
	}
	if g.Score() != 0 {
		t.Errorf("score = %d, expected 0", g.Score())
	}
	if g.Speed() != g.Config().Pipes.BaseSpeed {
		t.Errorf("speed = %v, expected base %v", g.Speed(), g.Config().Pipes.BaseSpeed)
	}
	if len(g.Pipes()) != 1 || len(g.Explosions()) != 0 {
		t.Errorf("expected one fresh pipe and no explosions, got %d/%d", len(g.Pipes()), len(g.Explosions()))
	}
	want := g.Config().Bird.X + g.Config().Pipes.FirstOffset
	if g.Pipes()[0].X() != want {
		t.Errorf("first pipe x = %v, expected %v", g.Pipes()[0].X(), want)
	}
	if b := g.Bird(); b.Frozen() || b.Y != g.Config().Bird.StartY {
		t.Error("restart should create a fresh bird")
	}
	if !hasEvent(res.Events, core.EventPhaseChanged) {
		t.Error("expected phase change event on restart")
	}
}

func TestDebugDisablesCollisionsAndPersists(t *testing.T) {
	g := newTestGame(t, WithSeed(5))
	g.Step(0, core.InputOf(core.ActionToggleDebug))
	if !g.Debug() || !g.CollisionsDisabled() {
		t.Fatal("toggle should enable debug and disable collisions")
	}

	b := g.Bird()
	b.Y = float64(g.Config().Screen.Height) + 50
	g.Step(16*time.Millisecond, none())
	if g.Phase() != PhasePlaying {
		t.Fatalf("phase = %v, collisions should be skipped", g.Phase())
	}

	g.ep.phase = PhaseGameOver
	g.Step(0, core.InputOf(core.ActionRestart))
	if !g.Debug() {
		t.Error("debug flag must survive restart")
	}

	g.Step(0, core.InputOf(core.ActionToggleDebug))
	if g.Debug() || g.CollisionsDisabled() {
		t.Error("second toggle should turn debug off")
	}
}

func TestDebugWithCollisionsEnabled(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	cfg.Debug.StartEnabled = true
	cfg.Debug.DisableCollisions = false
	g := newTestGameWith(t, cfg, WithSeed(5))

	if !g.Debug() || g.CollisionsDisabled() {
		t.Fatal("debug should be on with collisions still active")
	}
	g.Bird().Y = float64(cfg.Screen.Height)
	g.Step(0, none())
	if g.Phase() != PhaseExploding {
		t.Errorf("phase = %v, expected exploding", g.Phase())
	}
}

func TestPauseFreezesSimulation(t *testing.T) {
	g := newTestGame(t, WithSeed(2))
	g.Step(0, core.InputOf(core.ActionPause))
	if !g.Paused() {
		t.Fatal("expected paused")
	}
	y := g.Bird().Y
	g.Step(50*time.Millisecond, none())
	if g.Bird().Y != y || g.Ticks() != 0 {
		t.Error("paused game must not advance")
	}
	g.Step(0, core.InputOf(core.ActionPause))
	if g.Paused() {
		t.Error("second pause should resume")
	}
}

func TestFrameDeltaClamp(t *testing.T) {
	g := newTestGame(t, WithSeed(2))
	g.ep.pipes = nil
	g.Step(5*time.Second, none())
	if got := g.Elapsed(); got != 100*time.Millisecond {
		t.Errorf("elapsed = %v, expected clamp to 100ms", got)
	}
}

func TestFirstPipeAtOffset(t *testing.T) {
	g := newTestGame(t, WithSeed(9))
	cfg := g.Config()
	if len(g.Pipes()) != 1 {
		t.Fatalf("pipes = %d, expected 1", len(g.Pipes()))
	}
	if got, want := g.Pipes()[0].X(), cfg.Bird.X+cfg.Pipes.FirstOffset; got != want {
		t.Errorf("first pipe x = %v, expected %v", got, want)
	}
}

func TestSpawnAtRightEdge(t *testing.T) {
	g := newTestGame(t, WithSeed(9))
	g.Step(0, core.InputOf(core.ActionToggleDebug))

	interval := g.Generator().NextInterval()
	step := 10 * time.Millisecond
	var spawned bool
	for ms := 0.0; ms <= interval+20; ms += 10 {
		res := g.Step(step, none())
		if hasEvent(res.Events, core.EventSpawned) {
			spawned = true
			break
		}
	}
	if !spawned {
		t.Fatalf("no spawn within interval %v", interval)
	}
	last := g.Pipes()[len(g.Pipes())-1]
	// Spawned at W, then advanced once in the same tick.
	width := float64(g.Config().Screen.Width)
	if last.X() >= width || last.X() < width-g.Speed() {
		t.Errorf("new pipe x = %v, expected just left of %v", last.X(), width)
	}
}

func TestDeterminism(t *testing.T) {
	trace := make([]core.InputFrame, 3000)
	for i := range trace {
		trace[i] = core.NewInputFrame()
		if i%23 == 0 {
			trace[i].Set(core.ActionFlap)
		}
		if i%400 == 399 {
			trace[i].Set(core.ActionRestart)
		}
	}
	dt := func(i int) time.Duration { return time.Duration(12+i%9) * time.Millisecond }

	run := func() (int, []string, float64) {
		g := newTestGame(t, WithSeed(12345))
		var phases []string
		for i, in := range trace {
			res := g.Step(dt(i), in)
			for _, e := range res.Events {
				if e.Kind == core.EventPhaseChanged {
					phases = append(phases, e.Detail)
				}
			}
		}
		return g.Score(), phases, g.Bird().Y
	}

	s1, p1, y1 := run()
	s2, p2, y2 := run()

	if s1 != s2 {
		t.Errorf("scores differ: %d vs %d", s1, s2)
	}
	if y1 != y2 {
		t.Errorf("bird positions differ: %v vs %v", y1, y2)
	}
	if len(p1) != len(p2) {
		t.Fatalf("phase transitions differ: %v vs %v", p1, p2)
	}
	for i := range p1 {
		if p1[i] != p2[i] {
			t.Errorf("transition %d differs: %s vs %s", i, p1[i], p2[i])
		}
	}
}

func TestEpisodeInvariants(t *testing.T) {
	for _, seed := range []int64{1, 7, 42, 99} {
		g := newTestGame(t, WithSeed(seed))
		pilot := Autopilot{Restart: true}
		cfg := g.Config()

		lastScore, lastSpeed := 0, g.Speed()
		for i := 0; i < 5000; i++ {
			in := pilot.Decide(g)
			if i%7 == 0 {
				in.Set(core.ActionFlap)
			}
			restarting := g.Phase() == PhaseGameOver && in.Has(core.ActionRestart)
			g.Step(16*time.Millisecond, in)

			if restarting {
				if g.Score() != 0 || g.Speed() != cfg.Pipes.BaseSpeed {
					t.Fatalf("seed %d: restart left score=%d speed=%v", seed, g.Score(), g.Speed())
				}
				lastScore, lastSpeed = 0, g.Speed()
				continue
			}
			if g.Score() < lastScore {
				t.Fatalf("seed %d tick %d: score dropped %d -> %d", seed, i, lastScore, g.Score())
			}
			if g.Speed() < lastSpeed {
				t.Fatalf("seed %d tick %d: speed dropped %v -> %v", seed, i, lastSpeed, g.Speed())
			}
			lastScore, lastSpeed = g.Score(), g.Speed()

			if b := g.Bird(); b.Y < b.HalfHeight() {
				t.Fatalf("seed %d tick %d: bird above ceiling y=%v", seed, i, b.Y)
			}
			for _, p := range g.Pipes() {
				if p.TopHeight+p.Gap+p.BottomHeight != cfg.Screen.Height {
					t.Fatalf("seed %d: pipe heights %d+%d+%d != %d", seed, p.TopHeight, p.Gap, p.BottomHeight, cfg.Screen.Height)
				}
				if p.TopHeight < cfg.Pipes.MinHeight || p.BottomHeight < cfg.Pipes.MinHeight {
					t.Fatalf("seed %d: segment below minimum: top=%d bottom=%d", seed, p.TopHeight, p.BottomHeight)
				}
			}
		}
	}
}

func TestConfigureAppliesOnNextEpisode(t *testing.T) {
	g := newTestGame(t, WithSeed(4))
	cfg := config.DefaultFlappyConfig()
	cfg.Pipes.BaseSpeed = 180

	if err := g.Configure(cfg); err != nil {
		t.Fatalf("Configure() failed: %v", err)
	}
	if g.Speed() == 180 {
		t.Fatal("configuration must not change the running episode")
	}

	g.ep.phase = PhaseGameOver
	g.Step(0, core.InputOf(core.ActionRestart))
	if g.Speed() != 180 {
		t.Errorf("speed after restart = %v, expected 180", g.Speed())
	}

	bad := config.DefaultFlappyConfig()
	bad.Pipes.Width = 0
	if err := g.Configure(bad); err == nil {
		t.Error("expected error for invalid config")
	}
}

func TestResetReseeds(t *testing.T) {
	g := newTestGame(t)
	rc := core.DefaultConfig()
	rc.Seed = 77
	g.Reset(rc)
	first := *g.Pipes()[0]

	for i := 0; i < 100; i++ {
		g.Step(16*time.Millisecond, none())
	}
	g.Reset(rc)
	again := *g.Pipes()[0]

	if first.TopHeight != again.TopHeight || first.Gap != again.Gap || first.BounceZone != again.BounceZone {
		t.Error("Reset with the same seed should reproduce the first pipe")
	}
	if g.Seed() != 77 {
		t.Errorf("seed = %d, expected 77", g.Seed())
	}
}

func TestNewRejectsMissingAssets(t *testing.T) {
	p, err := assets.Load([]byte("sprites: {}\n"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := New(config.DefaultFlappyConfig(), p); err == nil {
		t.Error("expected error when sprites are missing")
	}
}

func TestGameID(t *testing.T) {
	g := newTestGame(t)
	if g.ID() != "flappy" {
		t.Errorf("ID = %q", g.ID())
	}
	if g.Title() == "" {
		t.Error("Title should not be empty")
	}
}
