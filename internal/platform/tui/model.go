package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flappy-bounce/internal/config"
	"github.com/vovakirdan/flappy-bounce/internal/core"
	"github.com/vovakirdan/flappy-bounce/internal/games/flappy"
	"github.com/vovakirdan/flappy-bounce/internal/registry"
	"github.com/vovakirdan/flappy-bounce/internal/replay"
	"github.com/vovakirdan/flappy-bounce/internal/snapshot"
	"github.com/vovakirdan/flappy-bounce/internal/storage"
)

// Options configures a game session.
type Options struct {
	Store         *storage.Store // nil disables replay saving
	Logger        *log.Logger
	Runtime       core.RuntimeConfig
	WatchPath     string // config file to hot reload, empty to disable
	Preset        config.DifficultyPreset
	ScreenshotDir string
}

// Model is the Bubble Tea model for running the game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	help       help.Model
	inputFrame core.InputFrame
	gameState  core.GameState
	lastTick   time.Time

	recorder    *replay.Recorder
	replaySaved bool // Whether the replay has been saved for current game over

	screenshotDir string
	status        string
	quitting      bool
}

// NewModel creates a new Bubble Tea model for the given game and starts
// its first episode.
func NewModel(game registry.Game, opts Options) Model {
	cfg := opts.Runtime
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(os.Stderr)
	}
	dir := opts.ScreenshotDir
	if dir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			dir = filepath.Join(home, ".flappy", "screenshots")
		}
	}

	h := help.New()
	h.Width = cfg.ScreenW

	m := Model{
		game:          game,
		screen:        core.NewScreen(cfg.ScreenW, playfieldHeight(cfg.ScreenH)),
		store:         opts.Store,
		logger:        logger,
		config:        cfg,
		keyMapper:     NewKeyMapper(),
		help:          h,
		inputFrame:    core.NewInputFrame(),
		screenshotDir: dir,
	}
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	m.startRecording()
	return m
}

// playfieldHeight leaves the last terminal row for the help line.
func playfieldHeight(h int) int {
	if h > 2 {
		return h - 1
	}
	return h
}

// startRecording begins a replay for the episode that just started.
func (m *Model) startRecording() {
	m.replaySaved = false
	m.recorder = nil
	rg, ok := m.game.(replay.Recordable)
	if !ok || m.store == nil {
		return
	}
	rec, err := replay.NewRecorder(rg)
	if err != nil {
		m.logger.Warn("replay recording disabled", "error", err)
		return
	}
	m.recorder = rec
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.FrameInterval())
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))

	case ConfigReloadedMsg:
		return m.handleConfig(msg)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keyMapper.Keys().Screenshot) {
		m.saveScreenshot()
		return m, nil
	}

	if quit := m.keyMapper.MapKeyToFrame(msg, &m.inputFrame); quit {
		m.quitting = true
		m.logger.Info("quit", "score", m.gameState.Score, "phase", m.gameState.Phase)
		return m, tea.Quit
	}
	return m, nil
}

// handleResize re-fits the playfield; the episode keeps running.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, playfieldHeight(msg.Height))
	m.help.Width = msg.Width
	return m, nil
}

// handleConfig hands a reloaded config to the game for its next episode.
func (m Model) handleConfig(msg ConfigReloadedMsg) (tea.Model, tea.Cmd) {
	c, ok := m.game.(registry.Configurable)
	if !ok {
		return m, nil
	}
	if err := c.Configure(msg.Config); err != nil {
		m.logger.Warn("rejected reloaded config", "error", err)
		return m, nil
	}
	m.status = "config reloaded, applies next run"
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	interval := m.config.FrameInterval()
	dt := frameDelta(m.lastTick, now, interval)
	m.lastTick = now

	// A restart starts a fresh, separately seeded episode so every
	// replay can be simulated on its own.
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.startRecording()
		m.status = ""
		m.inputFrame.Clear()
		m.logger.Info("restart", "seed", m.config.Seed)
		return m, tickCmd(interval)
	}

	wasOver := m.gameState.GameOver
	result := m.game.Step(dt, m.inputFrame)
	if m.recorder != nil && !wasOver {
		m.recorder.Record(dt, m.inputFrame)
	}
	m.gameState = result.State
	m.logEvents(result.Events)

	if m.gameState.GameOver && !m.replaySaved {
		m.saveReplay()
		m.replaySaved = true
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(interval)
}

func (m *Model) logEvents(events []core.Event) {
	for _, e := range events {
		switch e.Kind {
		case core.EventScored:
			m.logger.Debug("pipe passed", "points", e.Points, "score", m.gameState.Score)
		case core.EventBounced:
			m.logger.Debug("bounced")
		case core.EventSpawned:
			m.logger.Debug("pipe spawned", "shape", e.Detail)
		case core.EventCrashed:
			m.logger.Info("crashed", "cause", e.Detail, "score", m.gameState.Score)
		case core.EventPhaseChanged:
			m.logger.Debug("phase", "change", e.Detail)
		}
	}
}

// saveReplay stores the finished episode. Failures are logged and play
// goes on.
func (m *Model) saveReplay() {
	if m.recorder == nil || m.store == nil {
		return
	}
	trace := m.recorder.Finish(m.gameState.Score)
	id, err := m.store.SaveReplay(trace.Record())
	if err != nil {
		m.logger.Error("cannot save replay", "error", err)
		return
	}
	m.logger.Info("replay saved", "id", id, "score", trace.Score, "ticks", len(trace.Ticks))
	m.status = fmt.Sprintf("replay #%d saved", id)
}

// saveScreenshot saves the current frame as PNG, or as text for games
// without an image renderer.
func (m *Model) saveScreenshot() {
	if err := os.MkdirAll(m.screenshotDir, 0o755); err != nil {
		m.logger.Warn("cannot create screenshot directory", "error", err)
		return
	}
	timestamp := time.Now().Format("20060102_150405")

	var path string
	var err error
	if fg, ok := m.game.(*flappy.Game); ok {
		path = filepath.Join(m.screenshotDir, fmt.Sprintf("%s_%s.png", m.game.ID(), timestamp))
		err = snapshot.Save(snapshot.Render(fg), path)
	} else {
		m.game.Render(m.screen)
		path = filepath.Join(m.screenshotDir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
		err = os.WriteFile(path, []byte(m.screen.String()), 0o600)
	}
	if err != nil {
		m.logger.Warn("screenshot failed", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
	m.status = "saved " + filepath.Base(path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)

	footer := m.help.View(m.keyMapper.Keys())
	if m.status != "" {
		footer += "  " + m.status
	}
	return RenderFrame(m.screen, footer)
}

// State returns the last reported game state.
func (m Model) State() core.GameState {
	return m.gameState
}

// Run starts the Bubble Tea program for the given game. It blocks until
// the player quits and returns the last game state.
func Run(game registry.Game, opts Options) (core.GameState, error) {
	if opts.Logger == nil {
		opts.Logger = log.New(os.Stderr)
	}
	model := NewModel(game, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if opts.WatchPath != "" {
		go func() {
			err := config.Watch(ctx, opts.WatchPath, opts.Preset, opts.Logger, func(cfg config.FlappyConfig) {
				p.Send(ConfigReloadedMsg{Config: cfg})
			})
			if err != nil {
				opts.Logger.Warn("config watch stopped", "error", err)
			}
		}()
	}

	finalModel, err := p.Run()
	if err != nil {
		return core.GameState{}, err
	}
	if m, ok := finalModel.(Model); ok {
		return m.State(), nil
	}
	return game.State(), nil
}
