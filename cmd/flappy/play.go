package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/flappy-bounce/internal/config"
	"github.com/vovakirdan/flappy-bounce/internal/core"
	"github.com/vovakirdan/flappy-bounce/internal/platform/tui"
	"github.com/vovakirdan/flappy-bounce/internal/registry"
	"github.com/vovakirdan/flappy-bounce/internal/storage"
)

var flagWatch bool

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play a game",
	Long: `Start playing. The game defaults to flappy.

Controls:
  Space/Up   - Flap
  P/Esc      - Pause
  D/F3       - Toggle debug overlay
  R          - Restart (after game over)
  Ctrl+S     - Save a screenshot
  Q/Ctrl+C   - Quit

Difficulty options:
  easy   - Slower pipes, more bounce zones
  normal - Config as loaded
  hard   - Faster pipes that speed up quicker
  fixed  - No speed progression

Examples:
  flappy play
  flappy play --difficulty hard
  flappy play --config ./my-flappy.yaml --watch`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload the config file when it changes (applies next round)")
}

// terminalConfig builds the runtime config from the terminal size and
// global flags.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStore opens the replay database. Play goes on without it.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open replay database", "path", flagDBPath, "error", err)
		fmt.Fprintf(os.Stderr, "Warning: could not open replay database: %v\n", err)
		return nil
	}
	return store
}

// watchPath returns the config file to hot reload, if any.
func watchPath(logger *log.Logger) string {
	if !flagWatch {
		return ""
	}
	path := config.ResolvePath(flagConfig)
	if path == "" {
		logger.Warn("nothing to watch: using the built-in config")
	}
	return path
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := "flappy"
	if len(args) == 1 {
		gameID = args[0]
	}

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'flappy list' to see available games.")
		os.Exit(1)
	}

	cfg, preset, err := loadGameConfig()
	if err != nil {
		fail("%v", err)
	}
	provider, err := loadAssets()
	if err != nil {
		fail("%v", err)
	}

	logger, closer := newLogger(true)
	defer closer.Close()

	rc := terminalConfig()
	game, err := registry.Create(gameID, registry.Env{Config: cfg, Assets: provider, Seed: rc.Seed})
	if err != nil {
		fail("creating game: %v", err)
	}

	store := openStore(logger)

	logger.Info("starting", "game", gameID, "difficulty", string(preset), "fps", rc.TickRate)
	state, runErr := tui.Run(game, tui.Options{
		Store:     store,
		Logger:    logger,
		Runtime:   rc,
		WatchPath: watchPath(logger),
		Preset:    preset,
	})

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fail("running game: %v", runErr)
	}
	fmt.Printf("Score: %d\n", state.Score)
}
