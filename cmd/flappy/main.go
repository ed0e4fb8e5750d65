// flappy is a terminal flappy-bird with bounce pipes, recorded replays and
// a headless simulator.
//
// Usage:
//
//	flappy list              - List available games
//	flappy play [game]       - Play a game (default: flappy)
//	flappy menu              - Start menu with the replay browser
//	flappy simulate          - Run the autopilot headless
//	flappy replays           - Browse recorded replays
//	flappy verify <id>       - Re-simulate a replay and compare its score
//	flappy snapshot          - Render a PNG of a simulated moment
//	flappy config            - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.flappy/replays.db)
//	--config <path>       - Custom config YAML
//	--difficulty <name>   - easy, normal, hard or fixed
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/flappy-bounce/internal/assets"
	"github.com/vovakirdan/flappy-bounce/internal/config"

	// Import games to register them
	_ "github.com/vovakirdan/flappy-bounce/internal/games/flappy"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagSprites    string
	flagLogFile    string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "flappy",
	Short: "Flappy Bounce - flap through pipes in your terminal",
	Long: `Flappy Bounce is a terminal flappy-bird. Some pipes carry a bounce
zone: land on top of one while falling and you bounce off for bonus points.

Every finished round is recorded as a replay that can be simulated again.

Available commands:
  list      - Show all available games
  play      - Play directly
  menu      - Interactive menu with the replay browser
  simulate  - Let the autopilot play headless
  replays   - Browse recorded replays
  verify    - Re-simulate a replay
  snapshot  - Render a PNG frame
  config    - Print or initialise the configuration

Examples:
  flappy play
  flappy play --difficulty hard --watch
  flappy simulate --episodes 10 --seed 7
  flappy verify 3`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.flappy/replays.db", "Path to replay database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagSprites, "sprites", "", "Path to a custom sprite sheet YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log", "", "Log file (default: stderr, or ~/.flappy/flappy.log while the TUI runs)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(replaysCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(snapshotCmd)
	rootCmd.AddCommand(configCmd)
}

// fail prints an error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// newLogger builds the process logger. Interactive commands own the
// terminal, so they log to a file unless --log says otherwise.
func newLogger(interactive bool) (*log.Logger, io.Closer) {
	var (
		w      io.Writer = os.Stderr
		closer io.Closer = io.NopCloser(nil)
	)

	path := flagLogFile
	if path == "" && interactive {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, ".flappy", "flappy.log")
		}
	}
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err == nil {
			if f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644); err == nil {
				w, closer = f, f
			}
		}
		if interactive && w == os.Stderr {
			w = io.Discard
		}
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Prefix:          "flappy",
	})
	if level, err := log.ParseLevel(flagLogLevel); err == nil {
		logger.SetLevel(level)
	} else {
		logger.Warn("unknown log level, using info", "level", flagLogLevel)
	}
	return logger, closer
}

// loadGameConfig loads the configuration named by the global flags.
func loadGameConfig() (config.FlappyConfig, config.DifficultyPreset, error) {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return config.FlappyConfig{}, "", err
	}
	cfg, err := config.Load(flagConfig, preset)
	if err != nil {
		return config.FlappyConfig{}, "", err
	}
	return cfg, preset, nil
}

// loadAssets loads the sprite sheet named by --sprites, or the built-in one.
func loadAssets() (*assets.Provider, error) {
	if flagSprites != "" {
		return assets.LoadFile(flagSprites)
	}
	return assets.LoadDefault()
}

// resolveSeed returns the --seed value, or a time-based seed.
func resolveSeed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}
