package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flappy-bounce/internal/platform/tui"
	"github.com/vovakirdan/flappy-bounce/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with the interactive menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to play, Tab for replays.
After a round ends and you quit it, you return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Play
  Tab          - Replay browser
  Q            - Quit

Examples:
  flappy menu
  flappy menu --fps 30
  flappy menu --db ./replays.db`,
	Run: runMenu,
}

func init() {
	menuCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload the config file when it changes (applies next round)")
}

func runMenu(_ *cobra.Command, _ []string) {
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

	store := openStore(logger)
	defer func() {
		if store != nil {
			store.Close()
		}
	}()

	rc := terminalConfig()
	var lastScore *int

	for {
		menuResult, err := tui.RunMenu(rc, lastScore)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Update config with any size changes
		rc = menuResult.Config

		if menuResult.Quit {
			break
		}

		if menuResult.WantsReplays {
			goBack, rErr := tui.RunReplays(store, provider, rc.ScreenW, rc.ScreenH)
			if rErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", rErr)
			}
			if goBack {
				continue // Back to menu
			}
			break
		}

		gameID := menuResult.GameID
		if gameID == "" {
			break
		}

		// Fresh seed for each round unless pinned
		rc.Seed = flagSeed
		if rc.Seed == 0 {
			rc.Seed = time.Now().UnixNano()
		}

		game, err := registry.Create(gameID, registry.Env{Config: cfg, Assets: provider, Seed: rc.Seed})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}

		state, err := tui.Run(game, tui.Options{
			Store:     store,
			Logger:    logger,
			Runtime:   rc,
			WatchPath: watchPath(logger),
			Preset:    preset,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}
		score := state.Score
		lastScore = &score
	}
}
