package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flappy-bounce/internal/core"
	"github.com/vovakirdan/flappy-bounce/internal/games/flappy"
	"github.com/vovakirdan/flappy-bounce/internal/replay"
	"github.com/vovakirdan/flappy-bounce/internal/storage"
)

var (
	flagEpisodes int
	flagMaxTicks int
	flagMargin   float64
	flagSave     bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Let the autopilot play headless",
	Long: `Run episodes with the built-in autopilot at a fixed step of 1/fps
seconds, without a terminal UI. Each episode is seeded from --seed plus
its index, so runs are reproducible.

Examples:
  flappy simulate
  flappy simulate --episodes 20 --seed 7
  flappy simulate --save --difficulty hard`,
	Args: cobra.NoArgs,
	Run:  runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagEpisodes, "episodes", 1, "Number of episodes")
	simulateCmd.Flags().IntVar(&flagMaxTicks, "max-ticks", 60*60*5, "Stop an episode after this many ticks")
	simulateCmd.Flags().Float64Var(&flagMargin, "margin", 4, "Autopilot slack below the target before it flaps")
	simulateCmd.Flags().BoolVar(&flagSave, "save", false, "Store each episode as a replay")
}

// episodeResult summarises one simulated episode.
type episodeResult struct {
	seed    int64
	score   int
	phase   flappy.Phase
	ticks   int
	elapsed time.Duration
	replay  int64
}

func runSimulate(cmd *cobra.Command, args []string) {
	cfg, _, err := loadGameConfig()
	if err != nil {
		fail("%v", err)
	}
	provider, err := loadAssets()
	if err != nil {
		fail("%v", err)
	}
	logger, closer := newLogger(false)
	defer closer.Close()

	var store *storage.Store
	if flagSave {
		store = openStore(logger)
		if store != nil {
			defer store.Close()
		}
	}

	dt := core.RuntimeConfig{TickRate: flagFPS}.FrameInterval().Truncate(time.Microsecond)
	pilot := flappy.Autopilot{Margin: flagMargin}
	base := resolveSeed()

	results := make([]episodeResult, 0, flagEpisodes)
	for i := 0; i < flagEpisodes; i++ {
		seed := base + int64(i)
		g, err := flappy.New(cfg, provider, flappy.WithSeed(seed))
		if err != nil {
			fail("%v", err)
		}
		rec, err := replay.NewRecorder(g)
		if err != nil {
			fail("%v", err)
		}

		for t := 0; t < flagMaxTicks && g.Phase() != flappy.PhaseGameOver; t++ {
			in := pilot.Decide(g)
			res := g.Step(dt, in)
			rec.Record(dt, in)
			for _, e := range res.Events {
				if e.Kind == core.EventCrashed {
					logger.Debug("crashed", "episode", i+1, "cause", e.Detail, "tick", g.Ticks())
				}
			}
		}

		r := episodeResult{
			seed:    seed,
			score:   g.Score(),
			phase:   g.Phase(),
			ticks:   g.Ticks(),
			elapsed: g.Elapsed(),
		}
		if store != nil {
			trace := rec.Finish(g.Score())
			id, err := store.SaveReplay(trace.Record())
			if err != nil {
				logger.Error("cannot save replay", "error", err)
			} else {
				r.replay = id
			}
		}
		logger.Info("episode done", "episode", i+1, "seed", seed, "score", r.score, "phase", r.phase)
		results = append(results, r)
	}

	printResults(results)
}

func printResults(results []episodeResult) {
	fmt.Printf("  %-3s  %-20s  %-7s  %-10s  %-8s  %-9s  %s\n", "#", "Seed", "Score", "Phase", "Ticks", "Time", "Replay")
	fmt.Printf("  %-3s  %-20s  %-7s  %-10s  %-8s  %-9s  %s\n", "-", "----", "-----", "-----", "-----", "----", "------")

	best, total := 0, 0
	for i, r := range results {
		id := "-"
		if r.replay != 0 {
			id = fmt.Sprintf("#%d", r.replay)
		}
		fmt.Printf("  %-3d  %-20d  %-7d  %-10s  %-8d  %-9s  %s\n",
			i+1, r.seed, r.score, r.phase, r.ticks, r.elapsed.Round(10*time.Millisecond), id)
		total += r.score
		if r.score > best {
			best = r.score
		}
	}

	if len(results) > 1 {
		fmt.Println()
		fmt.Printf("Best: %d  Average: %.1f\n", best, float64(total)/float64(len(results)))
	}
}
