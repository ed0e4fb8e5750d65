package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/flappy-bounce/internal/platform/tui"
	"github.com/vovakirdan/flappy-bounce/internal/replay"
	"github.com/vovakirdan/flappy-bounce/internal/storage"
)

var (
	flagPlain bool
	flagLimit int
)

var replaysCmd = &cobra.Command{
	Use:   "replays",
	Short: "Browse recorded replays",
	Long: `Open the replay browser. Without a terminal, or with --plain, the
most recent replays are printed instead.

Examples:
  flappy replays
  flappy replays --plain --limit 20
  flappy replays rm 12`,
	Args: cobra.NoArgs,
	Run:  runReplays,
}

var replaysRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a replay",
	Args:  cobra.ExactArgs(1),
	Run:   runReplaysRm,
}

var verifyCmd = &cobra.Command{
	Use:   "verify <id>",
	Short: "Re-simulate a replay and compare the score",
	Long: `Simulate a stored replay from its seed, configuration and recorded
inputs, and check that it reaches the recorded score.

Examples:
  flappy verify 3`,
	Args: cobra.ExactArgs(1),
	Run:  runVerify,
}

func init() {
	replaysCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print a list instead of opening the browser")
	replaysCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of replays to print")
	replaysCmd.AddCommand(replaysRmCmd)
}

func parseID(s string) int64 {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		fail("invalid replay id %q", s)
	}
	return id
}

func mustOpenStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening replay database: %v", err)
	}
	return store
}

func runReplays(cmd *cobra.Command, args []string) {
	store := mustOpenStore()
	defer store.Close()

	if !flagPlain && term.IsTerminal(int(os.Stdout.Fd())) {
		provider, err := loadAssets()
		if err != nil {
			fail("%v", err)
		}
		rc := terminalConfig()
		if _, err := tui.RunReplays(store, provider, rc.ScreenW, rc.ScreenH); err != nil {
			fail("%v", err)
		}
		return
	}

	replays, err := store.RecentReplays(flagLimit)
	if err != nil {
		fail("retrieving replays: %v", err)
	}
	if len(replays) == 0 {
		fmt.Println("No replays recorded yet.")
		fmt.Println()
		fmt.Println("Play 'flappy play' to record one!")
		return
	}

	fmt.Printf("  %-6s  %-7s  %-7s  %-20s  %s\n", "ID", "Score", "Ticks", "Seed", "Date")
	fmt.Printf("  %-6s  %-7s  %-7s  %-20s  %s\n", "--", "-----", "-----", "----", "----")
	for _, r := range replays {
		fmt.Printf("  %-6d  %-7d  %-7d  %-20d  %s\n",
			r.ID, r.Score, r.TickCount, r.Seed, r.CreatedAt.Format("2006-01-02 15:04"))
	}
}

func runReplaysRm(cmd *cobra.Command, args []string) {
	id := parseID(args[0])
	store := mustOpenStore()
	defer store.Close()

	if err := store.DeleteReplay(id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			fail("replay #%d not found", id)
		}
		fail("deleting replay: %v", err)
	}
	fmt.Printf("Deleted replay #%d\n", id)
}

func runVerify(cmd *cobra.Command, args []string) {
	id := parseID(args[0])
	store := mustOpenStore()
	rec, err := store.Replay(id)
	store.Close()
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			fail("replay #%d not found", id)
		}
		fail("loading replay: %v", err)
	}

	provider, err := loadAssets()
	if err != nil {
		fail("%v", err)
	}
	out, err := replay.Run(replay.FromRecord(rec), provider)
	if err != nil {
		fail("%v", err)
	}

	pass := color.New(color.FgGreen, color.Bold)
	bad := color.New(color.FgRed, color.Bold)
	dim := color.New(color.FgHiBlack)

	dim.Printf("replay #%d  seed %d  %d ticks\n", rec.ID, rec.Seed, len(rec.Ticks))
	if out.Score == rec.Score {
		pass.Print("PASS")
		fmt.Printf("  score %d, ended %s after %s\n", out.Score, out.Phase, out.Elapsed.Round(10*time.Millisecond))
		return
	}
	bad.Print("FAIL")
	fmt.Printf("  recorded score %d, simulated %d (%s)\n", rec.Score, out.Score, out.Phase)
	os.Exit(1)
}
