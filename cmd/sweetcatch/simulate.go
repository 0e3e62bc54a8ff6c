package main

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/sweet-catch/internal/config"
	"github.com/vovakirdan/sweet-catch/internal/games/catch"
	"github.com/vovakirdan/sweet-catch/internal/history"
	"github.com/vovakirdan/sweet-catch/internal/sched"
	"github.com/vovakirdan/sweet-catch/internal/storage"
)

// simStep is how far the virtual clock moves between bot decisions.
const simStep = 100 * time.Millisecond

var (
	flagSimRounds    int
	flagSimCatchRate float64
	flagSimDryRun    bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Play headless rounds with a bot",
	Long: `Run rounds on a virtual clock with a bot that tries to catch each sweet
once, succeeding with probability --catch-rate. The rounds form one new
session and are recorded like real play unless --dry-run is set.

Examples:
  sweetcatch simulate
  sweetcatch simulate --rounds 10 --catch-rate 0.9
  sweetcatch simulate --dry-run --seed 42`,
	Args: cobra.NoArgs,
	Run:  runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagSimRounds, "rounds", 3, "Number of rounds to play")
	simulateCmd.Flags().Float64Var(&flagSimCatchRate, "catch-rate", 0.7, "Probability of catching each sweet (0-1)")
	simulateCmd.Flags().BoolVar(&flagSimDryRun, "dry-run", false, "Keep results in memory only")
}

// simOptions configures a bot simulation.
type simOptions struct {
	Rounds    int
	CatchRate float64
	Seed      int64
}

// simulate plays opts.Rounds rounds in a new session on a virtual clock.
func simulate(cfg config.Config, hist *history.Store, opts simOptions, logger *log.Logger) []catch.Result {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	clock := sched.NewManual()
	bot := rand.New(rand.NewSource(opts.Seed))

	results := make([]catch.Result, 0, opts.Rounds)
	engine := catch.New(cfg.Settings(), clock,
		catch.WithRecorder(hist),
		catch.WithSessions(hist),
		catch.WithSeed(opts.Seed),
		catch.WithLogger(logger),
		catch.WithOnEnd(func(r catch.Result) { results = append(results, r) }),
	)

	hist.StartNewSession()
	for i := 0; i < opts.Rounds; i++ {
		engine.StartRound()
		seen := 0
		for engine.Phase() == catch.PhaseRunning {
			if tg, ok := engine.Target(); ok && tg.Seq != seen {
				seen = tg.Seq
				if bot.Float64() < opts.CatchRate {
					engine.Catch()
				}
			}
			clock.Advance(simStep)
		}
	}
	return results
}

func runSimulate(_ *cobra.Command, _ []string) {
	if flagSimRounds <= 0 {
		fmt.Fprintln(os.Stderr, "Error: --rounds must be positive")
		os.Exit(1)
	}
	if flagSimCatchRate < 0 || flagSimCatchRate > 1 {
		fmt.Fprintln(os.Stderr, "Error: --catch-rate must be between 0 and 1")
		os.Exit(1)
	}

	cfg, hist, logger, done := setup()
	defer done()
	if flagSimDryRun {
		hist = newHistory(storage.NewMemory(), cfg, logger)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	results := simulate(cfg, hist, simOptions{
		Rounds:    flagSimRounds,
		CatchRate: flagSimCatchRate,
		Seed:      seed,
	}, logger)

	kinds := cfg.CatchKinds()
	fmt.Printf("Simulated %d rounds (catch rate %.0f%%, seed %d)\n", len(results), flagSimCatchRate*100, seed)
	fmt.Println()
	fmt.Printf("  %-5s  %-6s  %-22s  %s\n", "Round", "Points", "Award", "Caught")
	fmt.Printf("  %-5s  %-6s  %-22s  %s\n", "-----", "------", "-----", "------")
	for _, r := range results {
		fmt.Printf("  %-5d  %-6d  %-22s  %s\n", r.Record.Level, r.Record.Points, r.Tier.Title, formatCounts(kinds, r.Record.Counts))
	}
}

// formatCounts renders counts in kind order, e.g. "♥ 2  ★ 0".
func formatCounts(kinds catch.Kinds, counts catch.Counts) string {
	parts := make([]string, 0, len(kinds))
	for _, k := range kinds {
		glyph := k.Glyph
		if glyph == "" {
			glyph = string(k.Kind)
		}
		parts = append(parts, fmt.Sprintf("%s %d", glyph, counts[k.Kind]))
	}
	return strings.Join(parts, "  ")
}
