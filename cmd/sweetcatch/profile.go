package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/sweet-catch/internal/config"
	"github.com/vovakirdan/sweet-catch/internal/games/catch"
	"github.com/vovakirdan/sweet-catch/internal/storage"
)

var (
	flagAwardRound  int
	flagHistoryJSON bool
)

var awardsCmd = &cobra.Command{
	Use:   "awards",
	Short: "Show awards of the latest session",
	Long: `Display the rounds of the latest session and the award of one round.
Without --round the last round is shown.

Examples:
  sweetcatch awards
  sweetcatch awards --round 2`,
	Args: cobra.NoArgs,
	Run:  runAwards,
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List every recorded round",
	Long: `Display every round in the history log, oldest first.

Examples:
  sweetcatch history
  sweetcatch history --json`,
	Args: cobra.NoArgs,
	Run:  runHistory,
}

var nameCmd = &cobra.Command{
	Use:   "name [new-name]",
	Short: "Show or set the display name",
	Long: `Without arguments, print the display name. With an argument, store it.
An empty string clears the name.

Examples:
  sweetcatch name
  sweetcatch name "Sweet Tooth"`,
	Args: cobra.MaximumNArgs(1),
	Run:  runName,
}

var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "List SSH players in the database",
	Long:  `Shows every SSH user that has data in the server database.`,
	Args:  cobra.NoArgs,
	Run:   runPlayers,
}

func init() {
	awardsCmd.Flags().IntVar(&flagAwardRound, "round", 0, "Round to show (default: last)")
	historyCmd.Flags().BoolVar(&flagHistoryJSON, "json", false, "Print the raw JSON log")
}

func runAwards(_ *cobra.Command, _ []string) {
	_, hist, _, done := setup()
	defer done()

	profile := hist.Profile()
	name := profile.Name
	if name == "" {
		name = "(no name)"
	}
	fmt.Printf("Awards - %s\n", name)
	fmt.Println()

	if profile.LevelsTotal() == 0 {
		fmt.Println("No rounds recorded yet.")
		fmt.Println()
		fmt.Println("Run 'sweetcatch play' to play your first round!")
		return
	}

	level := flagAwardRound
	if level == 0 {
		level = profile.Rounds[len(profile.Rounds)-1].Level
	}
	if level > 0 && !profile.IsDone(level) {
		fmt.Fprintf(os.Stderr, "Round %d was not played in this session, showing the last round.\n\n", level)
	}
	award := profile.Award(level)

	chips := make([]string, len(profile.Rounds))
	for i, r := range profile.Rounds {
		if r.Level == award.Round.Level {
			chips[i] = fmt.Sprintf("[%d]", r.Level)
		} else {
			chips[i] = fmt.Sprintf(" %d ", r.Level)
		}
	}
	fmt.Printf("Rounds: %s\n", strings.Join(chips, " "))
	fmt.Println()
	fmt.Printf("Round %d\n", award.Round.Level)
	fmt.Printf("  Caught:  %s\n", formatCounts(profile.Kinds(), award.Counts))
	fmt.Printf("  Award:   %s (%s)\n", award.Tier.Title, award.Badge)
	if award.Tier.Description != "" {
		fmt.Printf("           %s\n", award.Tier.Description)
	}
}

func runHistory(_ *cobra.Command, _ []string) {
	cfg, hist, _, done := setup()
	defer done()

	rounds := hist.All()
	if flagHistoryJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rounds); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding history: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if len(rounds) == 0 {
		fmt.Println("No rounds recorded yet.")
		return
	}

	tiers := cfg.AwardTiers()
	fmt.Printf("  %-15s  %-5s  %-6s  %s\n", "Session", "Round", "Points", "Award")
	fmt.Printf("  %-15s  %-5s  %-6s  %s\n", "-------", "-----", "------", "-----")
	for _, r := range rounds {
		fmt.Printf("  %-15d  %-5d  %-6d  %s\n", r.SessionID, r.Level, r.Points, tiers.For(r.Points).Title)
	}
	fmt.Println()
	fmt.Printf("%d rounds in %d sessions\n", len(rounds), countSessions(rounds))
}

func countSessions(rounds []catch.RoundRecord) int {
	seen := make(map[int64]struct{})
	for _, r := range rounds {
		seen[r.SessionID] = struct{}{}
	}
	return len(seen)
}

func runName(_ *cobra.Command, args []string) {
	_, hist, _, done := setup()
	defer done()

	if len(args) == 0 {
		if name := hist.DisplayName(); name != "" {
			fmt.Println(name)
		} else {
			fmt.Println("(no name)")
		}
		return
	}

	hist.SetDisplayName(strings.TrimSpace(args[0]))
	fmt.Printf("Display name set to %q\n", hist.DisplayName())
}

// playerSummary is one line of the players listing.
type playerSummary struct {
	User        string
	Name        string
	Rounds      int
	Caught      int
	LastSession int64
	BestAward   string
}

// listPlayers summarizes every SSH user in store. Counts and awards follow
// cfg, the same way the server reads them.
func listPlayers(store *storage.Store, cfg config.Config, logger *log.Logger) ([]playerSummary, error) {
	namespaces, err := store.Namespaces("/")
	if err != nil {
		return nil, err
	}

	var players []playerSummary
	for _, ns := range namespaces {
		user, ok := strings.CutPrefix(ns, "user:")
		if !ok {
			continue
		}
		hist := newHistory(storage.Namespace(store, storage.UserPrefix(user)), cfg, logger)
		rounds := hist.All()
		p := playerSummary{
			User:        user,
			Name:        hist.DisplayName(),
			Rounds:      len(rounds),
			LastSession: hist.LatestSessionID(),
		}
		best := -1
		for _, r := range rounds {
			p.Caught += r.Counts.Total()
			best = max(best, r.Points)
		}
		if best >= 0 {
			p.BestAward = hist.Tiers().For(best).Title
		}
		players = append(players, p)
	}
	return players, nil
}

func runPlayers(_ *cobra.Command, _ []string) {
	logger, closeLog, err := newLogger("sweetcatch", os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening player database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	players, err := listPlayers(store, cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing players: %v\n", err)
		os.Exit(1)
	}

	if len(players) == 0 {
		fmt.Println("No SSH players yet.")
		return
	}

	fmt.Println("SSH players:")
	fmt.Println()
	for _, p := range players {
		name := p.Name
		if name == "" {
			name = "-"
		}
		award := p.BestAward
		if award == "" {
			award = "-"
		}
		fmt.Printf("  %-20s  %-20s  %3d rounds  %4d caught  %s\n", p.User, name, p.Rounds, p.Caught, award)
	}
}
