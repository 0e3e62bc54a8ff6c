package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/sweet-catch/internal/core"
	"github.com/vovakirdan/sweet-catch/internal/platform/tui"
	"github.com/vovakirdan/sweet-catch/internal/router"
	"github.com/vovakirdan/sweet-catch/internal/share"
)

const defaultTUILogFile = "~/.sweetcatch/sweetcatch.log"

var (
	flagSkipIntro bool
	flagMono      bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start the game in this terminal.

Controls:
  Space/Enter  - Catch the flying sweet
  R            - Play again (after a round)
  P            - Open your awards (after a round)
  S            - Share
  Esc/B        - Back
  Q/Ctrl+C     - Quit

Pace options:
  relaxed  - Sweets spawn 40% slower
  normal   - Default pace
  frantic  - Sweets spawn 40% faster

Logs go to ~/.sweetcatch/sweetcatch.log unless --log-file is set.

Examples:
  sweetcatch play
  sweetcatch play --skip-intro
  sweetcatch play --pace frantic
  sweetcatch play --config ./my-sweets.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagSkipIntro, "skip-intro", false, "Start at the home menu")
	playCmd.Flags().BoolVar(&flagMono, "mono", false, "Use a colorless theme")
}

func runPlay(cmd *cobra.Command, _ []string) {
	// The alt screen owns the terminal, so logs go to a file
	if flagLogFile == "" {
		flagLogFile = defaultTUILogFile
	}
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

	kv, closeStore := openStore(logger)
	defer closeStore()

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	var sharer share.Sharer = share.Nop{}
	if clip := share.NewClipboard(); clip.Available() {
		sharer = clip
	} else {
		logger.Debug("clipboard unavailable, sharing disabled")
	}

	deps := tui.Deps{
		Config:  cfg,
		History: newHistory(kv, cfg, logger),
		Sharer:  sharer,
		Logger:  logger,
		Runtime: core.DefaultConfig().WithSize(width, height),
	}
	deps.Runtime.Seed = seed
	if flagMono {
		deps.Theme = tui.MonochromeTheme()
	}

	start := router.Loader
	if flagSkipIntro {
		start = router.Home
	}

	logger.Info("starting", "start", start, "seed", seed)
	if err := tui.Run(deps, start); err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}
}
