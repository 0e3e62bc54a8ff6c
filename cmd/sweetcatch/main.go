// sweetcatch is a timed catch-the-sweets game for the terminal.
//
// Usage:
//
//	sweetcatch play          - Play in this terminal
//	sweetcatch serve         - Start SSH server for remote play
//	sweetcatch simulate      - Play headless rounds with a bot
//	sweetcatch awards        - Show awards of the latest session
//	sweetcatch history       - List every recorded round
//	sweetcatch name [name]   - Show or set the display name
//	sweetcatch share         - Share the latest award
//	sweetcatch players       - List SSH players in the database
//
// Global flags:
//
//	--db <path>         - Set database path (default: ~/.sweetcatch/sweetcatch.db)
//	--config <path>     - Use a custom game config (YAML or TOML)
//	--pace <preset>     - Spawn pace: relaxed, normal, frantic
//	--seed <value>      - Set RNG seed for reproducible rounds
//	--log-level <level> - debug, info, warn, error
//	--log-file <path>   - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/sweet-catch/internal/config"
	"github.com/vovakirdan/sweet-catch/internal/history"
	"github.com/vovakirdan/sweet-catch/internal/storage"
)

const defaultDBPath = "~/.sweetcatch/sweetcatch.db"

var (
	// Global flags
	flagDBPath   string
	flagConfig   string
	flagPace     string
	flagSeed     int64
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "sweetcatch",
	Short: "Sweet Catch - catch flying sweets before the timer runs out",
	Long: `Sweet Catch is a terminal game of timed rounds. Sweets fly past one at a
time; catch as many as you can in 15 seconds and earn an award for your score.

Available commands:
  play      - Play in this terminal
  serve     - Start SSH server for remote play
  simulate  - Play headless rounds with a bot
  awards    - Show awards of the latest session
  history   - List every recorded round
  name      - Show or set the display name
  share     - Share the latest award
  players   - List SSH players in the database

Examples:
  sweetcatch play
  sweetcatch play --skip-intro --pace frantic
  sweetcatch serve --ssh :2222
  sweetcatch simulate --rounds 5 --catch-rate 0.6 --dry-run
  sweetcatch awards --round 2`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", defaultDBPath, "Path to player database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config (YAML or TOML)")
	rootCmd.PersistentFlags().StringVar(&flagPace, "pace", "", "Spawn pace preset: relaxed, normal, frantic")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(awardsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(nameCmd)
	rootCmd.AddCommand(shareCmd)
	rootCmd.AddCommand(playersCmd)
}

// newLogger builds the process logger. fallback receives logs when no
// --log-file is set. The returned closer releases the log file.
func newLogger(prefix string, fallback io.Writer) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	w, closer := fallback, func() {}
	if flagLogFile != "" {
		path, err := storage.ExpandHome(flagLogFile)
		if err != nil {
			return nil, nil, err
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w, closer = f, func() { f.Close() }
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
	return logger, closer, nil
}

// loadConfig loads the game config and applies the pace preset.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, err
	}
	if flagPace != "" {
		if err := config.ApplyPace(&cfg, config.PacePreset(flagPace)); err != nil {
			return config.Config{}, err
		}
	}
	return cfg, nil
}

// openStore opens the player database. When it cannot be opened the game
// still runs, without persistence.
func openStore(logger *log.Logger) (storage.KV, func()) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open player database, progress will not be saved", "path", flagDBPath, "error", err)
		return storage.Nop{}, func() {}
	}
	return store, func() { store.Close() }
}

func newHistory(kv storage.KV, cfg config.Config, logger *log.Logger) *history.Store {
	return history.New(kv,
		history.WithKinds(cfg.CatchKinds()),
		history.WithTiers(cfg.AwardTiers()),
		history.WithLogger(logger),
	)
}

// setup is the common prelude of the plain commands: stderr logger,
// config and history on the player database.
func setup() (config.Config, *history.Store, *log.Logger, func()) {
	logger, closeLog, err := newLogger("sweetcatch", os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg, err := loadConfig()
	if err != nil {
		closeLog()
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	kv, closeStore := openStore(logger)
	return cfg, newHistory(kv, cfg, logger), logger, func() {
		closeStore()
		closeLog()
	}
}
