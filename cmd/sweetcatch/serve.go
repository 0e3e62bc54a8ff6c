package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/sweet-catch/internal/platform/tui"
	"github.com/vovakirdan/sweet-catch/internal/router"
)

var (
	flagSSHAddr      string
	flagHostKey      string
	flagIdleTimeout  int
	flagSSHSkipIntro bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Sweet Catch SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own game. Rounds, awards and the display name
are stored per SSH user in the server's database, so players keep their
progress across connections.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.sweetcatch/host_key

Examples:
  sweetcatch serve                           # Listen on :23234 with auto-generated key
  sweetcatch serve --ssh :2222               # Listen on port 2222
  sweetcatch serve --host-key ./my_host_key  # Use specific host key
  sweetcatch serve --db ./players.db         # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().BoolVar(&flagSSHSkipIntro, "skip-intro", false, "Start every session at the home menu")
}

func runServe(_ *cobra.Command, _ []string) {
	logger, closeLog, err := newLogger("sweetcatch-ssh", os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	gameCfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.DBPath = flagDBPath
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.Config = gameCfg
	cfg.Logger = logger
	if flagSSHSkipIntro {
		cfg.Start = router.Home
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting Sweet Catch SSH server on %s\n", cfg.Address)
	fmt.Println("Connect with: ssh localhost -p 23234")
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
