package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/google/uuid"

	"github.com/vovakirdan/sweet-catch/internal/config"
	"github.com/vovakirdan/sweet-catch/internal/core"
	"github.com/vovakirdan/sweet-catch/internal/history"
	"github.com/vovakirdan/sweet-catch/internal/router"
	"github.com/vovakirdan/sweet-catch/internal/share"
	"github.com/vovakirdan/sweet-catch/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.sweetcatch/host_key.
	HostKeyPath string

	// DBPath is the path to the shared player database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// Config is the game configuration served to every player.
	Config config.Config

	// Start is the first route of every session.
	Start router.Route

	// Logger receives server events. Defaults to stderr.
	Logger *log.Logger
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.sweetcatch/sweetcatch.db",
		IdleTimeout: 30 * time.Minute,
		Config:      config.DefaultConfig(),
		Start:       router.Loader,
	}
}

type connIDKey struct{}

// SSHServer serves the game over SSH. Each SSH user gets their own
// namespace in the shared database.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  storage.KV
	closer func() error
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "sweetcatch-ssh",
		})
	}
	if cfg.Config.Round.LevelDurationSec == 0 {
		cfg.Config = config.DefaultConfig()
	}

	srv := &SSHServer{
		config: cfg,
		store:  storage.Nop{},
		closer: func() error { return nil },
		logger: logger,
	}

	// Continue without persistence if the database cannot be opened
	if db, err := storage.Open(cfg.DBPath); err != nil {
		logger.Warn("could not open player database", "error", err)
	} else {
		srv.store = db
		srv.closer = db.Close
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".sweetcatch", "host_key")
	}

	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	// Middlewares run last to first: logging wraps the program.
	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		srv.closer() //nolint:errcheck // already failing
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// playerDeps builds the per-connection dependencies for an SSH user.
func (s *SSHServer) playerDeps(user, connID string, width, height int) Deps {
	cfg := s.config.Config
	logger := s.logger.With("user", user, "conn", connID)

	hist := history.New(
		storage.Namespace(s.store, storage.UserPrefix(user)),
		history.WithKinds(cfg.CatchKinds()),
		history.WithTiers(cfg.AwardTiers()),
		history.WithLogger(logger),
	)

	return Deps{
		Config:  cfg,
		History: hist,
		// The server's clipboard is not the player's
		Sharer: share.Nop{},
		Logger: logger,
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: core.DefaultConfig().TickRate,
			Seed:     time.Now().UnixNano(),
		},
	}
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	connID, _ := sshSession.Context().Value(connIDKey{}).(string)
	deps := s.playerDeps(sshSession.User(), connID, pty.Window.Width, pty.Window.Height)

	return NewApp(deps, s.config.Start), []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// loggingMiddleware tags the connection with an id and logs its lifetime.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		connID := uuid.NewString()
		sshSession.Context().SetValue(connIDKey{}, connID)

		start := time.Now()
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
			"conn", connID,
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"conn", connID,
			"duration", time.Since(start).Round(time.Second),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until ctx is done or the
// process is interrupted.
func (s *SSHServer) ListenAndServe(ctx context.Context) error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err, ok := <-errc:
		if ok {
			s.logger.Error("server error", "error", err)
			s.closer() //nolint:errcheck // reporting the server error
			return err
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server and closes the database.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.server.Shutdown(ctx)
	if cerr := s.closer(); err == nil {
		err = cerr
	}
	return err
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
