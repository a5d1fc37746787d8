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

	"github.com/vovakirdan/star-dodge/internal/broadcast"
	"github.com/vovakirdan/star-dodge/internal/config"
	"github.com/vovakirdan/star-dodge/internal/core"
	"github.com/vovakirdan/star-dodge/internal/registry"
	"github.com/vovakirdan/star-dodge/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.stardodge/host_key.
	HostKeyPath string

	// DBPath is the path to the scores database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// Skin is the ship the menu starts on when the SSH command names none.
	Skin string

	// ConfigPath is the balance YAML; empty searches the default locations.
	ConfigPath string

	// Variant overrides the variant of every skin when set.
	Variant string

	// Difficulty is the preset the menu starts on.
	Difficulty string

	TickRate int

	// Spectators receives the events of every session when set.
	Spectators *broadcast.Hub

	// Logger is used for server and session logs. Nil logs to stderr.
	Logger *log.Logger
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.stardodge/scores.db",
		IdleTimeout: 30 * time.Minute,
		Skin:        "starship",
		TickRate:    60,
	}
}

// SSHServer wraps a Wish SSH server giving every session its own menu and
// games.
type SSHServer struct {
	config     SSHServerConfig
	difficulty config.DifficultyPreset
	server     *ssh.Server
	store      *storage.Store
	logger     *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
// The skin and balance presets are validated before the database is opened.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "stardodge-ssh",
		})
	}

	skin, err := registry.Create(cfg.Skin)
	if err != nil {
		return nil, fmt.Errorf("unknown skin %q", cfg.Skin)
	}
	difficulty, err := config.ParseDifficulty(cfg.Difficulty)
	if err != nil {
		return nil, err
	}

	srv := &SSHServer{
		config:     cfg,
		difficulty: difficulty,
		logger:     logger,
	}
	if _, err := srv.resolve(skin, difficulty); err != nil {
		return nil, err
	}

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		store = nil
	}
	srv.store = store

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".stardodge", "host_key")
	}

	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			srv.sessionEndMiddleware,
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// sessionKey stores the SessionModel in the SSH context.
type sessionKey struct{}

// sessionSkin returns the ship named by the SSH command, falling back to
// the server default.
func (s *SSHServer) sessionSkin(cmd []string) string {
	if len(cmd) > 0 && registry.Exists(cmd[0]) {
		return cmd[0]
	}
	return s.config.Skin
}

// resolve returns the balance for a skin: the configured variant, else the
// file's or the skin's own, then the difficulty.
func (s *SSHServer) resolve(skin registry.Skin, difficulty config.DifficultyPreset) (config.GameConfig, error) {
	return config.Resolve(s.config.ConfigPath, config.Presets{
		Variant:     s.config.Variant,
		SkinVariant: skin.Variant(),
		Difficulty:  string(difficulty),
	})
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	opts := SessionOptions{
		Runtime: core.RuntimeConfig{
			ScreenW:  pty.Window.Width,
			ScreenH:  pty.Window.Height,
			TickRate: s.config.TickRate,
		},
		Player:     sshSession.User(),
		Store:      s.store,
		Skin:       s.sessionSkin(sshSession.Command()),
		Difficulty: s.difficulty,
		Resolve:    s.resolve,
		Logger:     s.logger.With("user", sshSession.User()),
	}
	if s.config.Spectators != nil {
		feed := s.config.Spectators.Feed(fmt.Sprintf("%s@%s", sshSession.User(), sshSession.RemoteAddr()))
		opts.Sinks = feed
		opts.Hooks = feed
	}

	model := NewSessionModel(opts)
	sshSession.Context().SetValue(sessionKey{}, model)

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}
}

// sessionEndMiddleware ends the session's game once its program has exited.
// The program quits when the session context is done, so a dropped
// connection stops the machine and notifies spectators.
func (s *SSHServer) sessionEndMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		if model, ok := sshSession.Context().Value(sessionKey{}).(SessionModel); ok {
			model.End()
			s.logger.Debug("session game stopped", "user", sshSession.User())
		}
		next(sshSession)
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
			"command", sshSession.Command(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address, "skin", s.config.Skin)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if s.store != nil {
		s.store.Close()
	}
	if s.config.Spectators != nil {
		s.config.Spectators.Close()
	}

	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
