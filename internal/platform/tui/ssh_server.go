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

	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

const shutdownGrace = 10 * time.Second

// SSHServerConfig configures the multi-user SSH front end.
type SSHServerConfig struct {
	Address     string // listen address, host:port
	HostKeyPath string // empty means ~/.match3/host_key, created on first start
	DBPath      string // shared score database
	IdleTimeout time.Duration
	TickRate    int // simulation ticks per second for every session
	LogLevel    log.Level
}

// DefaultSSHServerConfig listens on :23234 and keeps data under ~/.match3.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.match3/scores.db",
		IdleTimeout: 30 * time.Minute,
		TickRate:    30,
		LogLevel:    log.InfoLevel,
	}
}

// SSHServer runs one SessionModel per SSH connection. All sessions share
// a single score store.
type SSHServer struct {
	cfg    SSHServerConfig
	ssh    *ssh.Server
	store  *storage.Store
	logger *log.Logger
}

// NewSSHServer prepares the host key directory, opens the score store and
// builds the wish server. A store that cannot be opened only disables
// score saving.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          "match3-ssh",
		Level:           cfg.LogLevel,
		ReportTimestamp: true,
	})

	keyPath, err := resolveHostKey(cfg.HostKeyPath)
	if err != nil {
		return nil, err
	}

	s := &SSHServer{cfg: cfg, logger: logger}
	if s.store, err = storage.Open(cfg.DBPath); err != nil {
		logger.Warn("scores will not be saved", "db", cfg.DBPath, "error", err)
		s.store = nil
	}

	s.ssh, err = wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(keyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(s.newSession),
			s.logSession,
		),
	)
	if err != nil {
		s.closeStore()
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}
	return s, nil
}

// resolveHostKey returns the host key path and makes sure its directory
// exists. wish generates the key itself when the file is missing.
func resolveHostKey(path string) (string, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot locate home directory for host key: %w", err)
		}
		path = filepath.Join(home, ".match3", "host_key")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", fmt.Errorf("cannot create host key directory: %w", err)
	}
	return path, nil
}

// newSession builds the Bubble Tea model for one connection. Connections
// without a PTY are refused.
func (s *SSHServer) newSession(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sess.Pty()
	if !ok {
		s.logger.Warn("refusing session without PTY", "user", sess.User())
		return nil, nil
	}

	rc := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.cfg.TickRate,
		Seed:     time.Now().UnixNano(),
	}
	model := NewSessionModel(s.store, rc, s.logger.With("user", sess.User()))
	return model, []tea.ProgramOption{tea.WithAltScreen()}
}

// logSession records when each connection opens and closes.
func (s *SSHServer) logSession(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		l := s.logger.With("user", sess.User(), "remote", sess.RemoteAddr().String())
		opened := time.Now()
		l.Info("session opened")
		next(sess)
		l.Info("session closed", "duration", time.Since(opened).Round(time.Second))
	}
}

// ListenAndServe serves until SIGINT or SIGTERM, then shuts down.
func (s *SSHServer) ListenAndServe() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return s.Serve(ctx)
}

// Serve accepts connections until ctx is done or the listener fails.
// Either way the server and the score store are closed before it returns.
func (s *SSHServer) Serve(ctx context.Context) error {
	s.logger.Info("listening", "address", s.cfg.Address)

	failed := make(chan error, 1)
	go func() {
		err := s.ssh.ListenAndServe()
		if errors.Is(err, ssh.ErrServerClosed) {
			err = nil
		}
		failed <- err
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutting down")
		return s.Shutdown()
	case err := <-failed:
		if err != nil {
			s.logger.Error("listener stopped", "error", err)
		}
		return errors.Join(err, s.Shutdown())
	}
}

// Shutdown waits up to shutdownGrace for open sessions, then closes the
// score store.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	err := s.ssh.Shutdown(ctx)
	if errors.Is(err, ssh.ErrServerClosed) {
		err = nil
	}
	return errors.Join(err, s.closeStore())
}

func (s *SSHServer) closeStore() error {
	if s.store == nil {
		return nil
	}
	err := s.store.Close()
	s.store = nil
	return err
}

// Addr returns the configured listen address.
func (s *SSHServer) Addr() string {
	return s.cfg.Address
}
