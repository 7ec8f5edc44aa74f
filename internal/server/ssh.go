// Package server serves burrow over SSH: every connection gets its own
// browsing session.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"path/filepath"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/wish/v2"
	"charm.land/wish/v2/bubbletea"
	"charm.land/wish/v2/logging"
	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/google/uuid"

	"github.com/Gaurav-Gosain/burrow/internal/app"
	"github.com/Gaurav-Gosain/burrow/internal/config"
	"github.com/Gaurav-Gosain/burrow/internal/gopher"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	Host    string
	Port    string
	KeyPath string // Host key, generated on first use (default: XDG data dir)

	// Config is the browsing configuration every connection starts from.
	Config *config.UserConfig
}

// DefaultKeyPath returns where the host key lives when none is given.
func DefaultKeyPath() (string, error) {
	path, err := xdg.DataFile(filepath.Join("burrow", "ssh_host_key"))
	if err != nil {
		return "", fmt.Errorf("finding host key path: %w", err)
	}
	return path, nil
}

// StartSSHServer runs the SSH server until ctx is cancelled.
func StartSSHServer(ctx context.Context, cfg *SSHServerConfig) error {
	if cfg.Config == nil {
		cfg.Config = config.DefaultConfig()
	}
	keyPath := cfg.KeyPath
	if keyPath == "" {
		var err error
		if keyPath, err = DefaultKeyPath(); err != nil {
			return err
		}
	}

	server, err := wish.NewServer(
		wish.WithAddress(net.JoinHostPort(cfg.Host, cfg.Port)),
		wish.WithHostKeyPath(keyPath),
		wish.WithMiddleware(
			// Bubble Tea middleware for interactive sessions
			bubbletea.Middleware(newTeaHandler(cfg.Config)),
			// Logging middleware for connection tracking
			logging.Middleware(),
		),
	)
	if err != nil {
		return fmt.Errorf("failed to create SSH server: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting SSH server", "addr", server.Addr, "key", keyPath)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("SSH server: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down SSH server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// newTeaHandler returns the handler that builds a session per connection.
func newTeaHandler(cfg *config.UserConfig) bubbletea.Handler {
	keys := config.NewKeybindRegistry(cfg)
	client := gopher.NewClient(gopher.Options{
		TLS:      cfg.TLS,
		Tor:      cfg.Tor,
		TorProxy: cfg.TorProxy,
		Timeout:  cfg.Timeout(),
	})

	return func(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
		pty, _, active := sess.Pty()
		if !active {
			wish.Fatalln(sess, "burrow needs a terminal: connect with ssh -t")
			return nil, nil
		}

		id := uuid.NewString()
		log.Info("session started", "id", id, "user", sess.User(), "remote", sess.RemoteAddr(), "term", pty.Term)

		// Remote users get no downloads and no access to the host desktop:
		// DownloadDir stays empty and Local stays false.
		s := app.NewSession(app.Options{
			Start:     cfg.Start,
			Wide:      cfg.Wide,
			Keys:      keys,
			Transport: client,
			Context:   sess.Context(),
		})
		s.Width, s.Height = pty.Window.Width, pty.Window.Height

		go func() {
			<-sess.Context().Done()
			log.Info("session ended", "id", id)
		}()
		return s, nil
	}
}
