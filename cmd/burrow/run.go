package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/log"

	"github.com/Gaurav-Gosain/burrow/internal/app"
	"github.com/Gaurav-Gosain/burrow/internal/config"
	"github.com/Gaurav-Gosain/burrow/internal/gopher"
	"github.com/Gaurav-Gosain/burrow/internal/input"
	"github.com/Gaurav-Gosain/burrow/internal/server"
	"github.com/Gaurav-Gosain/burrow/internal/terminal"
	"github.com/Gaurav-Gosain/burrow/internal/theme"
)

// printWidth is used for print mode when stdout has no size.
const printWidth = 80

func newClient(cfg *config.UserConfig) *gopher.Client {
	return gopher.NewClient(gopher.Options{
		TLS:      cfg.TLS,
		Tor:      cfg.Tor,
		TorProxy: cfg.TorProxy,
		Timeout:  cfg.Timeout(),
	})
}

func initTheme(name string) {
	if err := theme.Initialize(name); err != nil {
		log.Warn("theme not found", "err", err)
	}
}

// setupLogging points the default logger at the log file, since the UI owns
// the terminal. The returned func closes the file.
func setupLogging(debug bool) (func(), error) {
	if debug {
		log.SetLevel(log.DebugLevel)
	}
	logPath, err := config.GetLogPath()
	if err != nil {
		return nil, err
	}
	f, err := os.OpenFile(logPath, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("could not open log file: %w", err)
	}
	log.SetOutput(f)
	log.SetReportTimestamp(true)
	return func() { _ = f.Close() }, nil
}

func runLocal(r *resolved, debug bool) error {
	closeLog, err := setupLogging(debug)
	if err != nil {
		return err
	}
	defer closeLog()

	width, height, err := terminal.Size(os.Stdout)
	if err != nil {
		return fmt.Errorf("can't get terminal size: %w", err)
	}

	initTheme(r.cfg.Theme)

	app.SetInputHandler(input.HandleInput)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	session := app.NewSession(app.Options{
		Start:       r.cfg.Start,
		Wide:        r.cfg.Wide,
		Keys:        config.NewKeybindRegistry(r.cfg),
		Transport:   newClient(r.cfg),
		ConfigPath:  r.configPath,
		DownloadDir: config.GetDownloadDir(),
		Local:       true,
		Context:     ctx,
	})
	session.Width, session.Height = width, height
	log.Info("starting", "url", r.cfg.Start, "config", r.configPath, "size", fmt.Sprintf("%dx%d", width, height))

	p := tea.NewProgram(
		session,
		tea.WithContext(ctx),
		tea.WithoutSignalHandler(),
	)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		<-sigChan
		p.Send(tea.QuitMsg{})
	}()

	_, err = p.Run()
	terminal.ResetTerminal(os.Stdout)

	if err != nil {
		return fmt.Errorf("program error: %w", err)
	}
	return nil
}

// runPrint fetches the start page and writes it once, rendered, to w.
// Colours are downsampled to what w supports.
func runPrint(ctx context.Context, r *resolved, w io.Writer) error {
	initTheme(r.cfg.Theme)

	url := gopher.Normalize(r.cfg.Start)
	typ, body, err := newClient(r.cfg).FetchURL(ctx, url)
	if err != nil {
		return err
	}
	if typ.IsDownload() {
		_, err := io.WriteString(w, body)
		return err
	}

	width := printWidth
	if f, ok := w.(*os.File); ok {
		if cols, _, err := terminal.Size(f); err == nil {
			width = cols
		}
	}

	out := colorprofile.NewWriter(w, os.Environ())
	_, err = io.WriteString(out, app.RenderAll(app.NewPage(url, typ, body, r.cfg.Wide), width))
	return err
}

// runRaw writes the response body unchanged.
func runRaw(ctx context.Context, r *resolved, w io.Writer) error {
	_, body, err := newClient(r.cfg).FetchURL(ctx, gopher.Normalize(r.cfg.Start))
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, body)
	return err
}

func runSSHServer(r *resolved, host, port, keyPath string, debug bool) error {
	if debug {
		log.SetLevel(log.DebugLevel)
	}
	initTheme(r.cfg.Theme)

	app.SetInputHandler(input.HandleInput)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg := &server.SSHServerConfig{
		Host:    host,
		Port:    port,
		KeyPath: keyPath,
		Config:  r.cfg,
	}
	if err := server.StartSSHServer(ctx, cfg); err != nil {
		return fmt.Errorf("SSH server error: %w", err)
	}
	return nil
}
