package app

import (
	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/log"

	"github.com/Gaurav-Gosain/burrow/internal/config"
	"github.com/Gaurav-Gosain/burrow/internal/theme"
)

// InputHandler is a function type that handles input messages.
// This allows the Update method to delegate to the input package without creating a circular dependency.
type InputHandler func(msg tea.Msg, s *Session) (tea.Model, tea.Cmd)

// inputHandler is the registered input handler function.
// This will be set by the main package to break the circular dependency.
var inputHandler InputHandler

// SetInputHandler registers the input handler function.
// This must be called during initialization before the Update loop runs.
func SetInputHandler(handler InputHandler) {
	inputHandler = handler
}

// Init opens the start page and starts watching the config file.
func (s *Session) Init() tea.Cmd {
	var cmds []tea.Cmd
	if s.start != "" {
		cmds = append(cmds, s.Open(s.start))
	}
	if s.configPath != "" {
		cmds = append(cmds, config.WatchConfigCmd(s.configPath))
	}
	return tea.Batch(cmds...)
}

// Update handles all incoming messages and updates the session state.
func (s *Session) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg, tea.PasteMsg:
		if inputHandler != nil {
			return inputHandler(msg, s)
		}
		return s, nil

	case tea.WindowSizeMsg:
		if msg.Width != s.Width || msg.Height != s.Height {
			s.Width, s.Height = msg.Width, msg.Height
			s.prompt.SetWidth(max(1, s.Width-len(s.prompt.Prompt)-1))
			s.dirty = true
		}
		return s, nil

	case PageLoadedMsg:
		return s, s.handleLoaded(msg)

	case FetchFailedMsg:
		return s, s.handleFailed(msg)

	case DownloadedMsg:
		return s, s.handleDownloaded(msg)

	case spinner.TickMsg:
		if s.loading == "" {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case config.ConfigChangedMsg:
		s.reloadConfig(msg.Path)
		return s, config.WatchConfigCmd(s.configPath)
	}

	if s.Prompting() {
		return s, s.UpdatePrompt(msg)
	}
	return s, nil
}

// reloadConfig applies key bindings, theme and wide mode from a changed
// config file. A file that fails to load leaves the session untouched.
func (s *Session) reloadConfig(path string) {
	cfg, err := config.LoadFile(path)
	if err != nil {
		log.Warn("ignoring config change", "err", err)
		s.setError("config: " + err.Error())
		s.dirty = true
		return
	}

	s.Keys = config.NewKeybindRegistry(cfg)
	s.Wide = cfg.Wide
	if err := theme.Initialize(cfg.Theme); err != nil {
		log.Warn("theme", "err", err)
	}
	s.setStatus("config reloaded")
	s.dirty = true
	log.Info("config reloaded", "path", path)
}
