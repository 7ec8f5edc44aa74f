package input

import (
	tea "charm.land/bubbletea/v2"

	"github.com/Gaurav-Gosain/burrow/internal/app"
)

// ActionHandler is a function that handles a specific action
type ActionHandler func(msg tea.KeyPressMsg, s *app.Session) (*app.Session, tea.Cmd)

// ActionDispatcher maps action names to handler functions
type ActionDispatcher struct {
	handlers map[string]ActionHandler
}

// NewActionDispatcher creates a new action dispatcher with all handlers registered
func NewActionDispatcher() *ActionDispatcher {
	d := &ActionDispatcher{
		handlers: make(map[string]ActionHandler),
	}
	d.registerHandlers()
	return d
}

// registerHandlers registers all action handlers
func (d *ActionDispatcher) registerHandlers() {
	// History
	d.Register("back", handleBack)
	d.Register("forward", handleForward)
	d.Register("goto", handleGoto)
	d.Register("reload", handleReload)

	// Page
	d.Register("redraw", handleRedraw)
	d.Register("copy_url", handleCopyURL)
	d.Register("view_source", handleViewSource)

	// App
	d.Register("help", handleHelp)
	d.Register("quit", handleQuit)
}

// Register adds an action handler
func (d *ActionDispatcher) Register(action string, handler ActionHandler) {
	d.handlers[action] = handler
}

// Dispatch executes the handler for a given action
func (d *ActionDispatcher) Dispatch(action string, msg tea.KeyPressMsg, s *app.Session) (*app.Session, tea.Cmd) {
	if handler, ok := d.handlers[action]; ok {
		return handler(msg, s)
	}
	return s, nil
}

// HasAction checks if an action is registered
func (d *ActionDispatcher) HasAction(action string) bool {
	_, ok := d.handlers[action]
	return ok
}

var globalDispatcher = NewActionDispatcher()

// GetDispatcher returns the global action dispatcher
func GetDispatcher() *ActionDispatcher {
	return globalDispatcher
}

func handleBack(_ tea.KeyPressMsg, s *app.Session) (*app.Session, tea.Cmd) {
	s.Back()
	return s, nil
}

func handleForward(_ tea.KeyPressMsg, s *app.Session) (*app.Session, tea.Cmd) {
	s.Forward()
	return s, nil
}

func handleGoto(_ tea.KeyPressMsg, s *app.Session) (*app.Session, tea.Cmd) {
	return s, s.Goto()
}

func handleReload(_ tea.KeyPressMsg, s *app.Session) (*app.Session, tea.Cmd) {
	return s, s.Reload()
}

func handleRedraw(_ tea.KeyPressMsg, s *app.Session) (*app.Session, tea.Cmd) {
	s.MarkDirty()
	return s, nil
}

func handleCopyURL(_ tea.KeyPressMsg, s *app.Session) (*app.Session, tea.Cmd) {
	return s, s.CopyURL()
}

func handleViewSource(_ tea.KeyPressMsg, s *app.Session) (*app.Session, tea.Cmd) {
	return s, s.ViewSource()
}

func handleHelp(_ tea.KeyPressMsg, s *app.Session) (*app.Session, tea.Cmd) {
	return s, s.ShowHelp()
}

func handleQuit(_ tea.KeyPressMsg, s *app.Session) (*app.Session, tea.Cmd) {
	return s, s.Quit()
}
