// Package input routes terminal events to the browsing session: prompt
// editing, the current page, then the global key bindings.
package input

import (
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/log"

	"github.com/Gaurav-Gosain/burrow/internal/app"
	"github.com/Gaurav-Gosain/burrow/internal/view"
)

// HandleInput is the main entry point for input handling.
// It is registered with app.SetInputHandler.
func HandleInput(msg tea.Msg, s *app.Session) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		return handleKey(msg, s)
	case tea.PasteMsg:
		if s.Prompting() {
			return s, s.UpdatePrompt(msg)
		}
	}
	return s, nil
}

func handleKey(msg tea.KeyPressMsg, s *app.Session) (tea.Model, tea.Cmd) {
	if s.Prompting() {
		return handlePromptKey(msg, s)
	}

	k := KeyFromMsg(msg)

	// Only one fetch runs at a time; until it lands the page stays put.
	if s.Loading() != "" {
		switch {
		case k == view.Esc:
			s.CancelLoading()
		case s.Keys.GetAction(msg.String()) == "quit":
			return s, s.Quit()
		}
		return s, nil
	}

	page := s.Current()
	if page == nil {
		return dispatchGlobal(msg, k, s)
	}

	a := page.ProcessInput(k)
	log.Debug("key", "key", k.String(), "action", a.Kind)
	switch a.Kind {
	case view.Unknown:
		return dispatchGlobal(msg, k, s)
	case view.Keypress:
		return dispatchGlobal(msg, a.Key, s)
	}
	return s, s.Apply(a)
}

// dispatchGlobal looks k up in the session's key bindings.
func dispatchGlobal(msg tea.KeyPressMsg, k view.Key, s *app.Session) (tea.Model, tea.Cmd) {
	action := s.Keys.GetAction(k.String())
	if action == "" && k.Kind == view.KeyUnknown {
		// Combos pages don't model can still be bound, e.g. "alt+left".
		action = s.Keys.GetAction(msg.String())
	}
	if action == "" {
		return s, nil
	}
	return GetDispatcher().Dispatch(action, msg, s)
}

func handlePromptKey(msg tea.KeyPressMsg, s *app.Session) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		return s, s.SubmitPrompt()
	case "esc", "ctrl+c":
		s.CancelPrompt()
		return s, nil
	}
	return s, s.UpdatePrompt(msg)
}
