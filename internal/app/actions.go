package app

import (
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/log"

	"github.com/Gaurav-Gosain/burrow/internal/text"
	"github.com/Gaurav-Gosain/burrow/internal/view"
)

// Apply carries out an action returned by a page. Unknown and Keypress
// are left to the caller, which owns the global key bindings.
func (s *Session) Apply(a view.Action) tea.Cmd {
	switch a.Kind {
	case view.Redraw:
		s.dirty = true
	case view.Open:
		return s.Open(a.URL)
	case view.Back:
		s.Back()
	case view.Forward:
		s.Forward()
	case view.Quit:
		return s.Quit()
	case view.Clipboard:
		return s.Copy(a.Data)
	case view.Prompt:
		return s.startPrompt(promptSearch, a.Prompt, a.URL)
	}
	return nil
}

// Quit stops the session.
func (s *Session) Quit() tea.Cmd {
	s.stopLoading()
	s.running = false
	return tea.Quit
}

// Copy puts data on the clipboard. OSC 52 reaches the user's terminal
// even over SSH; local sessions also try the system clipboard.
func (s *Session) Copy(data string) tea.Cmd {
	if s.local {
		if err := copyClipboard(data); err != nil {
			log.Debug("system clipboard unavailable", "err", err)
		}
	}
	s.setStatus("copied " + data)
	s.dirty = true
	return tea.SetClipboard(data)
}

// CopyURL copies the current page's URL.
func (s *Session) CopyURL() tea.Cmd {
	page := s.Current()
	if page == nil {
		return nil
	}
	return s.Copy(page.URL())
}

// Goto asks for a URL to open.
func (s *Session) Goto() tea.Cmd {
	url := ""
	if page := s.Current(); page != nil {
		url = page.URL()
	}
	return s.startPrompt(promptGoto, "url", url)
}

// ViewSource opens the current page's raw response as text.
func (s *Session) ViewSource() tea.Cmd {
	page := s.Current()
	if page == nil {
		return nil
	}
	s.AddPage(text.NewSource(page.URL(), page.Raw()))
	return nil
}

// ShowHelp opens the key binding reference as a page.
func (s *Session) ShowHelp() tea.Cmd {
	s.AddPage(s.helpPage())
	return nil
}

func (s *Session) helpPage() *text.Document {
	help := text.New(helpURL, helpText(s.Keys))
	help.SetWide(s.Wide)
	return help
}

// startPrompt focuses the status row input. For searches url is the
// Search item; for goto it seeds the input.
func (s *Session) startPrompt(kind promptKind, message, url string) tea.Cmd {
	s.prompting = kind
	s.prompt.Reset()
	s.prompt.Prompt = message + "> "
	s.prompt.SetWidth(max(1, s.Width-len(s.prompt.Prompt)-1))
	s.promptURL = ""
	switch kind {
	case promptSearch:
		s.promptURL = url
	case promptGoto:
		s.prompt.SetValue(url)
		s.prompt.CursorEnd()
	}
	s.clearStatus()
	s.dirty = true
	return s.prompt.Focus()
}

// SubmitPrompt acts on the line typed at the prompt.
func (s *Session) SubmitPrompt() tea.Cmd {
	kind, value, url := s.prompting, s.prompt.Value(), s.promptURL
	s.endPrompt()

	switch kind {
	case promptSearch:
		return s.Open(url + "?" + value)
	case promptGoto:
		if value == "" {
			return nil
		}
		return s.Open(value)
	}
	return nil
}

// CancelPrompt closes the prompt without acting.
func (s *Session) CancelPrompt() {
	s.endPrompt()
}

// UpdatePrompt forwards a message to the prompt input.
func (s *Session) UpdatePrompt(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	s.prompt, cmd = s.prompt.Update(msg)
	return cmd
}

// PromptValue returns the text typed so far.
func (s *Session) PromptValue() string { return s.prompt.Value() }

func (s *Session) endPrompt() {
	s.prompting = promptNone
	s.promptURL = ""
	s.prompt.Blur()
	s.prompt.Reset()
	s.dirty = true
}
