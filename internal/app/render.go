package app

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/Gaurav-Gosain/burrow/internal/theme"
)

// View renders the current page with the status row on the last line.
// The page itself is only re-rendered when the session is dirty.
func (s *Session) View() tea.View {
	if !s.running {
		return tea.NewView("")
	}

	v := tea.NewView(s.Frame())
	v.AltScreen = true
	v.WindowTitle = "burrow"
	if page := s.Current(); page != nil {
		v.WindowTitle = "burrow: " + page.URL()
	}
	return v
}

// Frame returns the full screen contents as a string.
func (s *Session) Frame() string {
	if s.dirty || s.frame == "" {
		s.frame = s.renderPage()
		s.dirty = false
	}

	status := s.statusLine()
	if status == "" {
		return s.frame
	}
	lines := strings.Split(s.frame, "\n")
	lines[len(lines)-1] = ansi.Truncate(status, s.Width, "")
	return strings.Join(lines, "\n")
}

func (s *Session) renderPage() string {
	page := s.Current()
	if page == nil {
		return strings.Repeat("\n", max(0, s.Height-1))
	}
	page.SetSize(s.Width, s.Height)
	return page.Render()
}

// statusLine returns what overrides the page's own last line, if anything.
func (s *Session) statusLine() string {
	switch {
	case s.Prompting():
		return s.prompt.View()
	case s.loading != "":
		return s.spinner.View() + " " + theme.Status().Render("loading "+s.loading)
	case s.status != "" && s.statusErr:
		return theme.StatusError().Render(s.status)
	case s.status != "":
		return theme.Status().Render(s.status)
	}
	return ""
}
