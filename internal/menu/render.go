package menu

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/Gaurav-Gosain/burrow/internal/gopher"
	"github.com/Gaurav-Gosain/burrow/internal/theme"
	"github.com/Gaurav-Gosain/burrow/internal/view"
)

// Render draws the visible window followed by the status line holding the
// input buffer. The result always has exactly rows lines.
func (m *Menu) Render() string {
	rows := m.bodyRows()
	indent := strings.Repeat(" ", m.Indent())

	var b strings.Builder
	for i := 0; i < rows; i++ {
		if n := m.scroll + i; n < len(m.lines) {
			b.WriteString(m.clip(indent + m.renderLine(m.lines[n])))
		}
		b.WriteByte('\n')
	}
	b.WriteString(m.clip(m.input))
	return b.String()
}

func (m *Menu) renderLine(l Line) string {
	var b strings.Builder
	if l.Type == gopher.Info {
		b.WriteString("      ")
	} else {
		if l.Link-1 == m.link {
			b.WriteString(theme.Cursor().Render("*"))
		} else {
			b.WriteByte(' ')
		}
		b.WriteByte(' ')
		b.WriteString(theme.LinkNumber().Render(fmt.Sprintf("%2d.", l.Link)))
		b.WriteByte(' ')
	}

	name := l.Name
	if ansi.StringWidth(name) > view.MaxCols {
		name = ansi.Truncate(name, view.MaxCols, "") + "..."
	}
	b.WriteString(theme.ForType(l.Type).Render(name))
	return b.String()
}

// clip cuts a line at the terminal width so it never wraps.
func (m *Menu) clip(s string) string {
	if m.cols <= 0 {
		return s
	}
	return ansi.Truncate(s, m.cols, "")
}
