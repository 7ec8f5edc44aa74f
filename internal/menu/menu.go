// Package menu parses Gopher menus and implements the scrolling,
// link-selection view used to browse them.
package menu

import (
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/Gaurav-Gosain/burrow/internal/gopher"
	"github.com/Gaurav-Gosain/burrow/internal/view"
)

// Line is one entry of a menu.
type Line struct {
	Name string
	URL  string
	Type gopher.Type
	// Link is the 1-based link number, or 0 for Info lines.
	Link int
}

// Menu is a parsed Gopher menu along with its navigation state.
type Menu struct {
	url     string
	lines   []Line
	links   []int // indices into lines
	longest int
	raw     string

	input  string
	link   int // index into links
	scroll int
	cols   int
	rows   int
	wide   bool
}

var _ view.View = (*Menu)(nil)

// Parse builds a Menu from a raw response body. Lines with an unknown
// item type are skipped.
func Parse(url, raw string) *Menu {
	m := &Menu{url: url, raw: raw, cols: 80, rows: 24}

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		typ, ok := gopher.TypeForChar(line[0])
		if !ok {
			continue
		}

		parts := strings.Split(line, "\t")
		for len(parts) < 4 {
			parts = append(parts, "")
		}
		name, selector, host, port := parts[0][1:], parts[1], parts[2], parts[3]

		l := Line{Name: name, Type: typ, URL: LinkURL(line[0], selector, host, port)}
		if typ.IsLink() {
			l.Link = len(m.links) + 1
			m.links = append(m.links, len(m.lines))
		}
		if w := ansi.StringWidth(name); w > m.longest {
			m.longest = w
		}
		m.lines = append(m.lines, l)
	}
	return m
}

// LinkURL resolves the fields of a menu line into an absolute URL. A
// selector of the form "URL:<url>" points outside Gopher space and is
// returned as is.
func LinkURL(typeChar byte, selector, host, port string) string {
	if rest, ok := strings.CutPrefix(selector, "URL:"); ok {
		return rest
	}

	port = strings.TrimRight(port, "\r")
	if strings.Contains(host, ":") {
		host = "[" + host + "]"
	}

	var b strings.Builder
	b.WriteString("gopher://")
	b.WriteString(host)
	if port != "" && port != gopher.DefaultPort {
		b.WriteByte(':')
		b.WriteString(port)
	}
	b.WriteByte('/')
	b.WriteByte(typeChar)
	if selector == "" {
		b.WriteByte('/')
	}
	b.WriteString(selector)
	return b.String()
}

// URL returns the address the menu was fetched from.
func (m *Menu) URL() string { return m.url }

// Raw returns the unparsed response body.
func (m *Menu) Raw() string { return m.raw }

// SetSize records the terminal size used for layout and visibility.
func (m *Menu) SetSize(cols, rows int) {
	m.cols, m.rows = cols, rows
}

// SetWide turns centering off (true) or on (false).
func (m *Menu) SetWide(wide bool) { m.wide = wide }

// Wide reports whether centering is off.
func (m *Menu) Wide() bool { return m.wide }

// Lines returns the parsed lines.
func (m *Menu) Lines() []Line { return m.lines }

// LinkCount returns the number of link-bearing lines.
func (m *Menu) LinkCount() int { return len(m.links) }

// Link returns the line for link index i (0-based).
func (m *Menu) Link(i int) (Line, bool) {
	if i < 0 || i >= len(m.links) {
		return Line{}, false
	}
	return m.lines[m.links[i]], true
}

// LineOf returns the line index that link i sits on, or -1.
func (m *Menu) LineOf(i int) int {
	if i < 0 || i >= len(m.links) {
		return -1
	}
	return m.links[i]
}

// Selected returns the 0-based index of the selected link.
func (m *Menu) Selected() int { return m.link }

// Scroll returns the index of the first visible line.
func (m *Menu) Scroll() int { return m.scroll }

// Input returns the pending jump/search buffer.
func (m *Menu) Input() string { return m.input }

// Longest returns the widest item name.
func (m *Menu) Longest() int { return m.longest }

// Indent returns the number of columns each line is shifted right to
// center the menu, or 0 in wide mode.
func (m *Menu) Indent() int {
	if m.wide {
		return 0
	}
	longest := min(m.longest, view.MaxCols)
	if longest > m.cols {
		return 0
	}
	if left := (m.cols - longest) / 2; left > 6 {
		return left - 6
	}
	return 0
}

// bodyRows is the number of lines in the visible window. The last
// terminal row is kept for the status line.
func (m *Menu) bodyRows() int {
	return max(1, m.rows-1)
}

type visibility int

const (
	visible visibility = iota
	above
	below
)

func (m *Menu) visibility(i int) (visibility, bool) {
	if i < 0 || i >= len(m.links) {
		return visible, false
	}
	switch pos := m.links[i]; {
	case pos < m.scroll:
		return above, true
	case pos >= m.scroll+m.bodyRows():
		return below, true
	}
	return visible, true
}

// IsVisible reports whether link i is inside the visible window.
func (m *Menu) IsVisible(i int) bool {
	v, ok := m.visibility(i)
	return ok && v == visible
}
