// Package text implements the scrolling view used for plain text
// documents and for fetch errors.
package text

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/Gaurav-Gosain/burrow/internal/theme"
	"github.com/Gaurav-Gosain/burrow/internal/view"
)

const tabWidth = 4

// Document is a plain text page.
type Document struct {
	url     string
	raw     string
	lines   []string
	longest int
	failed  bool
	source  bool

	scroll int
	cols   int
	rows   int
	wide   bool
}

var _ view.View = (*Document)(nil)

// New builds a Document from a text response. Carriage returns and the
// lone "." terminator are removed and dot-stuffed lines are unescaped.
func New(url, raw string) *Document {
	d := &Document{url: url, raw: raw, cols: 80, rows: 24}
	d.setLines(splitBody(raw))
	return d
}

// NewSource builds a wide Document showing raw, the unparsed response
// fetched from url.
func NewSource(url, raw string) *Document {
	d := New(url, raw)
	d.source, d.wide = true, true
	return d
}

// NewError builds the page shown when url could not be fetched.
func NewError(url string, err error) *Document {
	msg := fmt.Sprintf("error loading %s", url)
	d := &Document{url: url, raw: err.Error(), failed: true, cols: 80, rows: 24}
	lines := []string{msg, ""}
	lines = append(lines, strings.Split(err.Error(), "\n")...)
	lines = append(lines, "", "backspace goes back, ctrl+r tries again")
	d.setLines(lines)
	return d
}

func splitBody(raw string) []string {
	raw = strings.ReplaceAll(raw, "\r", "")
	raw = strings.TrimSuffix(raw, "\n")
	lines := strings.Split(raw, "\n")

	if n := len(lines); n > 0 && lines[n-1] == "." {
		lines = lines[:n-1]
	}
	for i, l := range lines {
		if strings.HasPrefix(l, "..") {
			lines[i] = l[1:]
		}
	}
	if len(lines) == 1 && lines[0] == "" {
		return nil
	}
	return lines
}

func (d *Document) setLines(lines []string) {
	d.lines = lines
	d.longest = 0
	for i, l := range d.lines {
		l = strings.ReplaceAll(l, "\t", strings.Repeat(" ", tabWidth))
		d.lines[i] = l
		if w := ansi.StringWidth(l); w > d.longest {
			d.longest = w
		}
	}
}

// URL returns the document's address.
func (d *Document) URL() string { return d.url }

// Raw returns the response body, or the error text for an error page.
func (d *Document) Raw() string { return d.raw }

// Failed reports whether this is an error page.
func (d *Document) Failed() bool { return d.failed }

// IsSource reports whether d shows another page's raw response.
func (d *Document) IsSource() bool { return d.source }

func (d *Document) SetSize(cols, rows int) { d.cols, d.rows = cols, rows }

func (d *Document) SetWide(wide bool) { d.wide = wide }

// Lines returns the display lines.
func (d *Document) Lines() []string { return d.lines }

// Scroll returns the first visible line.
func (d *Document) Scroll() int { return d.scroll }

func (d *Document) bodyRows() int { return max(1, d.rows-1) }

func (d *Document) maxScroll() int { return max(0, len(d.lines)-d.bodyRows()) }

func (d *Document) scrollTo(n int) view.Action {
	n = max(0, min(n, d.maxScroll()))
	if n == d.scroll {
		return view.Just(view.None)
	}
	d.scroll = n
	return view.Just(view.Redraw)
}

// ProcessInput scrolls the document. Keys it doesn't use are left to the
// session.
func (d *Document) ProcessInput(k view.Key) view.Action {
	switch k.Kind {
	case view.KeyUp:
		return d.scrollTo(d.scroll - 1)
	case view.KeyDown:
		return d.scrollTo(d.scroll + 1)
	case view.KeyPageUp:
		return d.scrollTo(d.scroll - view.ScrollLines)
	case view.KeyPageDown:
		return d.scrollTo(d.scroll + view.ScrollLines)
	case view.KeyHome:
		return d.scrollTo(0)
	case view.KeyEnd:
		return d.scrollTo(d.maxScroll())
	case view.KeyBackspace, view.KeyDelete:
		return view.Just(view.Back)
	case view.KeyCtrl:
		switch k.Rune {
		case 'p':
			return d.scrollTo(d.scroll - 1)
		case 'n':
			return d.scrollTo(d.scroll + 1)
		case 'w':
			d.wide = !d.wide
			return view.Just(view.Redraw)
		}
	case view.KeyChar:
		switch k.Rune {
		case ' ':
			return d.scrollTo(d.scroll + view.ScrollLines)
		case '-':
			return d.scrollTo(d.scroll - view.ScrollLines)
		case 'g':
			return d.scrollTo(0)
		case 'G':
			return d.scrollTo(d.maxScroll())
		case 'j':
			return d.scrollTo(d.scroll + 1)
		case 'k':
			return d.scrollTo(d.scroll - 1)
		}
	}
	return view.Just(view.Unknown)
}

// Indent returns the left margin used to center the text.
func (d *Document) Indent() int {
	if d.wide {
		return 0
	}
	longest := min(d.longest, view.MaxCols)
	if longest > d.cols {
		return 0
	}
	if left := (d.cols - longest) / 2; left > 6 {
		return left - 6
	}
	return 0
}

// Render draws the visible lines and an empty status line.
func (d *Document) Render() string {
	indent := d.Indent()
	pad := strings.Repeat(" ", indent)
	width := d.cols - indent
	if !d.wide {
		width = min(width, view.MaxCols)
	}

	var b strings.Builder
	for i := 0; i < d.bodyRows(); i++ {
		if n := d.scroll + i; n < len(d.lines) {
			line := d.lines[n]
			if width > 0 && ansi.StringWidth(line) > width {
				line = ansi.Truncate(line, width, "…")
			}
			if d.failed && n == 0 {
				line = theme.StatusError().Render(line)
			}
			b.WriteString(pad + line)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
