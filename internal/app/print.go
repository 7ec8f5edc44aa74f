package app

import (
	"strings"

	"github.com/Gaurav-Gosain/burrow/internal/menu"
	"github.com/Gaurav-Gosain/burrow/internal/text"
	"github.com/Gaurav-Gosain/burrow/internal/view"
)

// RenderAll draws every line of v at the given width, for output that
// isn't a terminal. Trailing blank lines are dropped.
func RenderAll(v view.View, cols int) string {
	rows := 1
	switch p := v.(type) {
	case *menu.Menu:
		rows = len(p.Lines())
	case *text.Document:
		rows = len(p.Lines())
	}
	// One extra row for the status line pages reserve.
	v.SetSize(cols, rows+1)

	out := strings.TrimRight(v.Render(), "\n ")
	return out + "\n"
}
