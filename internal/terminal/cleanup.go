// Package terminal wraps the bits of TTY handling the CLI needs outside
// of Bubble Tea.
package terminal

import (
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// ErrNotATerminal is returned by Size when f isn't a TTY.
var ErrNotATerminal = errors.New("not a terminal")

// IsTerminal reports whether f is connected to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Size returns the width and height of the terminal behind f.
func Size(f *os.File) (int, int, error) {
	if !IsTerminal(f) {
		return 0, 0, ErrNotATerminal
	}
	w, h, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0, 0, fmt.Errorf("reading terminal size: %w", err)
	}
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("terminal reports %dx%d", w, h)
	}
	return w, h, nil
}

// ResetTerminal puts the terminal back in a usable state after the UI
// exits, in case the program died before restoring it.
func ResetTerminal(w io.Writer) {
	fmt.Fprint(w, "\033[?25h")   // Show cursor
	fmt.Fprint(w, "\033[?1049l") // Leave the alternate screen
	fmt.Fprint(w, "\033[0m")     // Reset text attributes
	if f, ok := w.(*os.File); ok {
		_ = f.Sync()
	}
}
