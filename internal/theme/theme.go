// Package theme provides the colours used to draw Gopher pages.
package theme

import (
	"fmt"
	"image/color"

	"charm.land/lipgloss/v2"
	tint "github.com/lrstanley/bubbletint/v2"

	"github.com/Gaurav-Gosain/burrow/internal/gopher"
)

var enabled bool

// Initialize sets up the theme registry with the specified theme name.
// If themeName is empty, theming is disabled and the classic ANSI colours
// are used.
func Initialize(themeName string) error {
	if themeName == "" {
		enabled = false
		return nil
	}

	enabled = true
	tint.NewDefaultRegistry()

	if !tint.SetTintID(themeName) {
		tint.SetTintID("default")
		return fmt.Errorf("unknown theme %q, using default", themeName)
	}
	return nil
}

// IsEnabled returns true if theming is enabled.
func IsEnabled() bool {
	return enabled
}

// Current returns the active theme, or nil when theming is disabled.
func Current() *tint.Tint {
	if !enabled {
		return nil
	}
	return tint.Current()
}

// pick returns the themed colour when a theme is active and the ANSI
// fallback otherwise.
func pick(themed func(*tint.Tint) color.Color, ansi string) color.Color {
	if t := Current(); t != nil {
		return themed(t)
	}
	return lipgloss.Color(ansi)
}

// TypeColor returns the foreground colour for a menu item of type typ, or
// nil for types drawn in the terminal's default colour.
func TypeColor(typ gopher.Type) color.Color {
	switch typ {
	case gopher.Text:
		return pick(func(t *tint.Tint) color.Color { return t.BrightCyan }, "14")
	case gopher.Menu:
		return pick(func(t *tint.Tint) color.Color { return t.BrightBlue }, "12")
	case gopher.Info:
		return pick(func(t *tint.Tint) color.Color { return t.BrightYellow }, "11")
	case gopher.HTML:
		return pick(func(t *tint.Tint) color.Color { return t.BrightGreen }, "10")
	case gopher.Error:
		return pick(func(t *tint.Tint) color.Color { return t.BrightRed }, "9")
	}
	if typ.IsDownload() {
		return pick(func(t *tint.Tint) color.Color { return t.BrightWhite }, "15")
	}
	return nil
}

// ForType returns the style used to draw the name of a menu item.
func ForType(typ gopher.Type) lipgloss.Style {
	s := lipgloss.NewStyle()
	if c := TypeColor(typ); c != nil {
		s = s.Foreground(c)
	}
	if typ.IsDownload() {
		s = s.Underline(true)
	}
	return s
}

// Cursor is the style of the selection marker.
func Cursor() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).
		Foreground(pick(func(t *tint.Tint) color.Color { return t.BrightWhite }, "15"))
}

// LinkNumber is the style of the number in front of each link.
func LinkNumber() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(pick(func(t *tint.Tint) color.Color { return t.BrightPurple }, "13"))
}

// Status is the style of the bottom status line.
func Status() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(pick(func(t *tint.Tint) color.Color { return t.White }, "7"))
}

// StatusError is the style of an error shown on the status line.
func StatusError() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).
		Foreground(pick(func(t *tint.Tint) color.Color { return t.BrightRed }, "9"))
}

// Spinner is the colour of the loading spinner.
func Spinner() color.Color {
	return pick(func(t *tint.Tint) color.Color { return t.BrightPurple }, "13")
}

// CLI table colors
func CLITableHeader() color.Color {
	return lipgloss.Color("12")
}

func CLITableBorder() color.Color {
	return lipgloss.Color("8")
}

func CLITableSection() color.Color {
	return lipgloss.Color("11")
}

func CLITableTitle() color.Color {
	return lipgloss.Color("14")
}
