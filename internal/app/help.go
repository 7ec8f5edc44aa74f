package app

import (
	"fmt"
	"strings"

	"github.com/Gaurav-Gosain/burrow/internal/config"
)

// helpURL identifies the help page in the history.
const helpURL = "about:help"

// helpText lays the key binding sections out as a plain text document.
func helpText(registry *config.KeybindRegistry) string {
	sections := config.GetKeybindings(registry)

	width := 0
	for _, s := range sections {
		for _, b := range s.Bindings {
			width = max(width, len([]rune(b.Key)))
		}
	}

	var sb strings.Builder
	sb.WriteString("burrow key bindings\n\n")
	for i, s := range sections {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(s.Title + "\n")
		for _, b := range s.Bindings {
			pad := width - len([]rune(b.Key))
			fmt.Fprintf(&sb, "  %s%s  %s\n", b.Key, strings.Repeat(" ", pad), b.Description)
		}
	}
	sb.WriteString("\nbackspace returns to the previous page\n")
	return sb.String()
}
