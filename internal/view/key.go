package view

import (
	"fmt"
	"strings"
)

// KeyKind classifies a decoded key event.
type KeyKind int

const (
	KeyUnknown KeyKind = iota
	KeyChar
	KeyCtrl
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyPageUp
	KeyPageDown
	KeyHome
	KeyEnd
	KeyBackspace
	KeyDelete
	KeyEsc
	KeyEnter
	KeyTab
	KeyF
)

// Key is a single decoded key press. Rune holds the character for KeyChar
// and KeyCtrl, and the function key number for KeyF.
type Key struct {
	Kind KeyKind
	Rune rune
}

// Char returns the key for a printable character.
func Char(r rune) Key { return Key{Kind: KeyChar, Rune: r} }

// Ctrl returns the key for a control-modified letter. The letter is stored
// in lower case.
func Ctrl(r rune) Key {
	if r >= 'A' && r <= 'Z' {
		r += 'a' - 'A'
	}
	return Key{Kind: KeyCtrl, Rune: r}
}

// F returns function key n.
func F(n int) Key { return Key{Kind: KeyF, Rune: rune(n)} }

// Named keys.
var (
	Up        = Key{Kind: KeyUp}
	Down      = Key{Kind: KeyDown}
	Left      = Key{Kind: KeyLeft}
	Right     = Key{Kind: KeyRight}
	PageUp    = Key{Kind: KeyPageUp}
	PageDown  = Key{Kind: KeyPageDown}
	Home      = Key{Kind: KeyHome}
	End       = Key{Kind: KeyEnd}
	Backspace = Key{Kind: KeyBackspace}
	Delete    = Key{Kind: KeyDelete}
	Esc       = Key{Kind: KeyEsc}
	Enter     = Key{Kind: KeyEnter}
	Tab       = Key{Kind: KeyTab}
)

var keyNames = map[KeyKind]string{
	KeyUp:        "up",
	KeyDown:      "down",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyPageUp:    "pgup",
	KeyPageDown:  "pgdown",
	KeyHome:      "home",
	KeyEnd:       "end",
	KeyBackspace: "backspace",
	KeyDelete:    "delete",
	KeyEsc:       "esc",
	KeyEnter:     "enter",
	KeyTab:       "tab",
}

// String returns the key name in the form used by key binding tables,
// e.g. "ctrl+c", "left", "a" or "f1". Space is reported as "space".
func (k Key) String() string {
	switch k.Kind {
	case KeyChar:
		if k.Rune == ' ' {
			return "space"
		}
		return string(k.Rune)
	case KeyCtrl:
		return "ctrl+" + strings.ToLower(string(k.Rune))
	case KeyF:
		return fmt.Sprintf("f%d", k.Rune)
	}
	if name, ok := keyNames[k.Kind]; ok {
		return name
	}
	return "unknown"
}

// IsDigit reports whether k is a plain decimal digit.
func (k Key) IsDigit() bool {
	return k.Kind == KeyChar && k.Rune >= '0' && k.Rune <= '9'
}
