package input

import (
	"unicode"
	"unicode/utf8"

	tea "charm.land/bubbletea/v2"

	"github.com/Gaurav-Gosain/burrow/internal/view"
)

var namedKeys = map[rune]view.Key{
	tea.KeyUp:        view.Up,
	tea.KeyDown:      view.Down,
	tea.KeyLeft:      view.Left,
	tea.KeyRight:     view.Right,
	tea.KeyPgUp:      view.PageUp,
	tea.KeyPgDown:    view.PageDown,
	tea.KeyHome:      view.Home,
	tea.KeyEnd:       view.End,
	tea.KeyBackspace: view.Backspace,
	tea.KeyDelete:    view.Delete,
	tea.KeyEscape:    view.Esc,
	tea.KeyEnter:     view.Enter,
	tea.KeyKpEnter:   view.Enter,
	tea.KeyTab:       view.Tab,
}

var functionKeys = map[rune]int{
	tea.KeyF1: 1, tea.KeyF2: 2, tea.KeyF3: 3, tea.KeyF4: 4,
	tea.KeyF5: 5, tea.KeyF6: 6, tea.KeyF7: 7, tea.KeyF8: 8,
	tea.KeyF9: 9, tea.KeyF10: 10, tea.KeyF11: 11, tea.KeyF12: 12,
}

// KeyFromMsg translates a Bubble Tea key press into the key type pages
// understand. Combinations pages have no use for, such as alt or
// ctrl+arrow, become view.KeyUnknown.
func KeyFromMsg(msg tea.KeyPressMsg) view.Key {
	k := msg.Key()
	ctrl := k.Mod&tea.ModCtrl != 0
	if k.Mod&(tea.ModAlt|tea.ModMeta|tea.ModSuper|tea.ModHyper) != 0 {
		return view.Key{}
	}

	if named, ok := namedKeys[k.Code]; ok {
		if ctrl {
			return view.Key{}
		}
		return named
	}
	if n, ok := functionKeys[k.Code]; ok {
		return view.F(n)
	}

	if ctrl {
		if k.Code < utf8.RuneSelf && unicode.IsLetter(k.Code) {
			return view.Ctrl(k.Code)
		}
		return view.Key{}
	}

	if k.Code == tea.KeySpace {
		return view.Char(' ')
	}
	if k.Text != "" {
		r, _ := utf8.DecodeRuneInString(k.Text)
		return view.Char(r)
	}
	if unicode.IsPrint(k.Code) {
		return view.Char(k.Code)
	}
	return view.Key{}
}
