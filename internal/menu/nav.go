package menu

import (
	"strconv"
	"strings"

	"github.com/Gaurav-Gosain/burrow/internal/gopher"
	"github.com/Gaurav-Gosain/burrow/internal/view"
)

// ProcessInput applies one key press to the menu.
func (m *Menu) ProcessInput(k view.Key) view.Action {
	switch k.Kind {
	case view.KeyEnter:
		return m.open()
	case view.KeyUp:
		return m.up()
	case view.KeyDown:
		return m.down()
	case view.KeyPageUp:
		return m.pageUp()
	case view.KeyPageDown:
		return m.pageDown()
	case view.KeyBackspace, view.KeyDelete:
		if m.input == "" {
			return view.Just(view.Back)
		}
		r := []rune(m.input)
		m.input = string(r[:len(r)-1])
		return view.Just(view.Redraw)
	case view.KeyEsc:
		if m.input == "" {
			return view.Just(view.None)
		}
		m.input = ""
		return view.Just(view.Redraw)
	case view.KeyCtrl:
		switch k.Rune {
		case 'p':
			return m.up()
		case 'n':
			return m.down()
		case 'w':
			m.wide = !m.wide
			return view.Just(view.Redraw)
		case 'c':
			if m.input == "" {
				return view.Just(view.Quit)
			}
			m.input = ""
			return view.Just(view.Redraw)
		}
	case view.KeyChar:
		if m.input == "" {
			switch k.Rune {
			case ' ':
				return m.pageDown()
			case '-':
				return m.pageUp()
			}
		}
		m.input += string(k.Rune)
		return m.jump()
	}
	return view.PassKey(k)
}

// SelectLink selects link i, scrolling it into view when it's off screen.
func (m *Menu) SelectLink(i int) view.Action {
	if i < 0 || i >= len(m.links) {
		return view.Just(view.None)
	}
	if !m.IsVisible(i) {
		offset := min(view.ScrollLines, max(0, m.rows-2))
		m.scroll = max(0, m.links[i]-offset)
	}
	m.link = i
	return view.Just(view.Redraw)
}

func (m *Menu) follow(i int) view.Action {
	m.input = ""
	m.SelectLink(i)
	return m.open()
}

func (m *Menu) open() view.Action {
	m.input = ""
	line, ok := m.Link(m.link)
	if !ok {
		return view.Just(view.None)
	}
	if line.Type == gopher.Search && gopher.IsGopherURL(line.URL) {
		return view.Ask(line.Name, line.URL)
	}
	return view.OpenURL(line.URL)
}

// jumpTo moves the window so link i's line is at the top, or as close to
// it as the end of the menu allows, and selects it.
func (m *Menu) jumpTo(i int) {
	m.scroll = min(m.links[i], max(0, len(m.lines)-m.bodyRows()))
	m.link = i
}

func (m *Menu) up() view.Action {
	if m.link == 0 {
		if m.scroll > 0 {
			m.scroll--
			return view.Just(view.Redraw)
		}
		return view.Just(view.None)
	}

	next := m.link - 1
	switch v, _ := m.visibility(next); v {
	case above:
		m.scroll--
		if m.IsVisible(next) {
			m.link = next
		}
	case below:
		m.jumpTo(next)
	default:
		m.link = next
	}
	return view.Just(view.Redraw)
}

func (m *Menu) down() view.Action {
	if len(m.links) == 0 || m.link == len(m.links)-1 {
		if m.scroll+m.bodyRows() < len(m.lines) {
			m.scroll++
			return view.Just(view.Redraw)
		}
		return view.Just(view.None)
	}

	next := m.link + 1
	switch v, _ := m.visibility(next); v {
	case above:
		m.jumpTo(next)
	case below:
		if m.links[next] == m.scroll+m.bodyRows() {
			m.scroll++
			m.link = next
		} else {
			m.jumpTo(next)
		}
	default:
		m.link = next
	}
	return view.Just(view.Redraw)
}

func (m *Menu) pageDown() view.Action {
	n := len(m.lines)
	if n <= view.ScrollLines || m.scroll >= n-view.ScrollLines {
		return view.Just(view.None)
	}
	m.scroll = min(m.scroll+view.ScrollLines, n-view.ScrollLines)

	if v, ok := m.visibility(m.link); ok && v == above {
		for i := m.link + 1; i < len(m.links); i++ {
			if m.links[i] >= m.scroll {
				if m.IsVisible(i) {
					m.link = i
				}
				break
			}
		}
	}
	return view.Just(view.Redraw)
}

func (m *Menu) pageUp() view.Action {
	if m.scroll == 0 {
		if m.link > 0 || (len(m.links) > 0 && !m.IsVisible(0)) {
			return m.SelectLink(0)
		}
		return view.Just(view.None)
	}
	m.scroll = max(0, m.scroll-view.ScrollLines)

	if v, ok := m.visibility(m.link); ok && v == below {
		for i := m.link - 1; i >= 0; i-- {
			if m.links[i] < m.scroll+m.bodyRows() {
				if m.IsVisible(i) {
					m.link = i
				}
				break
			}
		}
	}
	return view.Just(view.Redraw)
}

// jump interprets the input buffer. A number that can't be the start of a
// longer link number is followed straight away; a number that could be is
// only selected. Anything else searches link names.
func (m *Menu) jump() view.Action {
	count := len(m.links)
	if len(m.input) <= 3 && isDigits(m.input) {
		if n, err := strconv.Atoi(m.input); err == nil && n >= 1 && n <= count {
			if count < n*10 {
				return m.follow(n - 1)
			}
			return m.SelectLink(n - 1)
		}
	}

	query := strings.ToLower(m.input)
	for i, pos := range m.links {
		if strings.Contains(strings.ToLower(m.lines[pos].Name), query) {
			return m.SelectLink(i)
		}
	}
	return view.Just(view.Redraw)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
