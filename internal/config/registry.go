package config

import (
	"slices"
	"sort"
	"strings"
	"unicode/utf8"
)

// ActionDescriptions describes every action a global key can be bound to.
var ActionDescriptions = map[string]string{
	"back":        "Go back in history",
	"forward":     "Go forward in history",
	"goto":        "Open a URL",
	"reload":      "Reload the current page",
	"redraw":      "Redraw the screen",
	"copy_url":    "Copy the current URL",
	"view_source": "Show the raw response",
	"quit":        "Quit burrow",
	"help":        "Show key bindings",
}

// KeybindRegistry resolves keys to actions and back.
type KeybindRegistry struct {
	actionToKeys map[string][]string
	keyToAction  map[string]string
	normalizer   *KeyNormalizer
}

// NewKeybindRegistry builds a registry from cfg's key bindings.
func NewKeybindRegistry(cfg *UserConfig) *KeybindRegistry {
	r := &KeybindRegistry{
		actionToKeys: make(map[string][]string),
		keyToAction:  make(map[string]string),
		normalizer:   NewKeyNormalizer(),
	}

	bindings := cfg.Keybindings.all()
	actions := make([]string, 0, len(bindings))
	for action := range bindings {
		actions = append(actions, action)
	}
	// Sorted so that a key bound twice always resolves the same way.
	sort.Strings(actions)

	for _, action := range actions {
		keys := bindings[action]
		r.actionToKeys[action] = keys
		for _, k := range keys {
			for _, variant := range r.normalizer.NormalizeKey(k) {
				if _, taken := r.keyToAction[variant]; !taken {
					r.keyToAction[variant] = action
				}
			}
		}
	}
	return r
}

// GetKeys returns the keys bound to action as written in the config.
func (r *KeybindRegistry) GetKeys(action string) []string {
	return r.actionToKeys[action]
}

// GetAction returns the action bound to key, or "".
func (r *KeybindRegistry) GetAction(key string) string {
	if action, ok := r.keyToAction[key]; ok {
		return action
	}
	for _, variant := range r.normalizer.NormalizeKey(key) {
		if action, ok := r.keyToAction[variant]; ok {
			return action
		}
	}
	return ""
}

// GetKeysForDisplay returns the keys bound to action formatted for the
// help page, e.g. "Ctrl+Q, Ctrl+C".
func (r *KeybindRegistry) GetKeysForDisplay(action string) string {
	keys := r.GetKeys(action)
	if len(keys) == 0 {
		return ""
	}
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = displayKey(k)
	}
	return strings.Join(out, ", ")
}

// Actions returns every bound action, sorted.
func (r *KeybindRegistry) Actions() []string {
	out := make([]string, 0, len(r.actionToKeys))
	for action := range r.actionToKeys {
		out = append(out, action)
	}
	sort.Strings(out)
	return out
}

var displayNames = map[string]string{
	"left":      "←",
	"right":     "→",
	"up":        "↑",
	"down":      "↓",
	"pgup":      "PgUp",
	"pgdown":    "PgDn",
	"backspace": "Backspace",
	"enter":     "Enter",
	"esc":       "Esc",
	"tab":       "Tab",
	"space":     "Space",
	"home":      "Home",
	"end":       "End",
	"delete":    "Del",
}

func displayKey(k string) string {
	parts := strings.Split(k, "+")
	for i, p := range parts {
		if name, ok := displayNames[strings.ToLower(p)]; ok {
			parts[i] = name
			continue
		}
		if utf8.RuneCountInString(p) > 1 {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		} else if i > 0 {
			parts[i] = strings.ToUpper(p)
		}
	}
	return strings.Join(parts, "+")
}

// KeyNormalizer maps the different spellings of a key to the names
// reported by the terminal.
type KeyNormalizer struct {
	aliases map[string][]string
}

var modifiers = []string{"ctrl", "alt", "shift", "meta", "super", "hyper"}

var namedKeys = []string{
	"up", "down", "left", "right", "home", "end", "pgup", "pgdown",
	"pageup", "pagedown", "insert", "delete", "del", "backspace",
	"enter", "return", "esc", "escape", "tab", "space",
}

// NewKeyNormalizer returns a normalizer with the standard aliases.
func NewKeyNormalizer() *KeyNormalizer {
	return &KeyNormalizer{
		aliases: map[string][]string{
			"return":   {"enter"},
			"enter":    {"return"},
			"escape":   {"esc"},
			"esc":      {"escape"},
			"pageup":   {"pgup"},
			"pagedown": {"pgdown"},
			"del":      {"delete"},
			" ":        {"space"},
		},
	}
}

// NormalizeKey returns key in canonical form followed by any aliases.
// Modifier combinations and named keys are lower-cased; single characters
// keep their case so "G" and "g" stay distinct.
func (n *KeyNormalizer) NormalizeKey(key string) []string {
	if key == "" {
		return nil
	}
	canon := key
	if utf8.RuneCountInString(key) > 1 {
		canon = strings.ToLower(key)
	}

	out := []string{canon}
	prefix, last := "", canon
	if i := strings.LastIndex(canon, "+"); i > 0 && i < len(canon)-1 {
		prefix, last = canon[:i+1], canon[i+1:]
	}
	for _, alias := range n.aliases[last] {
		if v := prefix + alias; !slices.Contains(out, v) {
			out = append(out, v)
		}
	}
	return out
}

// ValidateKey reports whether key is something a terminal can send. The
// second result explains why not.
func (n *KeyNormalizer) ValidateKey(key string) (bool, string) {
	if strings.TrimSpace(key) == "" && key != " " {
		return false, "key is empty"
	}
	if utf8.RuneCountInString(key) == 1 {
		return true, ""
	}

	parts := strings.Split(strings.ToLower(key), "+")
	last := parts[len(parts)-1]
	if last == "" {
		// "ctrl++" binds the plus key.
		if len(parts) >= 3 && parts[len(parts)-2] == "" {
			parts, last = parts[:len(parts)-2], "+"
		} else {
			return false, "missing key after modifier"
		}
	} else {
		parts = parts[:len(parts)-1]
	}

	for _, mod := range parts {
		if !slices.Contains(modifiers, mod) {
			return false, "unknown modifier " + mod
		}
	}

	if utf8.RuneCountInString(last) == 1 || slices.Contains(namedKeys, last) || isFunctionKey(last) {
		return true, ""
	}
	return false, "unknown key " + last
}

func isFunctionKey(k string) bool {
	if len(k) < 2 || len(k) > 3 || k[0] != 'f' {
		return false
	}
	for _, c := range k[1:] {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
