package config

// Keybinding represents a single keybinding entry
type Keybinding struct {
	Key         string
	Description string
}

// KeybindingSection represents a section of related keybindings
type KeybindingSection struct {
	Title    string
	Bindings []Keybinding
}

// GetKeybindings returns all keybinding sections for the help page.
// If registry is provided, the global bindings come from the user's config;
// if it is nil the built-in defaults are shown.
func GetKeybindings(registry *KeybindRegistry) []KeybindingSection {
	if registry == nil {
		registry = NewKeybindRegistry(DefaultConfig())
	}

	nav := KeybindingSection{Title: "NAVIGATION"}
	addBinding(&nav, registry, "back")
	addBinding(&nav, registry, "forward")
	addBinding(&nav, registry, "goto")
	addBinding(&nav, registry, "reload")

	page := KeybindingSection{Title: "PAGE"}
	addBinding(&page, registry, "redraw")
	addBinding(&page, registry, "copy_url")
	addBinding(&page, registry, "view_source")

	app := KeybindingSection{Title: "APP"}
	addBinding(&app, registry, "help")
	addBinding(&app, registry, "quit")

	sections := []KeybindingSection{}
	for _, s := range []KeybindingSection{nav, page, app} {
		if len(s.Bindings) > 0 {
			sections = append(sections, s)
		}
	}
	return append(sections, getStaticHelpSections()...)
}

// addBinding adds a keybinding to a section if the action has keys configured
func addBinding(section *KeybindingSection, registry *KeybindRegistry, action string) {
	keys := registry.GetKeysForDisplay(action)
	if keys != "" {
		section.Bindings = append(section.Bindings, Keybinding{
			Key:         keys,
			Description: ActionDescriptions[action],
		})
	}
}

// getStaticHelpSections returns the keys handled by the pages themselves.
// Pages see a key before the global bindings do, so these can't be remapped.
func getStaticHelpSections() []KeybindingSection {
	return []KeybindingSection{
		{
			Title: "MENUS",
			Bindings: []Keybinding{
				{"↑/↓, Ctrl+P/N", "Select previous/next link"},
				{"PgUp/PgDn, -/Space", "Scroll a page"},
				{"0-9", "Jump to a link by number"},
				{"a-z", "Jump to a link by name"},
				{"Enter", "Open the selected link"},
				{"Backspace", "Erase input, then go back"},
				{"Esc", "Clear input"},
				{"Ctrl+W", "Toggle wide mode"},
				{"Ctrl+C", "Clear input, then quit"},
			},
		},
		{
			Title: "TEXT",
			Bindings: []Keybinding{
				{"↑/↓, j/k", "Scroll a line"},
				{"PgUp/PgDn, -/Space", "Scroll a page"},
				{"g/G, Home/End", "Go to top/bottom"},
				{"Ctrl+W", "Toggle wide mode"},
			},
		},
		{
			Title: "PROMPT",
			Bindings: []Keybinding{
				{"Enter", "Submit"},
				{"Esc, Ctrl+C", "Cancel"},
			},
		},
	}
}
