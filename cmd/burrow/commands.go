package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"slices"
	"sort"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/pelletier/go-toml/v2"

	"github.com/Gaurav-Gosain/burrow/internal/config"
	"github.com/Gaurav-Gosain/burrow/internal/theme"
)

// printConfigPath prints the config file path
func printConfigPath(w io.Writer) error {
	path, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("could not determine config path: %w", err)
	}
	fmt.Fprintln(w, path)
	return nil
}

// editConfigFile opens the config file in $EDITOR
func editConfigFile() error {
	configPath, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("could not determine config path: %w", err)
	}

	// Ensure config file exists (create default if needed)
	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		fmt.Printf("Config file doesn't exist, creating default at: %s\n", configPath)
		if _, err := config.LoadUserConfig(); err != nil {
			return fmt.Errorf("could not create config file: %w", err)
		}
	}

	editor := findEditor()
	if editor == "" {
		return errors.New("no editor found. Please set $EDITOR environment variable")
	}

	cmd := exec.Command(editor, configPath)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func findEditor() string {
	for _, env := range []string{"EDITOR", "VISUAL"} {
		if e := os.Getenv(env); e != "" {
			return e
		}
	}
	for _, e := range []string{"vim", "vi", "nano", "emacs"} {
		if _, err := exec.LookPath(e); err == nil {
			return e
		}
	}
	return ""
}

// resetConfigToDefaults writes the default config to configPath. An
// existing file is only overwritten after a yes on in.
func resetConfigToDefaults(in io.Reader, out io.Writer, configPath string) error {
	if _, err := os.Stat(configPath); err == nil {
		fmt.Fprintf(out, "Warning: This will overwrite your existing configuration at:\n")
		fmt.Fprintf(out, "  %s\n\n", configPath)
		fmt.Fprintf(out, "Are you sure you want to reset to defaults? (yes/no): ")

		response, _ := bufio.NewReader(in).ReadString('\n')
		response = strings.ToLower(strings.TrimSpace(response))
		if response != "yes" && response != "y" {
			fmt.Fprintln(out, "Reset cancelled.")
			return nil
		}
	}

	data, err := defaultConfigFile(configPath)
	if err != nil {
		return err
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Fprintf(out, "Configuration reset to defaults\n")
	fmt.Fprintf(out, "  Location: %s\n", configPath)
	fmt.Fprintln(out, "\nYou can customize it with: burrow config edit")
	return nil
}

// defaultConfigFile renders the default config with a short header.
func defaultConfigFile(configPath string) ([]byte, error) {
	var sb strings.Builder
	sb.WriteString("# burrow configuration file\n")
	sb.WriteString("# Keys under [keybindings] map an action to the keys that trigger it.\n")
	sb.WriteString("# Multiple keys can be bound to the same action.\n")
	sb.WriteString("# Keys handled by menus and text pages (arrows, digits, letters) win\n")
	sb.WriteString("# over these bindings.\n")
	sb.WriteString("#\n")
	sb.WriteString("# Configuration location: " + configPath + "\n\n")

	data, err := toml.Marshal(config.DefaultConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	sb.Write(data)
	return []byte(sb.String()), nil
}

// loadConfigForListing loads the user config, falling back to the defaults
// with a warning.
func loadConfigForListing() *config.UserConfig {
	userConfig, err := config.LoadUserConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		fmt.Fprintln(os.Stderr, "Using default keybindings...")
		return config.DefaultConfig()
	}
	return userConfig
}

// listKeybindings prints all keybindings in a table per section
func listKeybindings(w io.Writer) error {
	registry := config.NewKeybindRegistry(loadConfigForListing())
	printKeybindingsTable(w, registry)
	return nil
}

func tableStyles() (header, cell lipgloss.Style) {
	header = lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.CLITableHeader()).
		Padding(0, 1)
	cell = lipgloss.NewStyle().Padding(0, 1)
	return header, cell
}

func newTable(headers ...string) *table.Table {
	headerStyle, cellStyle := tableStyles()
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.CLITableBorder())).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

// printKeybindingsTable prints the help sections, configurable ones first.
func printKeybindingsTable(w io.Writer, registry *config.KeybindRegistry) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, lipgloss.NewStyle().Bold(true).Foreground(theme.CLITableTitle()).Render("burrow Keybindings"))
	fmt.Fprintln(w)

	for _, section := range config.GetKeybindings(registry) {
		rows := make([][]string, 0, len(section.Bindings))
		for _, b := range section.Bindings {
			rows = append(rows, []string{b.Key, b.Description})
		}

		t := newTable("Keys", "Action").Rows(rows...)
		fmt.Fprintln(w, lipgloss.NewStyle().Bold(true).Foreground(theme.CLITableSection()).Render(section.Title))
		fmt.Fprintln(w, t.Render())
		fmt.Fprintln(w)
	}

	note := lipgloss.NewStyle().
		Foreground(theme.CLITableBorder()).
		Italic(true).
		Render("Note: MENUS, TEXT and PROMPT keys are handled by the page and can't be remapped.")
	fmt.Fprintln(w, note)
	fmt.Fprintln(w)
}

// Customization is a binding that differs from the default.
type Customization struct {
	Action      string
	DefaultKeys string
	CustomKeys  string
}

// findCustomizations finds all keybindings that differ from defaults
func findCustomizations(userCfg, defaultCfg *config.UserConfig) []Customization {
	var customizations []Customization

	compareSections := func(userSection, defaultSection map[string][]string) {
		actions := make([]string, 0, len(defaultSection))
		for action := range defaultSection {
			actions = append(actions, action)
		}
		sort.Strings(actions)

		for _, action := range actions {
			userKeys, exists := userSection[action]
			if !exists || slices.Equal(userKeys, defaultSection[action]) {
				continue
			}
			customizations = append(customizations, Customization{
				Action:      formatActionName(action),
				DefaultKeys: strings.Join(defaultSection[action], ", "),
				CustomKeys:  strings.Join(userKeys, ", "),
			})
		}
	}

	compareSections(userCfg.Keybindings.Navigation, defaultCfg.Keybindings.Navigation)
	compareSections(userCfg.Keybindings.Page, defaultCfg.Keybindings.Page)
	compareSections(userCfg.Keybindings.App, defaultCfg.Keybindings.App)
	return customizations
}

// formatActionName formats an action name for display
func formatActionName(action string) string {
	if desc, ok := config.ActionDescriptions[action]; ok {
		return desc
	}
	return strings.ReplaceAll(action, "_", " ")
}

// listCustomKeybindings shows only the keybindings that differ from defaults
func listCustomKeybindings(w io.Writer) error {
	userConfig, err := config.LoadUserConfig()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	customizations := findCustomizations(userConfig, config.DefaultConfig())
	if len(customizations) == 0 {
		fmt.Fprintln(w, lipgloss.NewStyle().Foreground(theme.CLITableBorder()).Render("No custom keybindings configured. All keybindings are using defaults."))
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Run 'burrow keybinds list' to see all keybindings.")
		return nil
	}

	rows := make([][]string, 0, len(customizations))
	for _, c := range customizations {
		rows = append(rows, []string{c.Action, c.DefaultKeys, c.CustomKeys})
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, lipgloss.NewStyle().Bold(true).Foreground(theme.CLITableTitle()).Render("Custom Keybindings"))
	fmt.Fprintln(w)
	fmt.Fprintln(w, newTable("Action", "Default", "Custom").Rows(rows...).Render())
	fmt.Fprintln(w)
	fmt.Fprintln(w, lipgloss.NewStyle().
		Foreground(theme.CLITableSection()).
		Render(fmt.Sprintf("Found %d customized keybinding(s)", len(customizations))))
	fmt.Fprintln(w)
	return nil
}
