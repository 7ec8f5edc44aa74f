package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/Gaurav-Gosain/burrow/internal/config"
)

// =============================================================================
// Default Configuration Tests
// =============================================================================

func TestDefaultConfig(t *testing.T) {
	cfg := config.DefaultConfig()

	if cfg == nil {
		t.Fatal("DefaultConfig returned nil")
	}

	if cfg.Start != config.DefaultStart {
		t.Errorf("Expected start %q, got %q", config.DefaultStart, cfg.Start)
	}

	if cfg.TLS || cfg.Tor || cfg.Wide {
		t.Error("Expected TLS, Tor and wide to be off by default")
	}

	if cfg.Timeout() != 15*time.Second {
		t.Errorf("Expected 15s timeout, got %v", cfg.Timeout())
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should be valid, got %v", err)
	}
}

func TestDefaultKeybindings(t *testing.T) {
	cfg := config.DefaultConfig()

	requiredActions := map[string]map[string][]string{
		"back":    cfg.Keybindings.Navigation,
		"forward": cfg.Keybindings.Navigation,
		"goto":    cfg.Keybindings.Navigation,
		"redraw":  cfg.Keybindings.Page,
		"quit":    cfg.Keybindings.App,
		"help":    cfg.Keybindings.App,
	}

	for action, section := range requiredActions {
		keys, ok := section[action]
		if !ok {
			t.Errorf("Expected %s keybinding to exist", action)
			continue
		}
		if len(keys) == 0 {
			t.Errorf("Expected %s to have at least one key", action)
		}
	}
}

// =============================================================================
// Validation Tests
// =============================================================================

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*config.UserConfig)
		wantErr bool
	}{
		{"defaults", func(*config.UserConfig) {}, false},
		{"tls only", func(c *config.UserConfig) { c.TLS = true }, false},
		{"tor only", func(c *config.UserConfig) { c.Tor = true }, false},
		{"tls and tor", func(c *config.UserConfig) { c.TLS, c.Tor = true, true }, true},
		{"negative timeout", func(c *config.UserConfig) { c.TimeoutSeconds = -1 }, true},
		{"unknown action", func(c *config.UserConfig) { c.Keybindings.App["fly"] = []string{"x"} }, true},
		{"bad modifier", func(c *config.UserConfig) { c.Keybindings.App["quit"] = []string{"hyperctrl+q"} }, true},
		{"empty key", func(c *config.UserConfig) { c.Keybindings.App["quit"] = []string{""} }, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			tc.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestValidate_TLSAndTor(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.TLS, cfg.Tor = true, true

	if err := cfg.Validate(); !errors.Is(err, config.ErrTLSAndTor) {
		t.Errorf("Expected ErrTLSAndTor, got %v", err)
	}
}

// =============================================================================
// Loading Tests
// =============================================================================

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
start = "gopher://localhost:7070/1/"
wide = true
timeout_seconds = 3

[keybindings.app]
quit = ["ctrl+x"]
`)

	cfg, err := config.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	if cfg.Start != "gopher://localhost:7070/1/" {
		t.Errorf("Expected start from file, got %q", cfg.Start)
	}
	if !cfg.Wide {
		t.Error("Expected wide from file")
	}
	if cfg.Timeout() != 3*time.Second {
		t.Errorf("Expected 3s timeout, got %v", cfg.Timeout())
	}
	if cfg.TorProxy != "127.0.0.1:9050" {
		t.Errorf("Expected default tor proxy to survive, got %q", cfg.TorProxy)
	}

	if got := cfg.Keybindings.App["quit"]; !slices.Equal(got, []string{"ctrl+x"}) {
		t.Errorf("Expected quit to be replaced, got %v", got)
	}
	if got := cfg.Keybindings.App["help"]; len(got) == 0 {
		t.Error("Expected help to keep its default keys")
	}
	if got := cfg.Keybindings.Navigation["back"]; len(got) == 0 {
		t.Error("Expected missing sections to be filled with defaults")
	}
}

func TestLoadFile_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad toml", "start = "},
		{"tls and tor", "tls = true\ntor = true\n"},
		{"unknown action", "[keybindings.page]\nfly = [\"f\"]\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := config.LoadFile(writeConfig(t, tc.body)); err == nil {
				t.Error("Expected an error")
			}
		})
	}

	if _, err := config.LoadFile(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("Expected an error for a missing file")
	}
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg := config.DefaultConfig()
	cfg.Theme = "dracula"
	cfg.Keybindings.Navigation["goto"] = []string{"ctrl+l"}

	if err := config.SaveConfig(cfg, path); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	loaded, err := config.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if loaded.Theme != "dracula" {
		t.Errorf("Expected theme to round trip, got %q", loaded.Theme)
	}
	if got := loaded.Keybindings.Navigation["goto"]; !slices.Equal(got, []string{"ctrl+l"}) {
		t.Errorf("Expected goto to round trip, got %v", got)
	}
}

func TestApplyOverrides(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Theme = "nord"

	on := true
	config.ApplyOverrides(config.Overrides{Start: "gopher://a", Tor: &on}, cfg)

	if cfg.Start != "gopher://a" {
		t.Errorf("Expected start override, got %q", cfg.Start)
	}
	if !cfg.Tor {
		t.Error("Expected tor override")
	}
	if cfg.TLS {
		t.Error("Unset override should not touch TLS")
	}
	if cfg.Theme != "nord" {
		t.Errorf("Unset override should not touch theme, got %q", cfg.Theme)
	}
}

// =============================================================================
// Keybind Registry Tests
// =============================================================================

func TestKeybindRegistry_GetKeys(t *testing.T) {
	registry := config.NewKeybindRegistry(config.DefaultConfig())

	keys := registry.GetKeys("quit")
	if !slices.Equal(keys, []string{"ctrl+q", "ctrl+c"}) {
		t.Errorf("Expected quit keys [ctrl+q ctrl+c], got %v", keys)
	}
}

func TestKeybindRegistry_GetAction(t *testing.T) {
	registry := config.NewKeybindRegistry(config.DefaultConfig())

	tests := []struct {
		key    string
		action string
	}{
		{"left", "back"},
		{"backspace", "back"},
		{"right", "forward"},
		{"ctrl+q", "quit"},
		{"ctrl+C", "quit"},
		{"enter", "redraw"},
		{"return", "redraw"},
		{"?", "help"},
		{"f1", "help"},
		{"ctrl+y", "copy_url"},
		{"z", ""},
	}

	for _, tc := range tests {
		t.Run(tc.key, func(t *testing.T) {
			if got := registry.GetAction(tc.key); got != tc.action {
				t.Errorf("GetAction(%q) = %q, want %q", tc.key, got, tc.action)
			}
		})
	}
}

func TestKeybindRegistry_GetKeysForDisplay(t *testing.T) {
	registry := config.NewKeybindRegistry(config.DefaultConfig())

	tests := map[string]string{
		"quit":    "Ctrl+Q, Ctrl+C",
		"back":    "←, Backspace",
		"help":    "?, F1",
		"unknown": "",
	}

	for action, want := range tests {
		if got := registry.GetKeysForDisplay(action); got != want {
			t.Errorf("GetKeysForDisplay(%q) = %q, want %q", action, got, want)
		}
	}
}

func TestKeybindRegistry_UnknownAction(t *testing.T) {
	registry := config.NewKeybindRegistry(config.DefaultConfig())

	if keys := registry.GetKeys("nonexistent_action"); len(keys) != 0 {
		t.Errorf("Expected no keys for unknown action, got %v", keys)
	}
}

func TestKeybindRegistry_Actions(t *testing.T) {
	registry := config.NewKeybindRegistry(config.DefaultConfig())

	actions := registry.Actions()
	if !slices.IsSorted(actions) {
		t.Errorf("Expected sorted actions, got %v", actions)
	}
	if len(actions) != len(config.ActionDescriptions) {
		t.Errorf("Expected every action bound by default, got %v", actions)
	}
}

// =============================================================================
// Key Normalizer Tests
// =============================================================================

func TestKeyNormalizer(t *testing.T) {
	normalizer := config.NewKeyNormalizer()

	tests := []struct {
		input    string
		expected string
	}{
		{"ctrl+a", "ctrl+a"},
		{"Ctrl+A", "ctrl+a"},
		{"CTRL+A", "ctrl+a"},
		{"return", "enter"},
		{"escape", "esc"},
		{"pageup", "pgup"},
		{"ctrl+return", "ctrl+enter"},
		{"G", "G"},
		{" ", "space"},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got := normalizer.NormalizeKey(tc.input)
			if len(got) == 0 {
				t.Errorf("NormalizeKey(%q) returned empty slice", tc.input)
				return
			}
			if !slices.Contains(got, tc.expected) {
				t.Errorf("NormalizeKey(%q) = %v, want to contain %q", tc.input, got, tc.expected)
			}
		})
	}
}

func TestKeyNormalizer_ValidateKey(t *testing.T) {
	normalizer := config.NewKeyNormalizer()

	tests := []struct {
		input   string
		isValid bool
	}{
		{"ctrl+a", true},
		{"n", true},
		{"?", true},
		{"enter", true},
		{"esc", true},
		{"tab", true},
		{"f12", true},
		{"ctrl++", true},
		{"alt+shift+left", true},
		{"", false},
		{"ctrl+", false},
		{"fancy+a", false},
		{"ctrl+nothing", false},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			valid, _ := normalizer.ValidateKey(tc.input)
			if valid != tc.isValid {
				t.Errorf("ValidateKey(%q) = %v, want %v", tc.input, valid, tc.isValid)
			}
		})
	}
}

// =============================================================================
// Help Page Tests
// =============================================================================

func TestGetKeybindings(t *testing.T) {
	sections := config.GetKeybindings(nil)

	var titles []string
	for _, s := range sections {
		titles = append(titles, s.Title)
		if len(s.Bindings) == 0 {
			t.Errorf("Section %s has no bindings", s.Title)
		}
	}

	want := []string{"NAVIGATION", "PAGE", "APP", "MENUS", "TEXT", "PROMPT"}
	if !slices.Equal(titles, want) {
		t.Errorf("Expected sections %v, got %v", want, titles)
	}
}

func TestGetKeybindings_FollowsRegistry(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Keybindings.App["quit"] = []string{"ctrl+x"}
	sections := config.GetKeybindings(config.NewKeybindRegistry(cfg))

	for _, s := range sections {
		for _, b := range s.Bindings {
			if b.Description == config.ActionDescriptions["quit"] {
				if b.Key != "Ctrl+X" {
					t.Errorf("Expected quit shown as Ctrl+X, got %q", b.Key)
				}
				return
			}
		}
	}
	t.Error("quit missing from help")
}

// =============================================================================
// Action Descriptions Tests
// =============================================================================

func TestActionDescriptions(t *testing.T) {
	for action, keys := range config.DefaultKeybindings().Navigation {
		if config.ActionDescriptions[action] == "" {
			t.Errorf("Expected description for navigation action %q (%v)", action, keys)
		}
	}

	for _, action := range []string{"back", "goto", "copy_url", "quit", "help"} {
		desc, ok := config.ActionDescriptions[action]
		if !ok {
			t.Errorf("Expected description for action %q", action)
			continue
		}
		if desc == "" {
			t.Errorf("Description for %q should not be empty", action)
		}
	}
}

// =============================================================================
// Watcher Tests
// =============================================================================

func TestWatchConfigCmd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("wide = false\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	got := make(chan any, 1)
	go func() { got <- config.WatchConfigCmd(path)() }()

	// The watcher may not be registered yet, so keep writing.
	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()
	for {
		select {
		case msg := <-got:
			changed, ok := msg.(config.ConfigChangedMsg)
			if !ok {
				t.Fatalf("Expected ConfigChangedMsg, got %T", msg)
			}
			if changed.Path != path {
				t.Errorf("Expected path %q, got %q", path, changed.Path)
			}
			return
		case <-tick.C:
			_ = os.WriteFile(path, []byte("wide = true\n"), 0o644)
		case <-deadline:
			t.Fatal("watcher never fired")
		}
	}
}

// =============================================================================
// Benchmarks
// =============================================================================

func BenchmarkKeybindRegistry_GetAction(b *testing.B) {
	registry := config.NewKeybindRegistry(config.DefaultConfig())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = registry.GetAction("ctrl+C")
	}
}

func BenchmarkKeybindRegistry_GetKeys(b *testing.B) {
	registry := config.NewKeybindRegistry(config.DefaultConfig())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = registry.GetKeys("back")
	}
}

func BenchmarkNormalizeKey(b *testing.B) {
	normalizer := config.NewKeyNormalizer()
	keys := []string{"ctrl+a", "Ctrl+Shift+B", "alt+1", "return"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = normalizer.NormalizeKey(keys[i%len(keys)])
	}
}
