// Package config loads burrow's user configuration and key bindings.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"
)

// DefaultStart is the page opened when no URL is given.
const DefaultStart = "gopher://gopher.floodgap.com/1/"

// LocalStart is the page opened by --local.
const LocalStart = "gopher://127.0.0.1:7070"

// ErrTLSAndTor is returned when both TLS and Tor are enabled.
var ErrTLSAndTor = errors.New("can't set both --tor and --tls")

// UserConfig is the contents of config.toml.
type UserConfig struct {
	Start          string            `toml:"start" comment:"Page opened when burrow is started without a URL"`
	TLS            bool              `toml:"tls" comment:"Connect with TLS"`
	Tor            bool              `toml:"tor" comment:"Route connections through Tor"`
	TorProxy       string            `toml:"tor_proxy" comment:"SOCKS5 address of the Tor daemon"`
	Wide           bool              `toml:"wide" comment:"Start with centering turned off"`
	Theme          string            `toml:"theme" comment:"bubbletint theme ID, empty for terminal colours"`
	TimeoutSeconds int               `toml:"timeout_seconds" comment:"Seconds to wait for a server"`
	Keybindings    KeybindingsConfig `toml:"keybindings"`
}

// KeybindingsConfig maps action names to keys, grouped like the help page.
type KeybindingsConfig struct {
	Navigation map[string][]string `toml:"navigation"`
	Page       map[string][]string `toml:"page"`
	App        map[string][]string `toml:"app"`
}

// Overrides are command line settings that win over the config file.
// Nil fields leave the file's value alone.
type Overrides struct {
	Start string
	TLS   *bool
	Tor   *bool
	Wide  *bool
	Theme *string
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *UserConfig {
	return &UserConfig{
		Start:          DefaultStart,
		TorProxy:       "127.0.0.1:9050",
		TimeoutSeconds: 15,
		Keybindings:    DefaultKeybindings(),
	}
}

// DefaultKeybindings returns the built-in global key bindings.
func DefaultKeybindings() KeybindingsConfig {
	return KeybindingsConfig{
		Navigation: map[string][]string{
			"back":    {"left", "backspace"},
			"forward": {"right"},
			"goto":    {"ctrl+g"},
			"reload":  {"ctrl+r"},
		},
		Page: map[string][]string{
			"redraw":      {"enter"},
			"copy_url":    {"ctrl+y"},
			"view_source": {"ctrl+u"},
		},
		App: map[string][]string{
			"quit": {"ctrl+q", "ctrl+c"},
			"help": {"?", "f1"},
		},
	}
}

// Timeout returns the network timeout as a duration.
func (c *UserConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Validate reports settings that can't work together.
func (c *UserConfig) Validate() error {
	if c.TLS && c.Tor {
		return ErrTLSAndTor
	}
	if c.TimeoutSeconds < 0 {
		return fmt.Errorf("timeout_seconds must not be negative, got %d", c.TimeoutSeconds)
	}

	n := NewKeyNormalizer()
	var errs []error
	for action, keys := range c.Keybindings.all() {
		if _, ok := ActionDescriptions[action]; !ok {
			errs = append(errs, fmt.Errorf("keybindings: unknown action %q", action))
			continue
		}
		for _, k := range keys {
			if ok, reason := n.ValidateKey(k); !ok {
				errs = append(errs, fmt.Errorf("keybindings: %s: %q: %s", action, k, reason))
			}
		}
	}
	return errors.Join(errs...)
}

// all flattens every section into one action -> keys map.
func (k KeybindingsConfig) all() map[string][]string {
	out := make(map[string][]string)
	for _, section := range []map[string][]string{k.Navigation, k.Page, k.App} {
		for action, keys := range section {
			out[action] = keys
		}
	}
	return out
}

// fillDefaults adds default bindings for actions the user didn't mention.
func (k *KeybindingsConfig) fillDefaults() {
	def := DefaultKeybindings()
	fill := func(dst *map[string][]string, src map[string][]string) {
		if *dst == nil {
			*dst = make(map[string][]string)
		}
		for action, keys := range src {
			if _, ok := (*dst)[action]; !ok {
				(*dst)[action] = keys
			}
		}
	}
	fill(&k.Navigation, def.Navigation)
	fill(&k.Page, def.Page)
	fill(&k.App, def.App)
}

// GetConfigPath returns the location of config.toml, creating its
// directory if needed.
func GetConfigPath() (string, error) {
	path, err := xdg.ConfigFile(filepath.Join("burrow", "config.toml"))
	if err != nil {
		return "", fmt.Errorf("finding config path: %w", err)
	}
	return path, nil
}

// GetLogPath returns the file interactive sessions log to.
func GetLogPath() (string, error) {
	path, err := xdg.StateFile(filepath.Join("burrow", "burrow.log"))
	if err != nil {
		return "", fmt.Errorf("finding log path: %w", err)
	}
	return path, nil
}

// GetDownloadDir returns the directory binary items are saved to.
func GetDownloadDir() string {
	if xdg.UserDirs.Download != "" {
		return xdg.UserDirs.Download
	}
	return filepath.Join(xdg.Home, "Downloads")
}

// LoadUserConfig loads config.toml, writing the defaults there first if it
// doesn't exist yet.
func LoadUserConfig() (*UserConfig, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		cfg := DefaultConfig()
		if err := SaveConfig(cfg, path); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	return LoadFile(path)
}

// LoadFile loads the config at path. Settings missing from the file keep
// their defaults.
func LoadFile(path string) (*UserConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := DefaultConfig()
	// Decode into empty sections so a user table replaces, not merges with,
	// the default keys for the actions it lists.
	cfg.Keybindings = KeybindingsConfig{}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	cfg.Keybindings.fillDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// SaveConfig writes cfg to path as TOML.
func SaveConfig(cfg *UserConfig, path string) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// ApplyOverrides copies the set fields of o into cfg.
func ApplyOverrides(o Overrides, cfg *UserConfig) {
	if o.Start != "" {
		cfg.Start = o.Start
	}
	if o.TLS != nil {
		cfg.TLS = *o.TLS
	}
	if o.Tor != nil {
		cfg.Tor = *o.Tor
	}
	if o.Wide != nil {
		cfg.Wide = *o.Wide
	}
	if o.Theme != nil {
		cfg.Theme = *o.Theme
	}
}
