package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Gaurav-Gosain/burrow/internal/config"
)

func TestResolveConflicts(t *testing.T) {
	tests := []struct {
		name    string
		opts    cliOptions
		args    []string
		wantErr string
	}{
		{"tls and no-tls", cliOptions{tls: true, noTLS: true, noConfig: true}, nil, "can't set both --tls and --no-tls"},
		{"tor and no-tor", cliOptions{tor: true, noTor: true, noConfig: true}, nil, "can't set both --tor and --no-tor"},
		{"config and no-config", cliOptions{configFile: "file.toml", noConfig: true}, nil, "can't mix --config and --no-config"},
		{"raw without url", cliOptions{raw: true, noConfig: true}, nil, "--raw needs gopher-url"},
		{"two urls", cliOptions{noConfig: true}, []string{"sdf.org", "sdf2.org"}, "unknown argument: sdf2.org"},
		{"tls and tor", cliOptions{tls: true, tor: true, noConfig: true}, nil, "can't set both --tor and --tls"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.opts.resolve(tt.args)
			if err == nil {
				t.Fatal("expected an error")
			}
			if err.Error() != tt.wantErr {
				t.Errorf("error = %q, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestResolveTLSAndTorIsSentinel(t *testing.T) {
	o := cliOptions{tls: true, tor: true, noConfig: true}
	if _, err := o.resolve(nil); !errors.Is(err, config.ErrTLSAndTor) {
		t.Errorf("error = %v, want ErrTLSAndTor", err)
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name      string
		opts      cliOptions
		args      []string
		wantMode  runMode
		wantStart string
		wantTLS   bool
		wantTor   bool
	}{
		{"defaults", cliOptions{stdoutIsTTY: true}, nil, modeUI, config.DefaultStart, false, false},
		{"url", cliOptions{stdoutIsTTY: true}, []string{"sdf.org"}, modeUI, "sdf.org", false, false},
		{"local", cliOptions{local: true, stdoutIsTTY: true}, nil, modeUI, config.LocalStart, false, false},
		{"local with tls", cliOptions{local: true, tls: true, stdoutIsTTY: true}, nil, modeUI, config.LocalStart, true, false},
		{"url beats local", cliOptions{local: true, stdoutIsTTY: true}, []string{"sdf.org"}, modeUI, "sdf.org", false, false},
		{"tor without tls", cliOptions{tor: true, noTLS: true, stdoutIsTTY: true}, nil, modeUI, config.DefaultStart, false, true},
		{"raw", cliOptions{raw: true, stdoutIsTTY: true}, []string{"sdf.org"}, modeRaw, "sdf.org", false, false},
		{"print", cliOptions{print: true, stdoutIsTTY: true}, []string{"sdf.org"}, modePrint, "sdf.org", false, false},
		{"print without url", cliOptions{print: true, stdoutIsTTY: true}, nil, modePrint, config.DefaultStart, false, false},
		{"no tty implies print", cliOptions{}, nil, modePrint, config.DefaultStart, false, false},
		{"raw wins over no tty", cliOptions{raw: true}, []string{"sdf.org"}, modeRaw, "sdf.org", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.opts.loadUserConfig = func() (*config.UserConfig, string, error) {
				return config.DefaultConfig(), "config.toml", nil
			}
			r, err := tt.opts.resolve(tt.args)
			if err != nil {
				t.Fatalf("resolve() error = %v", err)
			}
			if r.mode != tt.wantMode {
				t.Errorf("mode = %v, want %v", r.mode, tt.wantMode)
			}
			if r.cfg.Start != tt.wantStart {
				t.Errorf("start = %q, want %q", r.cfg.Start, tt.wantStart)
			}
			if r.cfg.TLS != tt.wantTLS || r.cfg.Tor != tt.wantTor {
				t.Errorf("tls, tor = %v, %v, want %v, %v", r.cfg.TLS, r.cfg.Tor, tt.wantTLS, tt.wantTor)
			}
		})
	}
}

func TestResolveConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := "start = \"gopher://example.org/\"\ntls = true\nwide = true\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	o := cliOptions{configFile: path, stdoutIsTTY: true}
	r, err := o.resolve(nil)
	if err != nil {
		t.Fatalf("resolve() error = %v", err)
	}
	if r.cfg.Start != "gopher://example.org/" || !r.cfg.TLS || !r.cfg.Wide {
		t.Errorf("config not loaded: %+v", r.cfg)
	}
	if r.configPath != path {
		t.Errorf("configPath = %q, want %q", r.configPath, path)
	}

	// --no-tls turns the file's setting off.
	o.noTLS = true
	if r, err = o.resolve(nil); err != nil || r.cfg.TLS {
		t.Errorf("--no-tls: tls = %v, err = %v", r != nil && r.cfg.TLS, err)
	}
}

func TestResolveMissingConfigFile(t *testing.T) {
	o := cliOptions{configFile: filepath.Join(t.TempDir(), "missing.toml")}
	_, err := o.resolve(nil)
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error = %v, want a not-exist error", err)
	}
}

func TestResolveNoConfig(t *testing.T) {
	o := cliOptions{
		noConfig:    true,
		stdoutIsTTY: true,
		loadUserConfig: func() (*config.UserConfig, string, error) {
			t.Fatal("--no-config must not read the user config")
			return nil, "", nil
		},
	}
	r, err := o.resolve(nil)
	if err != nil {
		t.Fatal(err)
	}
	if r.configPath != "" {
		t.Errorf("configPath = %q, want none", r.configPath)
	}
	if r.cfg.TLS {
		t.Error("defaults shouldn't enable tls")
	}
}

func TestResolveTheme(t *testing.T) {
	o := cliOptions{noConfig: true, theme: "dracula", themeChanged: true}
	r, err := o.resolve(nil)
	if err != nil {
		t.Fatal(err)
	}
	if r.cfg.Theme != "dracula" {
		t.Errorf("theme = %q, want dracula", r.cfg.Theme)
	}
}
