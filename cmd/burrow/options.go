package main

import (
	"errors"
	"fmt"

	"github.com/Gaurav-Gosain/burrow/internal/config"
)

// runMode is how burrow shows the start page.
type runMode int

const (
	modeUI runMode = iota
	modePrint
	modeRaw
)

func (m runMode) String() string {
	switch m {
	case modePrint:
		return "print"
	case modeRaw:
		return "raw"
	}
	return "ui"
}

// Flag values for the root command.
type cliOptions struct {
	tls, noTLS     bool
	tor, noTor     bool
	raw, print     bool
	local, wide    bool
	configFile     string
	noConfig       bool
	theme          string
	debug          bool
	stdoutIsTTY    bool
	themeChanged   bool
	loadUserConfig func() (*config.UserConfig, string, error)
}

// resolved is everything the run functions need.
type resolved struct {
	mode       runMode
	cfg        *config.UserConfig
	configPath string // Empty when no file backs cfg
}

// resolve checks flag conflicts, loads the config and applies the flags on
// top of it.
func (o *cliOptions) resolve(args []string) (*resolved, error) {
	if len(args) > 1 {
		return nil, fmt.Errorf("unknown argument: %s", args[1])
	}
	if o.tls && o.noTLS {
		return nil, errors.New("can't set both --tls and --no-tls")
	}
	if o.tor && o.noTor {
		return nil, errors.New("can't set both --tor and --no-tor")
	}
	if o.configFile != "" && o.noConfig {
		return nil, errors.New("can't mix --config and --no-config")
	}
	if o.raw && len(args) == 0 {
		return nil, errors.New("--raw needs gopher-url")
	}

	r := &resolved{}
	switch {
	case o.noConfig:
		r.cfg = config.DefaultConfig()
	case o.configFile != "":
		cfg, err := config.LoadFile(o.configFile)
		if err != nil {
			return nil, fmt.Errorf("error loading config: %w", err)
		}
		r.cfg, r.configPath = cfg, o.configFile
	default:
		load := o.loadUserConfig
		if load == nil {
			load = loadXDGConfig
		}
		cfg, path, err := load()
		if err != nil {
			return nil, fmt.Errorf("error loading config: %w", err)
		}
		r.cfg, r.configPath = cfg, path
	}

	var over config.Overrides
	if o.local {
		over.Start = config.LocalStart
	}
	if len(args) == 1 {
		over.Start = args[0]
	}
	if o.tls || o.noTLS {
		over.TLS = &o.tls
	}
	if o.tor || o.noTor {
		over.Tor = &o.tor
	}
	if o.wide {
		over.Wide = &o.wide
	}
	if o.themeChanged {
		over.Theme = &o.theme
	}
	config.ApplyOverrides(over, r.cfg)

	if r.cfg.TLS && r.cfg.Tor {
		return nil, config.ErrTLSAndTor
	}

	switch {
	case o.raw:
		r.mode = modeRaw
	case o.print || !o.stdoutIsTTY:
		r.mode = modePrint
	default:
		r.mode = modeUI
	}
	return r, nil
}

// loadXDGConfig loads config.toml from the XDG config dir.
func loadXDGConfig() (*config.UserConfig, string, error) {
	path, err := config.GetConfigPath()
	if err != nil {
		return nil, "", err
	}
	cfg, err := config.LoadUserConfig()
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}
