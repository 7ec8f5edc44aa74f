// Package main implements burrow, a terminal Gopher client.
// burrow browses Gopher menus and text with the keyboard, and can print a
// page once or serve the browser to SSH clients.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/Gaurav-Gosain/burrow/internal/config"
	"github.com/Gaurav-Gosain/burrow/internal/terminal"
)

// Version information (set by goreleaser)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
	builtBy = "unknown"
)

func main() {
	if err := fang.Execute(
		context.Background(),
		newRootCmd(),
		fang.WithVersion(fmt.Sprintf("%s\nCommit: %s\nBuilt: %s\nBy: %s", version, commit, date, builtBy)),
	); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}

	rootCmd := &cobra.Command{
		Use:   "burrow [gopher-url]",
		Short: "A Gopher client for the terminal",
		Long: `burrow - a Gopher client for the terminal

Browse Gopherspace with the keyboard: pick links by number or by typing
part of their name, page through text, and go back and forward through
your history.`,
		Example: `  # Open the default start page
  burrow

  # Open a specific page
  burrow gopher://gopher.floodgap.com/1/world

  # Print a page and exit
  burrow --print sdf.org

  # Dump the raw response
  burrow --raw gopher://sdf.org/0/users/

  # Connect over Tor
  burrow --tor sdf.org`,
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.stdoutIsTTY = terminal.IsTerminal(os.Stdout)
			opts.themeChanged = cmd.Flags().Changed("theme")
			r, err := opts.resolve(args)
			if err != nil {
				return err
			}
			switch r.mode {
			case modeRaw:
				return runRaw(cmd.Context(), r, os.Stdout)
			case modePrint:
				return runPrint(cmd.Context(), r, os.Stdout)
			}
			return runLocal(r, opts.debug)
		},
		SilenceUsage: true,
	}

	f := rootCmd.Flags()
	f.BoolVarP(&opts.tls, "tls", "s", false, "Connect with TLS")
	f.BoolVarP(&opts.noTLS, "no-tls", "S", false, "Connect without TLS")
	f.BoolVarP(&opts.tor, "tor", "o", false, "Route connections through Tor")
	f.BoolVarP(&opts.noTor, "no-tor", "O", false, "Don't use Tor")
	f.BoolVarP(&opts.raw, "raw", "r", false, "Print the raw response of gopher-url and exit")
	f.BoolVarP(&opts.print, "print", "p", false, "Print the rendered page and exit")
	f.BoolVarP(&opts.local, "local", "l", false, "Open "+config.LocalStart)
	f.StringVarP(&opts.configFile, "config", "c", "", "Use this config file")
	f.BoolVarP(&opts.noConfig, "no-config", "C", false, "Ignore the config file")
	f.BoolVarP(&opts.wide, "wide", "w", false, "Start with centering turned off")
	f.StringVar(&opts.theme, "theme", "", "bubbletint theme ID")
	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(newServeCmd(opts), newConfigCmd(), newKeybindsCmd())
	return rootCmd
}

func newServeCmd(opts *cliOptions) *cobra.Command {
	var host, port, keyPath string

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve burrow over SSH",
		Long: `Run burrow as an SSH server

Every SSH connection gets its own browsing session. The server will
generate a host key automatically if not specified. Downloads are
disabled for SSH sessions.`,
		Example: `  # Start SSH server on default port
  burrow serve

  # Start on custom port
  burrow serve --port 2222

  # Specify custom host key
  burrow serve --key-path /path/to/host_key`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.stdoutIsTTY = true
			r, err := opts.resolve(nil)
			if err != nil {
				return err
			}
			return runSSHServer(r, host, port, keyPath, opts.debug)
		},
	}

	serveCmd.Flags().StringVar(&port, "port", "2222", "SSH server port")
	serveCmd.Flags().StringVar(&host, "host", "localhost", "SSH server host")
	serveCmd.Flags().StringVar(&keyPath, "key-path", "", "Path to SSH host key (auto-generated if not specified)")
	return serveCmd
}

func newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage burrow configuration",
		Long:  `Manage the burrow configuration file and settings`,
	}

	configPathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print configuration file path",
		Long:  `Print the path to the burrow configuration file`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printConfigPath(cmd.OutOrStdout())
		},
	}

	configEditCmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit configuration in $EDITOR",
		Long: `Open the burrow configuration file in your default editor

The editor is determined by checking $EDITOR, $VISUAL, or common editors
like vim, vi, nano, and emacs in that order.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return editConfigFile()
		},
	}

	configResetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset configuration to defaults",
		Long: `Reset the burrow configuration file to default settings

This will overwrite your existing configuration after confirmation.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.GetConfigPath()
			if err != nil {
				return fmt.Errorf("could not determine config path: %w", err)
			}
			return resetConfigToDefaults(cmd.InOrStdin(), cmd.OutOrStdout(), path)
		},
	}

	configCmd.AddCommand(configPathCmd, configEditCmd, configResetCmd)
	return configCmd
}

func newKeybindsCmd() *cobra.Command {
	keybindsCmd := &cobra.Command{
		Use:     "keybinds",
		Aliases: []string{"keys", "kb"},
		Short:   "View keybinding configuration",
		Long:    `View and inspect burrow keybinding configuration`,
	}

	keybindsListCmd := &cobra.Command{
		Use:   "list",
		Short: "List all keybindings",
		Long:  `Display all keybindings in a formatted table`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listKeybindings(cmd.OutOrStdout())
		},
	}

	keybindsCustomCmd := &cobra.Command{
		Use:   "list-custom",
		Short: "List customized keybindings",
		Long: `Display only keybindings that differ from defaults

Shows a comparison of default and custom keybindings.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listCustomKeybindings(cmd.OutOrStdout())
		},
	}

	keybindsCmd.AddCommand(keybindsListCmd, keybindsCustomCmd)
	return keybindsCmd
}
