// Package native opens URLs in the host desktop's default programs.
package native

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/charmbracelet/log"
)

// openCommand returns the command that opens target with the OS default
// application.
func openCommand(goos, target string) *exec.Cmd {
	switch goos {
	case "windows":
		// start is a cmd built-in; the empty string is the window title.
		return exec.Command("cmd", "/c", "start", "", target)
	case "darwin":
		return exec.Command("open", target)
	default:
		return exec.Command("xdg-open", target)
	}
}

// Open hands target (usually an http or mailto URL) to the OS default
// application. It does not wait for the application to exit.
func Open(target string) error {
	cmd := openCommand(runtime.GOOS, target)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("opening %s: %w", target, err)
	}
	log.Debug("opened externally", "target", target, "cmd", cmd.Path)
	go func() { _ = cmd.Wait() }()
	return nil
}
