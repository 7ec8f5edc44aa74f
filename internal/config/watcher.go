package config

import (
	"path/filepath"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// ConfigChangedMsg signals that the config file was written.
type ConfigChangedMsg struct {
	Path string
}

// WatchConfigCmd returns a command that blocks until the file at path is
// written or created, then reports it. Run it again after handling the
// message to keep watching.
func WatchConfigCmd(path string) tea.Cmd {
	return func() tea.Msg {
		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			log.Warn("config watcher unavailable", "err", err)
			return nil
		}
		defer func() { _ = watcher.Close() }()

		// Editors often replace the file, so watch the directory.
		dir := filepath.Dir(path)
		if err := watcher.Add(dir); err != nil {
			log.Warn("can't watch config dir", "dir", dir, "err", err)
			return nil
		}
		log.Debug("watching config", "path", path)

		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				if filepath.Clean(event.Name) != filepath.Clean(path) {
					continue
				}
				log.Info("config changed", "path", event.Name)
				return ConfigChangedMsg{Path: path}

			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				log.Warn("config watcher error", "err", err)
			}
		}
	}
}
