package tui

import (
	"log"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
	"github.com/handiism/albumgrid/internal/config"
)

// ConfigChangedMsg is sent after the watched settings file changed.
type ConfigChangedMsg struct {
	Path     string
	Settings *config.Settings
	Err      error
}

// Watcher reports changes of one settings file.
//
// The directory is watched rather than the file, so editors that replace
// the file on save are still noticed.
type Watcher struct {
	path    string
	watcher *fsnotify.Watcher
}

// NewWatcher starts watching path.
func NewWatcher(path string) (*Watcher, error) {
	path, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return nil, err
	}
	log.Printf("Watching for config changes in: %s", path)
	return &Watcher{path: path, watcher: w}, nil
}

// Next returns a command that blocks until the file changes and reloads it.
// The command returns nil once the watcher is closed.
func (w *Watcher) Next() tea.Cmd {
	return func() tea.Msg {
		for {
			select {
			case event, ok := <-w.watcher.Events:
				if !ok {
					return nil
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				if filepath.Clean(event.Name) != w.path {
					continue
				}
				log.Printf("Detected change in: %s", event.Name)
				settings, err := config.Load(w.path)
				return ConfigChangedMsg{Path: w.path, Settings: settings, Err: err}

			case err, ok := <-w.watcher.Errors:
				if !ok {
					return nil
				}
				log.Printf("File watcher error: %v", err)
			}
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
