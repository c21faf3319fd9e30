package tui

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"github.com/eladbash/jdx/internal/jsonval"
)

// fileChangedMsg signals that the watched document was rewritten on disk.
type fileChangedMsg struct{}

// watchErrMsg carries a watcher failure.
type watchErrMsg struct{ err error }

// watchFile blocks until the file is written to, then reports the change.
// Each delivery re-arms the watcher, so the command is re-issued from Update.
func watchFile(path string) tea.Cmd {
	return func() tea.Msg {
		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return watchErrMsg{err: fmt.Errorf("create watcher: %w", err)}
		}
		defer watcher.Close()

		if err := watcher.Add(path); err != nil {
			return watchErrMsg{err: fmt.Errorf("watch %s: %w", path, err)}
		}

		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return watchErrMsg{err: fmt.Errorf("watcher closed")}
				}
				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
					return fileChangedMsg{}
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return watchErrMsg{err: fmt.Errorf("watcher closed")}
				}
				return watchErrMsg{err: err}
			}
		}
	}
}

// loadFile reads and decodes the document for a reload.
func loadFile(path string) (jsonval.Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return jsonval.Decode(data)
}
