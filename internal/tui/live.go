package tui

import (
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"github.com/san-kum/wellview/internal/field"
)

type fieldMsg struct{ field *field.Field }

type watchErrMsg struct{ err error }

// watchField watches the directory holding path. Editors often replace a
// file by renaming over it, which a watch on the file itself would lose.
func watchField(path string) (*fsnotify.Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return nil, err
	}
	return w, nil
}

// waitForChange blocks until path is written or created, then reloads it.
func waitForChange(w *fsnotify.Watcher, path string) tea.Cmd {
	if w == nil {
		return nil
	}
	target := filepath.Clean(path)
	return func() tea.Msg {
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return nil
				}
				if filepath.Clean(ev.Name) != target {
					continue
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
					continue
				}
				f, err := field.Load(path)
				if err != nil {
					return watchErrMsg{err: err}
				}
				return fieldMsg{field: f}
			case err, ok := <-w.Errors:
				if !ok {
					return nil
				}
				return watchErrMsg{err: err}
			}
		}
	}
}
