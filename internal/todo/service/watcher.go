package service

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"deskmate/internal/logs"
)

// WatchMarkdown watches the exported Markdown file and signals on the
// returned channel whenever it is written from outside the app, so the TUI
// can offer a re-import. The directory is watched rather than the file
// itself, since editors often replace the file on save.
func WatchMarkdown(path string) (<-chan struct{}, func(), error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, err
	}

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, nil, err
	}

	changed := make(chan struct{}, 1)
	target := filepath.Clean(path)

	go func() {
		for {
			select {
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != target {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				select {
				case changed <- struct{}{}:
				default:
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logs.Logger.Printf("markdown watcher error: %v", err)
			}
		}
	}()

	stop := func() {
		watcher.Close()
	}
	return changed, stop, nil
}
