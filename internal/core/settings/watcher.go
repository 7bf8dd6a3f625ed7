package settings

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/penwyp/go-baggage-monitor/internal/util"
)

// Watcher reports changes to the settings blob made outside this process.
// It only signals; the owner decides when to call Store.Reload.
type Watcher struct {
	watcher *fsnotify.Watcher
	file    string
	events  chan struct{}
	done    chan struct{}
}

// NewWatcher watches the directory containing file. Watching the directory
// rather than the file survives editors that replace it on save.
func NewWatcher(file string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create settings watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(file)); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(file), err)
	}

	w := &Watcher{
		watcher: fsw,
		file:    filepath.Clean(file),
		events:  make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	go w.processEvents()
	return w, nil
}

func (w *Watcher) processEvents() {
	defer close(w.done)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.file {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			// Coalesce bursts: one pending signal is enough
			select {
			case w.events <- struct{}{}:
			default:
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			util.LogError("Settings watcher error: " + err.Error())
		}
	}
}

// Events fires when the settings file may have changed
func (w *Watcher) Events() <-chan struct{} {
	return w.events
}

func (w *Watcher) Close() error {
	err := w.watcher.Close()
	<-w.done
	return err
}
