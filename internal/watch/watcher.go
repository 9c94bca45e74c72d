// Package watch re-runs a handler whenever a form-state file changes on disk.
package watch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"connectorauth/pkg/logging"
)

// DefaultDebounce is how long to wait for further events before handling a
// change.
const DefaultDebounce = 200 * time.Millisecond

// Handler is invoked with the watched path after every settled change and
// once at start. Errors are logged; watching continues.
type Handler func(ctx context.Context, path string) error

// Watcher watches a single file.
//
// The parent directory is watched rather than the file itself, so editors
// that save by renaming a temporary file over the original keep being
// followed. All handler invocations run on the goroutine calling Run.
type Watcher struct {
	path     string
	debounce time.Duration
	handler  Handler
}

// New creates a watcher for path. A zero debounce uses DefaultDebounce.
func New(path string, debounce time.Duration, handler Handler) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{path: filepath.Clean(path), debounce: debounce, handler: handler}
}

// Run handles the file once, then blocks handling changes until ctx is
// cancelled. It returns nil on cancellation.
func (w *Watcher) Run(ctx context.Context) error {
	if w.handler == nil {
		return errors.New("watch handler is required")
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer fsw.Close()

	dir := filepath.Dir(w.path)
	if err := fsw.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	logging.Info("Watch", "Watching %s for changes", w.path)

	w.handle(ctx)

	// A stopped timer with a drained channel; reset on every relevant event.
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			logging.Debug("Watch", "Stopped watching %s", w.path)
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				logging.Debug("Watch", "%s was removed, waiting for it to reappear", w.path)
				continue
			}
			timer.Reset(w.debounce)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logging.Error("Watch", err, "File watcher error")

		case <-timer.C:
			w.handle(ctx)
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Create) || event.Has(fsnotify.Write) ||
		event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
}

func (w *Watcher) handle(ctx context.Context) {
	if err := w.handler(ctx, w.path); err != nil {
		logging.Error("Watch", err, "Failed to handle %s", w.path)
	}
}
