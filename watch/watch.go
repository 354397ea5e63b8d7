// Package watch delivers directory change notifications from fsnotify.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/hayeah/dirproject/internal/set"
	"github.com/hayeah/dirproject/mirror"
)

// DefaultDebounce is the quiet period before pending changes are delivered.
const DefaultDebounce = 100 * time.Millisecond

// Watcher registers directories with fsnotify and reports which directories
// had entries created, removed or renamed. It implements mirror.Watcher.
type Watcher struct {
	fsw      *fsnotify.Watcher
	log      *slog.Logger
	debounce time.Duration
}

// New starts an fsnotify watcher. A negative debounce delivers every change
// as soon as it arrives.
func New(logger *slog.Logger, debounce time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{fsw: fsw, log: logger, debounce: debounce}, nil
}

// Watch registers path. Only changes directly inside path are reported.
func (w *Watcher) Watch(path string) error {
	if err := w.fsw.Add(path); err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}
	return nil
}

// Unwatch removes the registration for path. fsnotify drops watches of
// deleted directories on its own, so that case returns an error callers may
// ignore.
func (w *Watcher) Unwatch(path string) error {
	if err := w.fsw.Remove(path); err != nil {
		return fmt.Errorf("failed to unwatch %s: %w", path, err)
	}
	return nil
}

// WatchList returns the registered paths.
func (w *Watcher) WatchList() []string {
	return w.fsw.WatchList()
}

// Run delivers changed directories to onChanged until ctx is done or the
// watcher is closed. Changes arriving within the debounce window are coalesced
// and delivered once each, in arrival order. onChanged is only ever called
// from the Run goroutine.
func (w *Watcher) Run(ctx context.Context, onChanged func(dir string)) error {
	pending := set.New[string]()

	var timer *time.Timer
	var fire <-chan time.Time

	flush := func() {
		dirs := pending.Values()
		pending = set.New[string]()
		for _, dir := range dirs {
			onChanged(dir)
		}
	}

	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			dir, changed := changedDir(event)
			if !changed {
				continue
			}
			w.log.Debug("directory changed", "dir", dir, "op", event.Op.String(), "name", event.Name)

			pending.Add(dir)
			if w.debounce < 0 {
				flush()
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			flush()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watcher error", "error", err)
		}
	}
}

// changedDir maps an event to the directory whose child set may have changed.
// Writes and attribute changes never add or remove entries, except that a
// write to an ignore rules file can change which entries pass the filter.
func changedDir(event fsnotify.Event) (string, bool) {
	if event.Has(fsnotify.Write) && filepath.Base(event.Name) == mirror.GitIgnoreFile {
		return filepath.Dir(event.Name), true
	}
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return "", false
	}
	return filepath.Dir(event.Name), true
}

// Close stops the watcher. A running Run returns.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}
