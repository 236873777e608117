// Package watcher triggers a callback when files in a directory change.
package watcher

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce coalesces bursts of writes from editors and copy tools
const DefaultDebounce = 500 * time.Millisecond

// Watcher watches a directory for changes to matching files
type Watcher struct {
	dir      string
	match    func(path string) bool
	onChange func()
	debounce time.Duration
	logger   *log.Logger
}

// New creates a directory watcher. match selects the files of interest;
// nil matches everything.
func New(dir string, match func(path string) bool, onChange func(), logger *log.Logger) *Watcher {
	if match == nil {
		match = func(string) bool { return true }
	}
	return &Watcher{
		dir:      dir,
		match:    match,
		onChange: onChange,
		debounce: DefaultDebounce,
		logger:   logger.With("component", "watcher"),
	}
}

// WithDebounce sets the debounce duration
func (w *Watcher) WithDebounce(d time.Duration) *Watcher {
	w.debounce = d
	return w
}

// Watch blocks until the context is cancelled or the watcher fails.
// Renames and removals count as changes so a replaced file is picked up.
func (w *Watcher) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(w.dir); err != nil {
		return err
	}

	w.logger.Info("watching for changes", "dir", w.dir)

	var (
		mu    sync.Mutex
		timer *time.Timer
	)
	defer func() {
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
	}()

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !w.match(event.Name) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
				continue
			}

			name := event.Name
			mu.Lock()
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounce, func() {
				w.logger.Info("file changed", "path", name)
				w.onChange()
			})
			mu.Unlock()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", "err", err)

		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
