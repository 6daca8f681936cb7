// Package watch re-runs a callback when any of a set of files changes on disk.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/Faultbox/sureuv/internal/logger"
)

// DefaultDebounce is used when New is given a non-positive debounce.
const DefaultDebounce = 200 * time.Millisecond

// Watcher coalesces change events for a fixed set of files.
// Parent directories are watched rather than the files themselves so that
// editors which save by rename keep triggering.
type Watcher struct {
	fs       *fsnotify.Watcher
	files    map[string]bool
	debounce time.Duration
}

// New starts watching the given files. Empty paths are ignored.
func New(debounce time.Duration, paths ...string) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	w := &Watcher{
		fs:       fsw,
		files:    make(map[string]bool),
		debounce: debounce,
	}

	dirs := make(map[string]bool)
	for _, p := range paths {
		if p == "" {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			fsw.Close()
			return nil, fmt.Errorf("resolve %s: %w", p, err)
		}
		w.files[abs] = true

		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, fmt.Errorf("watch %s: %w", dir, err)
		}
		dirs[dir] = true
	}

	return w, nil
}

// Files returns the number of files being watched.
func (w *Watcher) Files() int {
	return len(w.files)
}

// Close stops the underlying watcher. Run returns once its channels close.
func (w *Watcher) Close() error {
	return w.fs.Close()
}

// Run blocks until ctx is done or the watcher is closed, calling fn with the
// last changed path once events have been quiet for the debounce interval.
// Calls to fn never overlap.
func (w *Watcher) Run(ctx context.Context, fn func(path string)) error {
	var (
		timer   *time.Timer
		fire    <-chan time.Time
		pending string
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			logger.Debug("file changed", zap.String("path", event.Name), zap.Stringer("op", event.Op))
			pending = event.Name
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			fn(pending)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return false
	}
	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	return w.files[abs]
}
