package config

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/andyrewlee/autoscroll/internal/debounce"
	"github.com/andyrewlee/autoscroll/internal/logging"
)

// WatchDebounce is how long a file must be quiet before a change is
// reported. Editors often write a file in several steps.
const WatchDebounce = 150 * time.Millisecond

// Watcher reports edits to a fixed set of files. Parent directories are
// watched so files replaced by rename are still seen.
type Watcher struct {
	watcher   *fsnotify.Watcher
	onChanged func(path string)

	mu        sync.Mutex
	files     map[string]*debounce.Debouncer
	closed    bool
	closeOnce sync.Once
}

// NewWatcher watches paths and calls onChanged (from a timer goroutine)
// once per burst of changes to each file. Empty paths are skipped.
func NewWatcher(onChanged func(path string), wait time.Duration, paths ...string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if wait <= 0 {
		wait = WatchDebounce
	}
	w := &Watcher{
		watcher:   fw,
		onChanged: onChanged,
		files:     make(map[string]*debounce.Debouncer),
	}
	dirs := map[string]struct{}{}
	for _, p := range paths {
		if p == "" {
			continue
		}
		clean := filepath.Clean(p)
		if _, ok := w.files[clean]; ok {
			continue
		}
		w.files[clean] = debounce.New(wait, func() { w.notify(clean) })
		dirs[filepath.Dir(clean)] = struct{}{}
	}
	for dir := range dirs {
		if err := fw.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
	}
	return w, nil
}

// Run consumes filesystem events until ctx is done or the watcher closes.
func (w *Watcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handle(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			logging.Debug("config watcher: %v", err)
		}
	}
}

// Close stops watching and drops pending notifications.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		w.mu.Lock()
		w.closed = true
		for _, d := range w.files {
			d.Stop()
		}
		w.mu.Unlock()
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) handle(event fsnotify.Event) {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
		return
	}
	w.mu.Lock()
	d, ok := w.files[filepath.Clean(event.Name)]
	closed := w.closed
	w.mu.Unlock()
	if ok && !closed {
		d.Trigger()
	}
}

func (w *Watcher) notify(path string) {
	w.mu.Lock()
	closed := w.closed
	w.mu.Unlock()
	if closed || w.onChanged == nil {
		return
	}
	w.onChanged(path)
}
