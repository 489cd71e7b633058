package config

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ReloadFunc is called with a freshly loaded Config, or a non-nil err if
// the reload failed (in which case the previous Config remains in effect).
type ReloadFunc func(Config, error)

// debounceWindow coalesces the burst of events some editors produce for a
// single save (write, then chmod, then a rename for atomic replace).
const debounceWindow = 200 * time.Millisecond

// Watcher reloads a Config from disk whenever its file changes.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	path      string
	onReload  ReloadFunc

	mu    sync.Mutex
	timer *time.Timer
}

// Watch loads path immediately and returns a Watcher that calls onReload
// every time the file subsequently changes. The caller owns the returned
// Watcher and must call Close to release the underlying fsnotify handle.
func Watch(path string, onReload ReloadFunc) (*Watcher, Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, Config{}, err
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, Config{}, err
	}

	// Watch the containing directory rather than the file itself: editors
	// that save atomically via rename leave the watch on a now-orphaned
	// inode otherwise.
	dir := filepath.Dir(path)
	if err := fsWatcher.Add(dir); err != nil {
		fsWatcher.Close()
		return nil, Config{}, err
	}

	w := &Watcher{fsWatcher: fsWatcher, path: filepath.Clean(path), onReload: onReload}
	go w.run()
	return w, cfg, nil
}

func (w *Watcher) run() {
	target := filepath.Base(w.path)
	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != target {
				continue
			}
			w.scheduleReload()
		case _, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
		}
	}
}

func (w *Watcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(debounceWindow, func() {
		cfg, err := Load(w.path)
		w.onReload(cfg, err)
	})
}

// Close stops watching and releases the underlying fsnotify handle.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	return w.fsWatcher.Close()
}
