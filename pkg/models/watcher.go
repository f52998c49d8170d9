package models

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period between a file change and its reload.
const DefaultDebounce = 100 * time.Millisecond

// Watcher reloads a mesh file whenever it changes on disk. Reloads run on
// the watcher's goroutines; the callback must hand the mesh off rather than
// touch render state directly.
type Watcher struct {
	watcher  *fsnotify.Watcher
	path     string
	debounce time.Duration
	logger   *log.Logger
	onReload func(*Mesh)

	mu     sync.Mutex
	timer  *time.Timer
	closed bool
}

// NewWatcher watches path and calls onReload with each successfully
// reloaded mesh. Failed reloads are logged and the previous mesh stays.
func NewWatcher(path string, debounce time.Duration, logger *log.Logger, onReload func(*Mesh)) (*Watcher, error) {
	if logger == nil {
		logger = log.Default()
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path %s: %w", path, err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	// Watch the directory so editors that replace the file by rename are seen.
	if err := fw.Add(filepath.Dir(absPath)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", absPath, err)
	}

	return &Watcher{
		watcher:  fw,
		path:     absPath,
		debounce: debounce,
		logger:   logger,
		onReload: onReload,
	}, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Start begins watching for file changes.
func (w *Watcher) Start() {
	go func() {
		for {
			select {
			case event, ok := <-w.watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != w.path {
					continue
				}
				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
					w.schedule()
				}

			case err, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
				w.logger.Error("watcher error", "path", w.path, "err", err)
			}
		}
	}()
}

// schedule restarts the debounce timer.
func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.reload)
}

func (w *Watcher) reload() {
	mesh, err := Load(w.path, w.logger)
	if err != nil {
		w.logger.Warn("reload failed", "path", w.path, "err", err)
		return
	}

	w.mu.Lock()
	closed := w.closed
	w.mu.Unlock()
	if closed {
		return
	}

	w.logger.Info("reloaded mesh", "path", w.path, "triangles", mesh.TriangleCount())
	w.onReload(mesh)
}

// Close stops the watcher and cancels any pending reload.
func (w *Watcher) Close() error {
	w.mu.Lock()
	w.closed = true
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	return w.watcher.Close()
}
