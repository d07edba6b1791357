package config

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ChangeHandler receives a freshly loaded and validated configuration.
type ChangeHandler func(cfg *Config)

// ErrorHandler receives reload and watch errors.
type ErrorHandler func(err error)

// Watcher reloads a configuration file when it changes on disk.
//
// The parent directory is watched rather than the file itself so editors
// that replace the file through a rename are still observed.
type Watcher struct {
	mu sync.Mutex

	path   string
	loader *Loader
	fsw    *fsnotify.Watcher

	onChange ChangeHandler
	onError  ErrorHandler

	// Debounce settings
	debounce time.Duration
	timer    *time.Timer

	closed bool
	done   chan struct{}
	wg     sync.WaitGroup
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce sets how long the watcher waits for writes to settle.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d >= 0 {
			w.debounce = d
		}
	}
}

// WithErrorHandler sets the error callback.
func WithErrorHandler(h ErrorHandler) WatcherOption {
	return func(w *Watcher) {
		w.onError = h
	}
}

// WithLoader sets the loader used on reload.
func WithLoader(l *Loader) WatcherOption {
	return func(w *Watcher) {
		if l != nil {
			w.loader = l
		}
	}
}

// NewWatcher starts watching path and calls onChange after every
// successful reload.
func NewWatcher(path string, onChange ChangeHandler, opts ...WatcherOption) (*Watcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		path:     absPath,
		loader:   NewLoader(),
		onChange: onChange,
		debounce: 100 * time.Millisecond,
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating config watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(absPath)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", absPath, err)
	}
	w.fsw = fsw

	w.wg.Add(1)
	go w.loop()

	return w, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Close stops the watcher. Pending reloads are discarded.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return ErrWatcherClosed
	}
	w.closed = true
	if w.timer != nil {
		w.timer.Stop()
	}
	close(w.done)
	w.mu.Unlock()

	err := w.fsw.Close()
	w.wg.Wait()
	return err
}

func (w *Watcher) loop() {
	defer w.wg.Done()

	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
				w.schedule()
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.reportError(err)
		}
	}
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
	w.mu.Lock()
	closed := w.closed
	w.mu.Unlock()
	if closed {
		return
	}

	cfg, err := w.loader.Load(w.path)
	if err != nil {
		w.reportError(err)
		return
	}
	if w.onChange != nil {
		w.onChange(cfg)
	}
}

func (w *Watcher) reportError(err error) {
	if w.onError != nil {
		w.onError(err)
	}
}
