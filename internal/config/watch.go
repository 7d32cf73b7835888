package config

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dshills/wheelnorm/internal/logging"
	"github.com/dshills/wheelnorm/internal/schedule"
)

// DefaultReloadDelay is how long the watcher waits for writes to settle.
const DefaultReloadDelay = 100 * time.Millisecond

// ReloadHandler receives a freshly loaded configuration.
type ReloadHandler func(*Config)

// Watcher reloads a configuration file when it changes.
//
// The parent directory is watched rather than the file itself so that
// editors replacing the file through a rename are noticed. Bursts of
// events are collapsed with a debouncer; a reload that fails to load or
// validate is reported to the error handler and the previous
// configuration stays in effect.
type Watcher struct {
	mu sync.Mutex

	path    string
	fsw     *fsnotify.Watcher
	logger  *logging.Logger
	reload  *schedule.Debouncer[struct{}]
	handler ReloadHandler
	onError func(error)

	closed   bool
	closeCh  chan struct{}
	closedWg sync.WaitGroup
}

// WatcherOption configures a Watcher.
type WatcherOption func(*watcherOptions)

type watcherOptions struct {
	clock   schedule.Clock
	delay   time.Duration
	logger  *logging.Logger
	onError func(error)
}

// WithReloadDelay sets the debounce delay.
func WithReloadDelay(d time.Duration) WatcherOption {
	return func(o *watcherOptions) {
		if d > 0 {
			o.delay = d
		}
	}
}

// WithWatcherClock sets the clock driving the debounce.
func WithWatcherClock(clock schedule.Clock) WatcherOption {
	return func(o *watcherOptions) {
		o.clock = clock
	}
}

// WithWatcherLogger sets the logger.
func WithWatcherLogger(logger *logging.Logger) WatcherOption {
	return func(o *watcherOptions) {
		o.logger = logger
	}
}

// WithErrorHandler sets the handler for reload and watch errors.
func WithErrorHandler(fn func(error)) WatcherOption {
	return func(o *watcherOptions) {
		o.onError = fn
	}
}

// NewWatcher starts watching the configuration file at path.
func NewWatcher(path string, handler ReloadHandler, opts ...WatcherOption) (*Watcher, error) {
	o := watcherOptions{
		clock:  schedule.System(),
		delay:  DefaultReloadDelay,
		logger: logging.Nop(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(absPath)); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	w := &Watcher{
		path:    absPath,
		fsw:     fsw,
		logger:  o.logger.WithComponent("config"),
		handler: handler,
		onError: o.onError,
		closeCh: make(chan struct{}),
	}
	w.reload = schedule.NewDebouncer(o.clock, o.delay, func(struct{}) { _ = w.Reload() })

	w.closedWg.Add(1)
	go w.processLoop()

	return w, nil
}

// Path returns the absolute path of the watched file.
func (w *Watcher) Path() string {
	return w.path
}

// Reload loads the file immediately and delivers it to the handler.
// Load failures are also passed to the error handler. After Close it
// returns ErrWatcherClosed.
func (w *Watcher) Reload() error {
	w.mu.Lock()
	closed := w.closed
	w.mu.Unlock()
	if closed {
		return ErrWatcherClosed
	}

	cfg, err := Load(w.path)
	if err != nil {
		w.logger.Warn("config reload failed", "path", w.path, "error", err)
		w.reportError(err)
		return err
	}
	w.logger.Info("config reloaded", "path", w.path)
	if w.handler != nil {
		w.handler(cfg)
	}
	return nil
}

// Close stops the watcher. Pending reloads are dropped.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.closeCh)
	w.mu.Unlock()

	w.reload.Cancel()
	err := w.fsw.Close()
	w.closedWg.Wait()
	return err
}

// processLoop handles incoming fsnotify events.
func (w *Watcher) processLoop() {
	defer w.closedWg.Done()

	for {
		select {
		case <-w.closeCh:
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handleFSEvent(ev)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error", "error", err)
			w.reportError(err)
		}
	}
}

// handleFSEvent schedules a reload for changes to the watched file.
func (w *Watcher) handleFSEvent(ev fsnotify.Event) {
	if filepath.Clean(ev.Name) != w.path {
		return
	}
	if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) && !ev.Op.Has(fsnotify.Rename) {
		return
	}
	w.logger.Debug("config file changed", "op", ev.Op.String())
	w.reload.Call(struct{}{})
}

func (w *Watcher) reportError(err error) {
	if w.onError != nil {
		w.onError(err)
	}
}
