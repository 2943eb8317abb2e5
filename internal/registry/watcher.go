package registry

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"chainlex/internal/logging"
)

// ReloadFunc is called with a freshly loaded registry after a debounced
// change to the framework directory. Implementations typically swap the
// new registry (and a rebuilt graph) into an atomic snapshot.
type ReloadFunc func(*Registry)

// Watcher watches a framework directory and reloads it when YAML files
// change. Rapid successive writes collapse into a single reload. A reload
// that fails validation or parsing is dropped and the previous registry
// stays in effect.
type Watcher struct {
	dir      string
	only     []string
	debounce time.Duration
	onReload ReloadFunc

	watcher *fsnotify.Watcher
	stopCh  chan struct{}
	doneCh  chan struct{}

	mu      sync.Mutex
	pending map[string]time.Time
	stats   WatcherStats
	started bool
	stopped bool
}

// WatcherStats tracks watcher activity.
type WatcherStats struct {
	EventsReceived  int64
	ReloadsApplied  int64
	ReloadsFailed   int64
	EventsDebounced int64
}

// NewWatcher creates a watcher for dir. Debounce <= 0 selects 500ms.
func NewWatcher(dir string, only []string, debounce time.Duration, onReload ReloadFunc) (*Watcher, error) {
	if onReload == nil {
		return nil, fmt.Errorf("reload callback required")
	}
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}
	return &Watcher{
		dir:      dir,
		only:     only,
		debounce: debounce,
		onReload: onReload,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
		pending:  make(map[string]time.Time),
	}, nil
}

// Start begins watching. Must be called at most once.
func (w *Watcher) Start() error {
	w.mu.Lock()
	if w.started {
		w.mu.Unlock()
		return fmt.Errorf("watcher already started")
	}
	w.started = true
	w.mu.Unlock()

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create fsnotify watcher: %w", err)
	}
	if err := fsw.Add(w.dir); err != nil {
		fsw.Close()
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}
	w.watcher = fsw

	go w.run()
	logging.Watcher("watching %s (debounce %v)", w.dir, w.debounce)
	return nil
}

// Stop shuts the watcher down and waits for its goroutine to exit.
// Safe to call before Start and more than once.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.started || w.stopped || w.watcher == nil {
		w.mu.Unlock()
		return
	}
	w.stopped = true
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh
	w.watcher.Close()
}

// Stats returns a snapshot of watcher activity counters.
func (w *Watcher) Stats() WatcherStats {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stats
}

func (w *Watcher) run() {
	defer close(w.doneCh)

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(ev)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logging.WatcherError("fsnotify error: %v", err)
		case <-ticker.C:
			w.processPending()
		}
	}
}

func (w *Watcher) handleEvent(ev fsnotify.Event) {
	switch filepath.Ext(ev.Name) {
	case ".yaml", ".yml":
	default:
		return
	}
	if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}

	w.mu.Lock()
	w.stats.EventsReceived++
	if _, already := w.pending[ev.Name]; already {
		w.stats.EventsDebounced++
	}
	w.pending[ev.Name] = time.Now()
	w.mu.Unlock()

	logging.WatcherDebug("event %s on %s", ev.Op, ev.Name)
}

// processPending reloads once no pending file has changed for the debounce
// window. All pending files collapse into one directory reload.
func (w *Watcher) processPending() {
	w.mu.Lock()
	if len(w.pending) == 0 {
		w.mu.Unlock()
		return
	}
	now := time.Now()
	for _, last := range w.pending {
		if now.Sub(last) < w.debounce {
			w.mu.Unlock()
			return
		}
	}
	w.pending = make(map[string]time.Time)
	w.mu.Unlock()

	reg, err := LoadDir(w.dir, w.only)
	if err != nil {
		w.mu.Lock()
		w.stats.ReloadsFailed++
		w.mu.Unlock()
		logging.WatcherError("reload of %s failed, keeping previous registry: %v", w.dir, err)
		return
	}
	if rep := Validate(reg); !rep.OK() {
		w.mu.Lock()
		w.stats.ReloadsFailed++
		w.mu.Unlock()
		logging.WatcherError("reload of %s rejected by validation: %v", w.dir, rep.Err())
		return
	}

	w.mu.Lock()
	w.stats.ReloadsApplied++
	w.mu.Unlock()

	logging.Watcher("reloaded %s: %d frameworks", w.dir, len(reg.Frameworks()))
	w.onReload(reg)
}
