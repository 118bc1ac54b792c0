package config

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/zjrosen/roleta/internal/log"
)

// DefaultDebounce collapses the burst of events editors produce on save.
const DefaultDebounce = 250 * time.Millisecond

// Reload is delivered after the watched file changes. Err is set when the
// new content could not be loaded; the previous config stays in effect.
type Reload struct {
	Config Config
	Err    error
}

// Watcher reloads a config file whenever it changes on disk.
type Watcher struct {
	path     string
	debounce time.Duration
	fsw      *fsnotify.Watcher
	reloads  chan Reload

	mu    sync.Mutex
	timer *time.Timer

	done      chan struct{}
	closeOnce sync.Once
}

// NewWatcher starts watching path. The parent directory is watched so that
// atomic rename-on-save keeps working.
func NewWatcher(path string, debounce time.Duration) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	w := &Watcher{
		path:     abs,
		debounce: debounce,
		fsw:      fsw,
		reloads:  make(chan Reload, 1),
		done:     make(chan struct{}),
	}
	log.SafeGo("config.watch", w.loop)
	return w, nil
}

// Reloads delivers the outcome of each debounced change. Only the latest
// pending reload is kept.
func (w *Watcher) Reloads() <-chan Reload {
	return w.reloads
}

// Close stops watching. It is safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		w.mu.Lock()
		if w.timer != nil {
			w.timer.Stop()
		}
		w.mu.Unlock()
		err = w.fsw.Close()
	})
	return err
}

func (w *Watcher) loop() {
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
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			log.Debug(log.CatConfig, "Config file changed", "path", w.path, "op", ev.Op.String())
			w.schedule()
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.ErrorErr(log.CatConfig, "Config watcher error", err)
		}
	}
}

func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.reload)
}

func (w *Watcher) reload() {
	cfg, _, err := Load(w.path)
	if err != nil {
		log.Warn(log.CatConfig, "Config reload failed", "path", w.path, "error", err)
	} else {
		log.Info(log.CatConfig, "Config reloaded", "path", w.path)
	}
	r := Reload{Config: cfg, Err: err}

	select {
	case <-w.done:
		return
	default:
	}
	// Drop a stale undelivered reload in favour of the newest one.
	select {
	case <-w.reloads:
	default:
	}
	select {
	case w.reloads <- r:
	default:
	}
}
