// Package watcher hot-reloads the registry when script files change on
// disk.
package watcher

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/sudo-give-me-coffee/Boop-GTK/internal/loader"
	"github.com/sudo-give-me-coffee/Boop-GTK/internal/registry"
)

// Invalidator evicts a compiled script revision. The sandbox runner
// satisfies it.
type Invalidator interface {
	Invalidate(identifier string)
}

// Watcher follows a scripts directory and keeps a registry in sync with
// it. Rapid successive writes to the same file collapse into one reload.
type Watcher struct {
	mu       sync.Mutex
	fsw      *fsnotify.Watcher
	dir      string
	registry *registry.Registry
	cache    Invalidator
	log      *zap.Logger

	pending  map[string]time.Time
	debounce time.Duration
	stopCh   chan struct{}
	doneCh   chan struct{}
	running  bool
}

// New builds a Watcher over dir. Call Start to begin receiving events.
func New(dir string, reg *registry.Registry, cache Invalidator, log *zap.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Watcher{
		fsw:      fsw,
		dir:      dir,
		registry: reg,
		cache:    cache,
		log:      log,
		pending:  make(map[string]time.Time),
		debounce: 500 * time.Millisecond,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Start begins watching. Non-blocking; the event loop runs on its own
// goroutine until Stop or ctx cancellation.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		w.log.Warn("failed to create scripts dir", zap.String("dir", w.dir), zap.Error(err))
	}
	if err := w.watchTree(w.dir); err != nil {
		w.log.Warn("initial watch failed", zap.String("dir", w.dir), zap.Error(err))
	} else {
		w.log.Info("watching scripts directory", zap.String("dir", w.dir))
	}

	go w.run(ctx)
	return nil
}

// watchTree adds dir and every directory below it to the watch set, so
// scripts in subdirectories reload like top-level ones.
func (w *Watcher) watchTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		return w.fsw.Add(path)
	})
}

// Stop shuts the watcher down and waits for the event loop to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh
	_ = w.fsw.Close()
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	tick := time.NewTicker(100 * time.Millisecond)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch error", zap.Error(err))
		case <-tick.C:
			w.flushSettled()
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			w.watchNewDir(event.Name)
			return
		}
	}
	if !strings.EqualFold(filepath.Ext(event.Name), loader.Ext) {
		return
	}
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}
	w.mu.Lock()
	w.pending[event.Name] = time.Now()
	w.mu.Unlock()
}

// watchNewDir starts following a directory created after Start and
// queues any scripts already inside it; files moved in together with
// the directory never raise events of their own.
func (w *Watcher) watchNewDir(dir string) {
	if err := w.watchTree(dir); err != nil {
		w.log.Warn("failed to watch new directory", zap.String("dir", dir), zap.Error(err))
		return
	}
	sources, err := loader.LoadDir(dir)
	if err != nil {
		w.log.Warn("failed to scan new directory", zap.String("dir", dir), zap.Error(err))
		return
	}
	now := time.Now()
	w.mu.Lock()
	for _, src := range sources {
		w.pending[src.Path] = now
	}
	w.mu.Unlock()
}

// flushSettled applies every pending change whose last event is older than
// the debounce window.
func (w *Watcher) flushSettled() {
	w.mu.Lock()
	now := time.Now()
	var settled []string
	for path, at := range w.pending {
		if now.Sub(at) >= w.debounce {
			settled = append(settled, path)
			delete(w.pending, path)
		}
	}
	w.mu.Unlock()

	for _, path := range settled {
		w.sync(path)
	}
}

// sync reconciles one script path with the registry: reload when the file
// exists, evict when it is gone. Either way the compiled handle for the
// old revision is dropped; in-flight runs keep the handle they started
// with.
func (w *Watcher) sync(path string) {
	src, err := loader.LoadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			id := registry.IdentifierForPath(path)
			if w.registry.Remove(id) {
				w.invalidate(id)
				w.log.Info("script removed", zap.String("identifier", id))
			}
			return
		}
		w.log.Warn("failed to read changed script", zap.String("path", path), zap.Error(err))
		return
	}

	d, err := w.registry.Reload(src)
	if err != nil {
		w.log.Warn("changed script rejected", zap.String("path", path), zap.Error(err))
		return
	}
	w.invalidate(d.Identifier)
	w.log.Info("script reloaded", zap.String("identifier", d.Identifier))
}

func (w *Watcher) invalidate(id string) {
	if w.cache != nil {
		w.cache.Invalidate(id)
	}
}

