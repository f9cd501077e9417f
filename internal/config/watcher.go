package config

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads the configuration when config.json changes on disk.
type Watcher struct {
	manager  Watched
	watcher  *fsnotify.Watcher
	onReload func(*Config)
	debounce time.Duration

	mu      sync.Mutex
	pending bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// Watched is the subset of Manager the watcher needs.
type Watched interface {
	GetConfigPath() string
	Load() (*Config, error)
}

// NewWatcher creates a watcher over the manager's config file. onReload is
// called with the freshly loaded config after each settled burst of writes.
func NewWatcher(m Watched, onReload func(*Config)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Watcher{
		manager:  m,
		watcher:  fsw,
		onReload: onReload,
		debounce: 500 * time.Millisecond,
		ctx:      ctx,
		cancel:   cancel,
	}, nil
}

// Start begins watching. Editors replace files rather than write in place,
// so the watch is on the directory, filtered to the config path.
func (w *Watcher) Start() error {
	dir := filepath.Dir(w.manager.GetConfigPath())
	if err := w.watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch config dir: %w", err)
	}

	w.wg.Add(2)
	go w.eventLoop()
	go w.debounceLoop()
	return nil
}

// Stop stops watching and waits for the loops to exit.
func (w *Watcher) Stop() error {
	w.cancel()
	w.wg.Wait()
	return w.watcher.Close()
}

func (w *Watcher) eventLoop() {
	defer w.wg.Done()

	target := w.manager.GetConfigPath()
	for {
		select {
		case <-w.ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(target) {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				w.mu.Lock()
				w.pending = true
				w.mu.Unlock()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("config watcher error: %v", err)
		}
	}
}

func (w *Watcher) debounceLoop() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return

		case <-ticker.C:
			w.mu.Lock()
			fire := w.pending
			w.pending = false
			w.mu.Unlock()
			if !fire {
				continue
			}

			cfg, err := w.manager.Load()
			if err != nil {
				// Keep running with the previous config on a bad edit.
				log.Printf("config reload failed: %v", err)
				continue
			}
			if w.onReload != nil {
				w.onReload(cfg)
			}
		}
	}
}
