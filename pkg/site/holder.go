package site

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	theme "github.com/goliatone/go-theme"
)

// Snapshot is a loaded configuration with its resolved theme.
type Snapshot struct {
	Config Config
	Theme  *theme.RendererConfig
}

// Resolve selects the configured theme and flattens it for renderers.
func Resolve(cfg Config) (Snapshot, error) {
	themes, err := NewThemes(cfg.Theme.Variant, cfg.Theme.Manifest())
	if err != nil {
		return Snapshot{}, err
	}
	selection, err := themes.Select(cfg.Theme.Name, cfg.Theme.Variant)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{Config: cfg, Theme: RendererConfig(selection)}, nil
}

// Holder serves the current snapshot to concurrent readers and swaps it when
// the configuration file changes.
type Holder struct {
	mu       sync.RWMutex
	path     string
	snapshot Snapshot
}

// NewHolder loads path (defaults when empty or missing) and resolves it.
func NewHolder(path string) (*Holder, error) {
	h := &Holder{path: path}
	if err := h.Reload(); err != nil {
		return nil, err
	}
	return h, nil
}

// Snapshot returns the current configuration and theme.
func (h *Holder) Snapshot() Snapshot {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.snapshot
}

// Reload reads the file again. On failure the previous snapshot stays in
// place.
func (h *Holder) Reload() error {
	cfg, err := Load(h.path)
	if err != nil {
		return err
	}
	snapshot, err := Resolve(cfg)
	if err != nil {
		return err
	}
	h.mu.Lock()
	h.snapshot = snapshot
	h.mu.Unlock()
	return nil
}

// Watch reloads the configuration whenever the file is written, created or
// renamed into place, until ctx is done. The parent directory is watched so
// editors that replace the file are handled. Reload failures are passed to
// onError and do not stop the watch.
func (h *Holder) Watch(ctx context.Context, onReload func(Snapshot), onError func(error)) error {
	if h.path == "" {
		<-ctx.Done()
		return nil
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("site: create watcher: %w", err)
	}
	defer watcher.Close()

	target := filepath.Clean(h.path)
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("site: watch %q: %w", h.path, err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if err := h.Reload(); err != nil {
				if onError != nil {
					onError(err)
				}
				continue
			}
			if onReload != nil {
				onReload(h.Snapshot())
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			if onError != nil {
				onError(err)
			}
		}
	}
}
