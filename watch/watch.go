// Package watch runs a callback when a file is edited.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce groups the bursts of events an editor makes on save.
const DefaultDebounce = 500 * time.Millisecond

// Watcher calls OnChange after Path is written, created or renamed into
// place. Calls are serialized, and events received while OnChange runs are
// handled after it returns.
type Watcher struct {
	Path     string
	Debounce time.Duration // DefaultDebounce if 0
	OnChange func(ctx context.Context) error
	Logger   *zap.Logger

	// Ready is called once the watch is in place.
	Ready func()
}

// Run watches until ctx is done. OnChange errors are logged, not returned.
func (w *Watcher) Run(ctx context.Context) error {
	log := w.Logger
	if log == nil {
		log = zap.NewNop()
	}
	debounce := w.Debounce
	if debounce == 0 {
		debounce = DefaultDebounce
	}

	abs, err := filepath.Abs(w.Path)
	if err != nil {
		return fmt.Errorf("failed to watch %q: %w", w.Path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	// the folder is watched, not the file: atomic writes replace the file
	// and would drop a watch on it.
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch %q: %w", w.Path, err)
	}
	log.Info("watching", zap.String("path", abs))
	if w.Ready != nil {
		w.Ready()
	}

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				log.Debug("file event", zap.Stringer("op", event.Op))
				timer.Reset(debounce)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("watcher error", zap.Error(err))

		case <-timer.C:
			if err := w.OnChange(ctx); err != nil {
				log.Error("failed to handle change", zap.String("path", abs), zap.Error(err))
			}
		}
	}
}
