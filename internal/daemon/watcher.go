package daemon

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// storeWatcher follows changes to the global metadata store (feature
// markers, index writes) and logs them. Purely observational: udev-style
// helpers from other implementations share the store, and the watch makes
// their writes visible in this daemon's log.
type storeWatcher struct {
	watcher *fsnotify.Watcher
	logger  *slog.Logger
}

func newStoreWatcher(globalDir string, logger *slog.Logger) (*storeWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	// Watch the global directory plus features/ when it already exists;
	// creation of features/ itself shows up as an event on the parent.
	if err := watcher.Add(globalDir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch global directory %s: %w", globalDir, err)
	}
	featuresDir := filepath.Join(globalDir, "features")
	if _, err := os.Stat(featuresDir); err == nil {
		if err := watcher.Add(featuresDir); err != nil {
			logger.Warn("cannot watch features directory", "path", featuresDir, "error", err)
		}
	}

	return &storeWatcher{watcher: watcher, logger: logger}, nil
}

func (w *storeWatcher) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.logger.Debug("global store changed",
				"path", ev.Name, "op", ev.Op.String())
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("store watch error", "error", err)
		}
	}
}

func (w *storeWatcher) Close() {
	_ = w.watcher.Close()
}
