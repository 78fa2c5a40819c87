package ml

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/priyanshu-naveen/Coffee-Shop-Prediction/logging"
)

// ArtifactEvent is reported when the artifact file appears or changes on disk.
type ArtifactEvent struct {
	Path string
	// Loaded is true when a model was already cached at the time of the change;
	// the cached handle stays in use until restart.
	Loaded bool
}

// WatchArtifact watches the directory holding the loader's artifact until ctx
// is done. notify may be nil.
func WatchArtifact(ctx context.Context, loader *ModelLoader, logger *zap.Logger, notify func(ArtifactEvent)) error {
	if logger == nil {
		logger = logging.L()
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}

	path := filepath.Clean(loader.Path())
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != path || !(event.Has(fsnotify.Create) || event.Has(fsnotify.Write)) {
					continue
				}
				ev := ArtifactEvent{Path: path, Loaded: loader.Loaded()}
				if ev.Loaded {
					logger.Warn("model artifact changed on disk; restart to load it", zap.String("path", path))
				} else {
					logger.Info("model artifact available", zap.String("path", path))
				}
				if notify != nil {
					notify(ev)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("artifact watcher error", zap.Error(err))
			}
		}
	}()
	return nil
}
