package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounce is how long a burst of file events must stay quiet before a rerun.
const debounce = 200 * time.Millisecond

// watchScenario calls run now and again after every change to path, until ctx is done.
// A failing run is logged and the watch goes on.
func watchScenario(ctx context.Context, path string, run func(context.Context) error) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve scenario path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory containing the file (more reliable than watching the file directly)
	if err := watcher.Add(filepath.Dir(absPath)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(absPath), err)
	}

	for {
		if err := run(ctx); err != nil {
			logger.Error("scenario run failed", "error", err)
		}
		if ctx.Err() != nil {
			return nil
		}
		logger.Info("watching for changes", "path", absPath)
		changed, err := waitForChange(ctx, watcher, absPath)
		if err != nil || !changed {
			return err
		}
	}
}

// waitForChange blocks until path is written, created or renamed and the events
// stop for the debounce period. It returns false when ctx ends first.
func waitForChange(ctx context.Context, watcher *fsnotify.Watcher, path string) (bool, error) {
	var settle <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return false, nil
		case <-settle:
			return true, nil
		case event, ok := <-watcher.Events:
			if !ok {
				return false, nil
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				logger.Debug("scenario change detected", "file", event.Name, "op", event.Op.String())
				settle = time.After(debounce)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return false, nil
			}
			return false, fmt.Errorf("file watcher error: %w", err)
		}
	}
}
