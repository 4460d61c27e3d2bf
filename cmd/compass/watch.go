package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce batches the burst of events an editor emits on save.
const watchDebounce = 100 * time.Millisecond

// Watch evaluates the script at path, then again after every change to
// it, handing each result to emit. It blocks until ctx is cancelled.
func (a *App) Watch(ctx context.Context, path string, emit func(Result)) error {
	path, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	// Editors replace files on save, so watch the directory.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(path), err)
	}

	run := func() {
		r, err := a.EvaluateFile(path)
		if err != nil {
			a.log.Warn("watched script unreadable", "path", path, "err", err)
			return
		}
		emit(r)
	}
	run()

	timer := time.NewTimer(watchDebounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			a.log.Debug("script changed", "path", path, "op", event.Op.String())
			timer.Reset(watchDebounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			a.log.Warn("watch error", "err", err)

		case <-timer.C:
			run()
		}
	}
}
