package handoff

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const reloadDebounce = 200 * time.Millisecond

// WatchDirectory reloads the contacts file at path whenever it changes and
// passes each valid directory to apply. Invalid edits are logged and the
// previous directory stays in effect. It blocks until ctx is done.
func WatchDirectory(ctx context.Context, path string, apply func(Directory)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating contacts watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory so editors that replace the file by rename are seen
	target := filepath.Clean(path)
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(target), err)
	}
	slog.Info("[Handoff] Watching contacts file", slog.String("path", target))

	timer := time.NewTimer(reloadDebounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

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
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			timer.Reset(reloadDebounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("[Handoff] Contacts watcher error", slog.String("error", err.Error()))

		case <-timer.C:
			dir, err := LoadDirectory(target)
			if err != nil {
				slog.Warn("[Handoff] Keeping previous contacts", slog.String("error", err.Error()))
				continue
			}
			apply(dir)
			slog.Info("[Handoff] Contacts reloaded", slog.Int("contacts", len(dir)))
		}
	}
}
