package adapter

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	m "mockguard.dev/pkg/mockguard/internal/model"
)

// DefaultDebounce is how long a burst of file events must stay quiet before
// the change callback runs.
const DefaultDebounce = 300 * time.Millisecond

// ChangeWatcher reports changes below a directory tree.
type ChangeWatcher interface {
	// Watch blocks until ctx is done, calling onChange once per burst of
	// relevant changes. Directories rejected by prune are not watched; the
	// root itself is never pruned. onChange runs on the calling goroutine.
	Watch(ctx context.Context, root m.Path, prune PruneFunc, onChange func()) error
}

// FSNotifyChangeWatcher implements ChangeWatcher with fsnotify.
type FSNotifyChangeWatcher struct {
	debounce time.Duration
}

// NewFSNotifyChangeWatcher creates a watcher that debounces events by debounce.
func NewFSNotifyChangeWatcher(debounce time.Duration) *FSNotifyChangeWatcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	return &FSNotifyChangeWatcher{debounce: debounce}
}

// Watch implements ChangeWatcher.
func (w *FSNotifyChangeWatcher) Watch(ctx context.Context, root m.Path, prune PruneFunc, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	rootStr := filepath.Clean(string(root))
	if err := addWatchDirs(watcher, rootStr, rootStr, prune); err != nil {
		return fmt.Errorf("failed to watch directories: %w", err)
	}

	var quiet <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if !isRelevantChange(event) {
				continue
			}

			slog.Debug("File changed", "path", event.Name, "op", event.Op.String())

			if event.Has(fsnotify.Create) {
				addIfDirectory(watcher, rootStr, event.Name, prune)
			}

			quiet = time.After(w.debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			slog.Warn("File watcher error", "error", err)

		case <-quiet:
			quiet = nil

			onChange()
		}
	}
}

func isRelevantChange(event fsnotify.Event) bool {
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
}

func addWatchDirs(watcher *fsnotify.Watcher, root, dir string, prune PruneFunc) error {
	return filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}

			slog.Warn("Not watching unreadable path", "path", path, "error", err)

			return nil
		}

		if !entry.IsDir() {
			return nil
		}

		if path != root && prune != nil && prune(entry.Name()) {
			return filepath.SkipDir
		}

		return watcher.Add(path)
	})
}

func addIfDirectory(watcher *fsnotify.Watcher, root, path string, prune PruneFunc) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}

	if err := addWatchDirs(watcher, root, path, prune); err != nil {
		slog.Warn("Failed to watch new directory", "path", path, "error", err)
	}
}
