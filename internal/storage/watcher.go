package storage

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// Watcher invalidates the structure cache when the projects root changes
// on disk outside the API (editors, sync tools, the content generator).
// fsnotify is not recursive, so directories are added as they are
// discovered; newly created directories are picked up from create events.
type Watcher struct {
	root  string
	cache *Cache
	fsw   *fsnotify.Watcher
}

// NewWatcher creates a watcher over rootDir feeding cache invalidations.
func NewWatcher(rootDir string, cache *Cache) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{root: rootDir, cache: cache, fsw: fsw}
	if err := w.addRecursive(rootDir); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	return w, nil
}

// Run processes events until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) {
	defer func() { _ = w.fsw.Close() }()
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) == ManifestFile {
				// Manifest rewrites are our own side effects.
				continue
			}
			w.cache.InvalidateAll()
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addRecursive(event.Name); err != nil {
						slog.Warn("Failed to watch new directory", "dir", event.Name, "err", err)
					}
				}
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			slog.Warn("Filesystem watcher error", "err", err)
		}
	}
}

// addRecursive watches dir and every directory below it, skipping dot
// directories such as .git.
func (w *Watcher) addRecursive(dir string) error {
	return filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			slog.Warn("Failed to walk directory for watching", "path", path, "err", err)
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if name := d.Name(); strings.HasPrefix(name, ".") && path != dir {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			slog.Warn("Failed to watch directory", "dir", path, "err", err)
		}
		return nil
	})
}
