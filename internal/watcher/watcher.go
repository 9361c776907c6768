// Package watcher re-runs the indexing pipeline when the scanned tree
// changes. Every trigger performs a full rebuild; nothing incremental
// is attempted.
package watcher

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/rexnie/gentags/internal/logger"
)

// DefaultDebounce is how long the watcher waits after the last
// filesystem event before triggering a rebuild.
const DefaultDebounce = 500 * time.Millisecond

// RebuildFunc performs one full scan-and-index pass.
type RebuildFunc func(ctx context.Context) error

// Watcher monitors a set of root directories and invokes a rebuild
// callback once events settle.
type Watcher struct {
	roots    []string
	debounce time.Duration
	log      *logger.ConsoleLogger
}

// New creates a Watcher over the given roots.
func New(roots []string, log *logger.ConsoleLogger) *Watcher {
	return &Watcher{
		roots:    roots,
		debounce: DefaultDebounce,
		log:      log,
	}
}

// Run watches the roots until ctx is cancelled, calling rebuild after
// each settled burst of filesystem events. A failed rebuild is logged
// and watching continues.
func (w *Watcher) Run(ctx context.Context, rebuild RebuildFunc) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fsw.Close()

	for _, root := range w.roots {
		if err := addRecursive(fsw, root); err != nil {
			return err
		}
	}

	w.log.Infof("Watching %d directories for changes (debounce %s)", len(w.roots), w.debounce)

	var debounceTimer *time.Timer
	pending := 0

	for {
		var debounceC <-chan time.Time
		if debounceTimer != nil {
			debounceC = debounceTimer.C
		}

		select {
		case <-ctx.Done():
			w.log.Infof("Stopping watch mode: %v", ctx.Err())
			return ctx.Err()

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(fsw, event)
			pending++
			if debounceTimer == nil {
				debounceTimer = time.NewTimer(w.debounce)
			} else {
				if !debounceTimer.Stop() {
					select {
					case <-debounceTimer.C:
					default:
					}
				}
				debounceTimer.Reset(w.debounce)
			}

		case err, ok := <-fsw.Errors:
			if !ok || err == nil {
				continue
			}
			w.log.Errorf("Watcher error: %v", err)

		case <-debounceC:
			debounceTimer = nil
			if pending == 0 {
				continue
			}
			w.log.Debugf("Rebuilding after %d filesystem events", pending)
			pending = 0
			if err := rebuild(ctx); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				w.log.Errorf("Rebuild failed: %v", err)
			}
		}
	}
}

// handleEvent keeps the recursive watch in sync when directories
// appear.
func (w *Watcher) handleEvent(fsw *fsnotify.Watcher, event fsnotify.Event) {
	w.log.Tracef("Filesystem event: %s %s", event.Op, event.Name)

	if event.Op&fsnotify.Create == 0 {
		return
	}
	info, err := os.Stat(event.Name)
	if err != nil || !info.IsDir() {
		return
	}
	if err := addRecursive(fsw, event.Name); err != nil {
		w.log.Errorf("Failed to watch new directory %s: %v", event.Name, err)
	}
}

// addRecursive registers root and every directory under it.
func addRecursive(fsw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return fmt.Errorf("watch %s: %w", root, err)
			}
			// Unreadable subtrees are skipped, same as during a scan.
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if err := fsw.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}
