package watcher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/voicescribe/scribe/internal/logger"
)

type implWatcher struct {
	dir        string
	extensions []string
	handler    EventHandler
	logger     logger.Logger
	watcher    *fsnotify.Watcher
	semaphore  chan struct{}
	stability  stabilityPolicy
	wg         sync.WaitGroup
}

// Start consumes filesystem events until ctx is cancelled. Each new
// recording stabilizes in its own goroutine, then runs through the handler
// under the concurrency semaphore. A handler failure is logged and never
// stops the watch loop.
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "Watching for new recordings in %s (max concurrent: %d)", w.dir, cap(w.semaphore))

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "Waiting for in-flight recordings to finish...")
			w.wg.Wait()
			w.logger.Info(ctx, "File watcher stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if event.Op&fsnotify.Create != fsnotify.Create {
				continue
			}
			if !w.isRecording(event.Name) {
				w.logger.Debug(ctx, "Ignoring non-recording file: %s", event.Name)
				continue
			}

			w.logger.Info(ctx, "New recording detected: %s", filepath.Base(event.Name))
			w.wg.Add(1)
			go w.stabilizeAndHandle(ctx, event.Name)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

func (w *implWatcher) stabilizeAndHandle(ctx context.Context, path string) {
	defer w.wg.Done()

	if err := waitForStable(ctx, path, w.stability); err != nil {
		switch {
		case errors.Is(err, ErrVanished):
			w.logger.Debug(ctx, "Recording vanished before stabilizing: %s", filepath.Base(path))
		case errors.Is(err, ErrStabilizeTimeout):
			w.logger.Warn(ctx, "Recording never stabilized, skipping: %s", filepath.Base(path))
		}
		return
	}
	w.logger.Debug(ctx, "Recording stabilized: %s", filepath.Base(path))

	select {
	case w.semaphore <- struct{}{}:
	case <-ctx.Done():
		return
	}
	defer func() { <-w.semaphore }()

	if err := w.handler(ctx, path); err != nil {
		w.logger.Error(ctx, "Failed to process %s: %v", path, err)
	}
}

// Stop closes the file watcher
func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}

func (w *implWatcher) isRecording(path string) bool {
	return hasExtension(path, w.extensions)
}

func hasExtension(path string, extensions []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Scan enumerates existing recordings in dir, sorted by name. Used by
// backfill mode instead of live events.
func Scan(dir string, extensions []string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read recordings dir: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if hasExtension(e.Name(), extensions) {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}

	sort.Strings(files)
	return files, nil
}
