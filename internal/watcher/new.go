package watcher

import (
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/voicescribe/scribe/internal/config"
	"github.com/voicescribe/scribe/internal/logger"
)

// New creates a Watcher over cfg.Dir with concurrency control. The handler
// runs only after a file's size and modification time have stopped changing
// for the configured quiet period.
func New(cfg config.WatchConfig, handler EventHandler, log logger.Logger, maxConcurrent int) (Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := fsw.Add(cfg.Dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	if maxConcurrent <= 0 {
		maxConcurrent = 2
	}

	return &implWatcher{
		dir:        cfg.Dir,
		extensions: cfg.Extensions,
		handler:    handler,
		logger:     log,
		watcher:    fsw,
		semaphore:  make(chan struct{}, maxConcurrent),
		stability: stabilityPolicy{
			Interval:     time.Duration(cfg.QuietPeriodSeconds * float64(time.Second)),
			StableChecks: cfg.StableChecks,
			Timeout:      time.Duration(cfg.StabilizeTimeoutSeconds * float64(time.Second)),
		},
	}, nil
}
