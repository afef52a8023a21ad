package watcher

import "context"

// Watcher monitors a recordings directory and hands stabilized files to its
// handler.
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler receives the absolute path of each new, fully-written
// recording.
type EventHandler func(ctx context.Context, filePath string) error
