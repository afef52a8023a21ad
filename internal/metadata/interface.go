package metadata

import (
	"context"
	"time"
)

// Metadata describes a recording as reported by the recording application.
type Metadata struct {
	Title    string
	Date     time.Time
	Duration time.Duration
}

// Source resolves recording metadata by audio file path. Lookup never blocks
// processing on a missing catalog row: it falls back to filesystem-derived
// values and only errors when the file itself is unreadable.
type Source interface {
	Lookup(ctx context.Context, path string) (Metadata, error)
}
