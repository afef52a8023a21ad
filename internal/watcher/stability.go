package watcher

import (
	"context"
	"errors"
	"os"
	"time"
)

var (
	// ErrVanished means the file was deleted before it stabilized. Such
	// files are dropped without any ledger entry.
	ErrVanished = errors.New("watcher: file vanished before stabilizing")
	// ErrStabilizeTimeout means the file kept changing for the whole
	// stabilization window.
	ErrStabilizeTimeout = errors.New("watcher: file never stabilized")
)

// stabilityPolicy describes how long a file must sit unchanged before it is
// treated as fully written. The recording application writes audio
// incrementally; reading too early yields truncated audio.
type stabilityPolicy struct {
	Interval     time.Duration
	StableChecks int
	Timeout      time.Duration
}

// waitForStable blocks until the file's size and modification time have been
// unchanged for StableChecks consecutive intervals.
func waitForStable(ctx context.Context, path string, policy stabilityPolicy) error {
	deadline := time.Now().Add(policy.Timeout)

	var lastSize int64 = -1
	var lastMod time.Time
	stable := 0

	for stable < policy.StableChecks {
		if time.Now().After(deadline) {
			return ErrStabilizeTimeout
		}

		select {
		case <-time.After(policy.Interval):
		case <-ctx.Done():
			return ctx.Err()
		}

		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				return ErrVanished
			}
			// Treat transient stat failures as instability.
			stable = 0
			continue
		}

		if info.Size() == lastSize && info.ModTime().Equal(lastMod) {
			stable++
		} else {
			stable = 0
		}
		lastSize = info.Size()
		lastMod = info.ModTime()
	}

	// Final existence check: the file may vanish during the last interval.
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return ErrVanished
	}
	return nil
}
