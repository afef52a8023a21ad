package pipeline

import "context"

// Pipeline advances recordings through the processing state machine. All
// state lives in the ledger; a restarted process resumes from whatever was
// last committed.
type Pipeline interface {
	// Process runs one recording through the full pipeline. Recordings
	// already completed, abandoned, or in flight are a no-op. Failures are
	// committed to the ledger and returned; they never affect other
	// recordings.
	Process(ctx context.Context, filePath string) error
	// Backfill enumerates existing recordings and processes every one
	// without a terminal ledger entry.
	Backfill(ctx context.Context) error
	// RetryFailed re-runs failed entries that still have attempts left.
	RetryFailed(ctx context.Context) error
	// RecoverInFlight marks entries left in flight by a previous process as
	// failed so the normal retry path applies. Must run at startup, before
	// any worker exists.
	RecoverInFlight(ctx context.Context) error
}
