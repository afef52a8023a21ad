package ledger

import (
	"errors"
	"time"
)

// Status is a pipeline state recorded per recording fingerprint.
type Status string

const (
	StatusDiscovered   Status = "discovered"
	StatusTranscribing Status = "transcribing"
	StatusSummarizing  Status = "summarizing"
	StatusRendering    Status = "rendering"
	StatusPublishing   Status = "publishing"
	StatusCompleted    Status = "completed"
	StatusFailed       Status = "failed"
	StatusAbandoned    Status = "abandoned"
)

// Terminal reports whether no further processing is allowed from s.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusAbandoned
}

// InFlight reports whether s marks a run that is (or appears to be) active.
// A second claimant for the same fingerprint must be rejected while the
// entry sits in one of these states.
func (s Status) InFlight() bool {
	switch s {
	case StatusTranscribing, StatusSummarizing, StatusRendering, StatusPublishing:
		return true
	}
	return false
}

// Entry is the durable processing record for one recording fingerprint.
// At most one Entry exists per fingerprint; entries are never deleted.
type Entry struct {
	Fingerprint   string
	Path          string
	Title         string
	Status        Status
	AttemptCount  int
	LastError     string
	FirstSeenAt   time.Time
	LastUpdatedAt time.Time
	// OutputLocations maps publish destination name to the location of the
	// artifact it produced. Survives failed runs so retries skip
	// destinations that already succeeded.
	OutputLocations map[string]string
}

// Fields carries the optional updates applied together with a transition.
type Fields struct {
	Title            string
	LastError        string
	ClearError       bool
	IncrementAttempt bool
	// OutputLocations are merged into (never replace) the stored map.
	OutputLocations map[string]string
}

var (
	// ErrConflict means the guarded transition lost: the entry is absent
	// or its status no longer matches the expected source state.
	ErrConflict = errors.New("ledger: transition conflict")
	// ErrExists means Create found an entry already present.
	ErrExists = errors.New("ledger: entry exists")
)

// Ledger is the durable, crash-atomic record of per-recording state and the
// single source of truth for deduplication and retry.
type Ledger interface {
	// Lookup returns the entry for fingerprint, or nil when absent.
	Lookup(fingerprint string) (*Entry, error)
	// Create inserts a new discovered entry. ErrExists if one is present.
	Create(fingerprint, path, title string) (*Entry, error)
	// RecordTransition atomically moves the entry from one status to
	// another, applying fields. ErrConflict if the entry is not currently
	// in the from status, which serializes concurrent claimants.
	RecordTransition(fingerprint string, from, to Status, fields Fields) (*Entry, error)
	// ListByStatus returns all entries in the given status, oldest first.
	ListByStatus(status Status) ([]Entry, error)
	Close() error
}
