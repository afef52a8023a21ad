package transcribe

import (
	"errors"
	"fmt"
)

// Kind classifies a collaborator failure for retry policy.
type Kind int

const (
	// KindTransient covers network failures, rate limits and 5xx
	// responses. Worth retrying on a later invocation.
	KindTransient Kind = iota
	// KindPermanent covers auth failures and malformed input. Recorded as
	// failed but not retried without operator action.
	KindPermanent
)

func (k Kind) String() string {
	if k == KindPermanent {
		return "permanent"
	}
	return "transient"
}

// Error tags a collaborator failure with its retry classification.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Transient wraps err as a retryable collaborator failure.
func Transient(err error) error {
	return &Error{Kind: KindTransient, Err: err}
}

// Permanent wraps err as a non-retryable collaborator failure.
func Permanent(err error) error {
	return &Error{Kind: KindPermanent, Err: err}
}

// IsPermanent reports whether err carries a permanent classification.
// Untagged errors default to transient.
func IsPermanent(err error) bool {
	var ce *Error
	return errors.As(err, &ce) && ce.Kind == KindPermanent
}
