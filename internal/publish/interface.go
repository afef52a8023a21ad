package publish

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Destination names used as keys in the ledger's output locations.
const (
	DestNote     = "note"
	DestMarkdown = "markdown"
	DestDocx     = "docx"
)

// Artifact is one completed recording's publishable content. HTML and
// Markdown are two renderings of the same transcript.
type Artifact struct {
	Fingerprint string
	Title       string
	Date        time.Time
	HTML        string
	Markdown    string
}

// Destination publishes an artifact to one output and reports where it
// landed. A repeated publish for the same artifact may create a duplicate;
// the pipeline prevents that by consulting recorded locations first.
type Destination interface {
	Name() string
	Publish(ctx context.Context, art Artifact) (location string, err error)
}

// PartialError reports which destinations failed while others succeeded.
type PartialError struct {
	Failed map[string]error
}

func (e *PartialError) Error() string {
	names := make([]string, 0, len(e.Failed))
	for name := range e.Failed {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %v", name, e.Failed[name]))
	}
	return "publish failed for " + strings.Join(parts, "; ")
}

// Publisher fans an artifact out to every configured destination that has
// not already received it.
type Publisher interface {
	// Publish writes the artifact to each destination whose name is absent
	// from done. It returns the locations of the destinations that
	// succeeded in this call, plus a *PartialError when any failed.
	Publish(ctx context.Context, art Artifact, done map[string]string) (map[string]string, error)
}

// Notifier surfaces a processing failure to the operator's desktop.
type Notifier interface {
	Notify(ctx context.Context, message string)
}
