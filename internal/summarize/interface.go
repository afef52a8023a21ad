package summarize

import (
	"context"
	"time"
)

// Summary is a generated title and short abstract for one transcript.
type Summary struct {
	Title   string
	Summary string
}

// Summarizer turns transcript text into a title and summary. Failures are
// non-fatal to the pipeline: callers fall back to the recording's own title.
type Summarizer interface {
	Summarize(ctx context.Context, transcriptText string, duration time.Duration, speakerCount int) (Summary, error)
}
