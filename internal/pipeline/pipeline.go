package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/looplab/fsm"

	"github.com/voicescribe/scribe/internal/ledger"
	"github.com/voicescribe/scribe/internal/logger"
	"github.com/voicescribe/scribe/internal/publish"
	"github.com/voicescribe/scribe/internal/recording"
	"github.com/voicescribe/scribe/internal/transcribe"
	"github.com/voicescribe/scribe/internal/transcript"
	"github.com/voicescribe/scribe/internal/watcher"
)

func (p *implPipeline) Process(ctx context.Context, filePath string) error {
	rec, err := recording.FromFile(filePath)
	if err != nil {
		return err
	}

	entry, err := p.ensureEntry(rec)
	if err != nil {
		return err
	}

	switch {
	case entry.Status.Terminal():
		p.logger.Debug(ctx, "Skipping %s: already %s", filepath.Base(filePath), entry.Status)
		return nil
	case entry.Status.InFlight():
		p.logger.Warn(ctx, "Skipping %s: a run is already in flight (%s)", filepath.Base(filePath), entry.Status)
		return nil
	case entry.Status == ledger.StatusFailed && entry.AttemptCount >= p.cfg.Pipeline.MaxAttempts:
		return p.abandon(ctx, entry)
	}

	m := newMachine(entry.Status)

	// Claim the recording. Losing the guarded transition means another
	// worker got here first.
	entry, err = p.transition(ctx, m, eventTranscribe, rec.Fingerprint, ledger.Fields{ClearError: true})
	if errors.Is(err, ledger.ErrConflict) {
		p.logger.Debug(ctx, "Lost claim on %s to a concurrent worker", filepath.Base(filePath))
		return nil
	}
	if err != nil {
		return err
	}
	p.logger.Info(ctx, "Processing %s (attempt %d)", filepath.Base(filePath), entry.AttemptCount+1)

	meta, err := p.metadata.Lookup(ctx, filePath)
	if err != nil {
		return p.fail(ctx, m, entry, nil, transcribe.Permanent(err))
	}

	result, err := p.transcriber.Transcribe(ctx, filePath)
	if err != nil {
		return p.fail(ctx, m, entry, nil, err)
	}

	ts, err := assemble(result, p.cfg.Transcript.MergeGapSeconds)
	if err != nil {
		return p.fail(ctx, m, entry, nil, transcribe.Permanent(err))
	}

	duration := meta.Duration
	if duration == 0 {
		duration = secondsToDuration(result.Duration)
	}

	title := meta.Title
	var summaryText string
	if p.summarizer != nil && !ts.Empty() {
		next, err := p.transition(ctx, m, eventSummarize, rec.Fingerprint, ledger.Fields{})
		if err != nil {
			return p.fail(ctx, m, entry, nil, err)
		}
		entry = next
		sum, serr := p.summarizer.Summarize(ctx, ts.PlainText(), duration, ts.SpeakerCount)
		if serr != nil {
			// Summaries are a nicety. Keep the catalog title and move on.
			p.logger.Warn(ctx, "Summarization failed for %s, keeping original title: %v", filepath.Base(filePath), serr)
		} else {
			title = sum.Title
			summaryText = sum.Summary
		}
	}

	next, err := p.transition(ctx, m, eventRender, rec.Fingerprint, ledger.Fields{Title: title})
	if err != nil {
		return p.fail(ctx, m, entry, nil, err)
	}
	entry = next

	renderMeta := transcript.Meta{
		Title:    title,
		Date:     meta.Date,
		Duration: duration,
		Summary:  summaryText,
	}
	art := publish.Artifact{
		Fingerprint: rec.Fingerprint,
		Title:       title,
		Date:        meta.Date,
		HTML:        transcript.RenderHTML(ts, renderMeta),
		Markdown:    transcript.RenderMarkdown(ts, renderMeta),
	}

	next, err = p.transition(ctx, m, eventPublish, rec.Fingerprint, ledger.Fields{})
	if err != nil {
		return p.fail(ctx, m, entry, nil, err)
	}
	entry = next

	locations, err := p.publisher.Publish(ctx, art, entry.OutputLocations)
	if err != nil {
		return p.fail(ctx, m, entry, locations, err)
	}

	if _, err := p.transition(ctx, m, eventComplete, rec.Fingerprint, ledger.Fields{OutputLocations: locations}); err != nil {
		return err
	}
	p.logger.Info(ctx, "Completed %s: %q", filepath.Base(filePath), title)
	return nil
}

func (p *implPipeline) Backfill(ctx context.Context) error {
	files, err := watcher.Scan(p.cfg.Watch.Dir, p.cfg.Watch.Extensions)
	if err != nil {
		return err
	}
	p.logger.Info(ctx, "Backfill: found %d recordings in %s", len(files), p.cfg.Watch.Dir)

	var failures int
	for _, f := range files {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := p.Process(ctx, f); err != nil {
			failures++
		}
	}
	if failures > 0 {
		return fmt.Errorf("backfill: %d of %d recordings failed", failures, len(files))
	}
	return nil
}

func (p *implPipeline) RetryFailed(ctx context.Context) error {
	entries, err := p.ledger.ListByStatus(ledger.StatusFailed)
	if err != nil {
		return err
	}
	p.logger.Info(ctx, "Retrying %d failed recordings", len(entries))

	var failures int
	for _, e := range entries {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if _, err := os.Stat(e.Path); err != nil {
			p.logger.Warn(ctx, "Skipping %s: recording no longer exists at %s", e.Fingerprint, e.Path)
			continue
		}
		if err := p.Process(ctx, e.Path); err != nil {
			failures++
		}
	}
	if failures > 0 {
		return fmt.Errorf("retry: %d of %d recordings failed again", failures, len(entries))
	}
	return nil
}

// ensureEntry returns the ledger entry for rec, creating a discovered one on
// first sight. The create/lookup race resolves in favor of whoever inserted.
func (p *implPipeline) ensureEntry(rec recording.Recording) (*ledger.Entry, error) {
	entry, err := p.ledger.Lookup(rec.Fingerprint)
	if err != nil {
		return nil, err
	}
	if entry != nil {
		return entry, nil
	}

	entry, err = p.ledger.Create(rec.Fingerprint, rec.Path, rec.Title)
	if errors.Is(err, ledger.ErrExists) {
		return p.ledger.Lookup(rec.Fingerprint)
	}
	return entry, err
}

// transition advances the state machine and commits the move to the ledger in
// one step. The ledger's status guard is what makes the transition real; the
// machine only vets legality.
func (p *implPipeline) transition(ctx context.Context, m *fsm.FSM, event, fingerprint string, fields ledger.Fields) (*ledger.Entry, error) {
	from := ledger.Status(m.Current())
	if err := m.Event(ctx, event); err != nil {
		return nil, fmt.Errorf("illegal transition %q from %s: %w", event, from, err)
	}
	return p.ledger.RecordTransition(fingerprint, from, ledger.Status(m.Current()), fields)
}

// fail commits the failure, counts the attempt, keeps any partial publish
// locations for the next run, and abandons the entry when it is out of
// attempts or the cause is not retryable.
func (p *implPipeline) fail(ctx context.Context, m *fsm.FSM, entry *ledger.Entry, locations map[string]string, cause error) error {
	if m.Can(eventFail) {
		m.Event(ctx, eventFail)
	}

	// The machine may sit one state past the last commit when the commit
	// itself failed; the entry's status is what the guarded update matches.
	failed, err := p.ledger.RecordTransition(entry.Fingerprint, entry.Status, ledger.StatusFailed, ledger.Fields{
		LastError:        logger.FormatError(cause),
		IncrementAttempt: true,
		OutputLocations:  locations,
	})
	if err != nil {
		p.logger.Error(ctx, "Failed to record failure for %s: %v", entry.Fingerprint, err)
		return cause
	}
	p.logger.Error(ctx, "Processing failed for %s: %v", filepath.Base(entry.Path), cause)
	p.notifier.Notify(ctx, fmt.Sprintf("Failed to process %s: %v", filepath.Base(entry.Path), cause))

	if transcribe.IsPermanent(cause) || failed.AttemptCount >= p.cfg.Pipeline.MaxAttempts {
		if err := p.abandon(ctx, failed); err != nil {
			p.logger.Error(ctx, "Failed to abandon %s: %v", entry.Fingerprint, err)
		}
	}
	return cause
}

// RecoverInFlight sweeps entries left in an in-flight status by a previous
// process. Run before any worker exists, such an entry can only belong to a
// run that died with the process; marking it failed (with the attempt
// counted) hands it to the normal retry path.
func (p *implPipeline) RecoverInFlight(ctx context.Context) error {
	inFlight := []ledger.Status{
		ledger.StatusTranscribing,
		ledger.StatusSummarizing,
		ledger.StatusRendering,
		ledger.StatusPublishing,
	}

	for _, status := range inFlight {
		entries, err := p.ledger.ListByStatus(status)
		if err != nil {
			return err
		}
		for _, e := range entries {
			if _, err := p.ledger.RecordTransition(e.Fingerprint, status, ledger.StatusFailed, ledger.Fields{
				LastError:        "interrupted by process restart",
				IncrementAttempt: true,
			}); err != nil {
				p.logger.Error(ctx, "Failed to recover %s: %v", e.Fingerprint, err)
				continue
			}
			p.logger.Warn(ctx, "Recovered %s: %s run was interrupted, will retry", filepath.Base(e.Path), status)
		}
	}
	return nil
}

func (p *implPipeline) abandon(ctx context.Context, entry *ledger.Entry) error {
	_, err := p.ledger.RecordTransition(entry.Fingerprint, ledger.StatusFailed, ledger.StatusAbandoned, ledger.Fields{})
	if err != nil {
		return err
	}
	p.logger.Warn(ctx, "Abandoned %s after %d attempts: %s", filepath.Base(entry.Path), entry.AttemptCount, entry.LastError)
	return nil
}

// assemble validates the diarized words and groups them into speaker turns,
// falling back to the plain transcript when the service returned no words.
func assemble(result transcribe.Result, mergeGap float64) (transcript.Transcript, error) {
	if len(result.Words) == 0 {
		return transcript.FromText(result.Text), nil
	}
	if err := validateWords(result.Words); err != nil {
		return transcript.Transcript{}, err
	}
	return transcript.Assemble(result.Words, mergeGap), nil
}

func validateWords(words []transcribe.Word) error {
	prev := 0.0
	for i, w := range words {
		if w.End < w.Start || w.Start < 0 {
			return fmt.Errorf("malformed word timing at index %d: start=%v end=%v", i, w.Start, w.End)
		}
		if w.Start < prev {
			return fmt.Errorf("words out of order at index %d: start=%v before %v", i, w.Start, prev)
		}
		prev = w.Start
	}
	return nil
}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
