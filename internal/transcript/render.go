package transcript

import (
	"fmt"
	"strings"
	"time"
)

// Meta is the presentation header shared by both renderings.
type Meta struct {
	Title    string
	Date     time.Time
	Duration time.Duration
	// Summary is optional generated prose placed above the transcript.
	Summary string
}

// Placeholder rendered when a recording produced no speech.
const noSpeech = "No speech detected."

// RenderHTML produces the rich-text body for the note publisher. Labeled
// turns when more than one speaker was detected, continuous prose otherwise.
func RenderHTML(t Transcript, meta Meta) string {
	var b strings.Builder

	fmt.Fprintf(&b, "<h1>%s - %s</h1>\n", meta.Title, meta.Date.Format("Jan 2, 2006"))
	if t.SpeakerCount > 1 {
		fmt.Fprintf(&b, "<p><i>Duration: %s | Speakers: %d</i></p>\n", formatDuration(meta.Duration), t.SpeakerCount)
	} else {
		fmt.Fprintf(&b, "<p><i>Duration: %s</i></p>\n", formatDuration(meta.Duration))
	}
	if meta.Summary != "" {
		fmt.Fprintf(&b, "<p>%s</p>\n", meta.Summary)
	}
	b.WriteString("<hr>\n")

	if t.Empty() {
		fmt.Fprintf(&b, "<p><i>%s</i></p>\n", noSpeech)
		return b.String()
	}

	for _, turn := range t.Turns {
		text := strings.TrimSpace(turn.Text)
		if text == "" {
			continue
		}
		if t.SpeakerCount > 1 {
			fmt.Fprintf(&b, "<p><b>Speaker %d:</b> %s</p>\n", turn.Speaker+1, text)
		} else {
			fmt.Fprintf(&b, "<p>%s</p>\n", text)
		}
	}
	return b.String()
}

// RenderMarkdown produces the flat-file body. Same content as RenderHTML,
// different markup.
func RenderMarkdown(t Transcript, meta Meta) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s - %s\n\n", meta.Title, meta.Date.Format("Jan 2, 2006"))
	if t.SpeakerCount > 1 {
		fmt.Fprintf(&b, "*Duration: %s | Speakers: %d*\n\n", formatDuration(meta.Duration), t.SpeakerCount)
	} else {
		fmt.Fprintf(&b, "*Duration: %s*\n\n", formatDuration(meta.Duration))
	}
	if meta.Summary != "" {
		fmt.Fprintf(&b, "%s\n\n", meta.Summary)
	}
	b.WriteString("---\n\n")

	if t.Empty() {
		fmt.Fprintf(&b, "*%s*\n", noSpeech)
		return b.String()
	}

	for _, turn := range t.Turns {
		text := strings.TrimSpace(turn.Text)
		if text == "" {
			continue
		}
		if t.SpeakerCount > 1 {
			fmt.Fprintf(&b, "**Speaker %d:** %s\n\n", turn.Speaker+1, text)
		} else {
			fmt.Fprintf(&b, "%s\n\n", text)
		}
	}
	return b.String()
}

func formatDuration(d time.Duration) string {
	total := int(d.Seconds())
	hrs := total / 3600
	mins := (total % 3600) / 60
	secs := total % 60
	if hrs > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hrs, mins, secs)
	}
	return fmt.Sprintf("%d:%02d", mins, secs)
}
