// Package transcript turns diarized words into coherent speaker turns and
// renders them. Assembly and rendering are pure; both output formats are
// produced from the same Transcript value so the two artifacts cannot drift.
package transcript

import (
	"strings"

	"github.com/voicescribe/scribe/internal/transcribe"
)

// Turn is a contiguous run of words attributed to one speaker.
type Turn struct {
	Speaker int // 0-indexed
	Start   float64
	End     float64
	Text    string
}

// Transcript is the ordered, non-overlapping sequence of speaker turns.
type Transcript struct {
	Turns        []Turn
	SpeakerCount int
}

// Empty reports whether the transcript carries no speech.
func (t Transcript) Empty() bool {
	for _, turn := range t.Turns {
		if strings.TrimSpace(turn.Text) != "" {
			return false
		}
	}
	return true
}

// PlainText joins all turn text with single spaces, ignoring attribution.
// Feeds the summarizer and the content-parity guarantee between renderings.
func (t Transcript) PlainText() string {
	parts := make([]string, 0, len(t.Turns))
	for _, turn := range t.Turns {
		if text := strings.TrimSpace(turn.Text); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}

// Assemble groups words into speaker turns. A new turn starts when the
// speaker changes or when the silence since the previous word exceeds
// mergeGap seconds. When every word belongs to one speaker (or diarization
// is absent) the turns collapse into a single prose turn.
func Assemble(words []transcribe.Word, mergeGap float64) Transcript {
	if len(words) == 0 {
		return Transcript{}
	}

	var turns []Turn
	current := Turn{
		Speaker: speakerOf(words[0]),
		Start:   words[0].Start,
		End:     words[0].End,
		Text:    words[0].Text,
	}

	for _, w := range words[1:] {
		speaker := speakerOf(w)
		if speaker != current.Speaker || w.Start-current.End > mergeGap {
			turns = append(turns, current)
			current = Turn{Speaker: speaker, Start: w.Start, End: w.End, Text: w.Text}
			continue
		}
		current.Text += " " + w.Text
		current.End = w.End
	}
	turns = append(turns, current)

	speakers := map[int]bool{}
	for _, t := range turns {
		speakers[t.Speaker] = true
	}

	if len(speakers) == 1 {
		return Transcript{Turns: []Turn{collapse(turns)}, SpeakerCount: 1}
	}
	return Transcript{Turns: turns, SpeakerCount: len(speakers)}
}

// FromText builds a single-speaker transcript from plain text, for services
// that returned no word-level detail.
func FromText(text string) Transcript {
	text = strings.TrimSpace(text)
	if text == "" {
		return Transcript{}
	}
	return Transcript{
		Turns:        []Turn{{Text: text}},
		SpeakerCount: 1,
	}
}

func speakerOf(w transcribe.Word) int {
	if w.Speaker == nil {
		return 0
	}
	return *w.Speaker
}

func collapse(turns []Turn) Turn {
	parts := make([]string, 0, len(turns))
	for _, t := range turns {
		parts = append(parts, t.Text)
	}
	return Turn{
		Speaker: turns[0].Speaker,
		Start:   turns[0].Start,
		End:     turns[len(turns)-1].End,
		Text:    strings.Join(parts, " "),
	}
}
