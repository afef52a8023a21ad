package transcript

import (
	"testing"

	"github.com/voicescribe/scribe/internal/transcribe"
)

func speaker(n int) *int { return &n }

func TestAssembleSplitsOnSpeakerChange(t *testing.T) {
	words := []transcribe.Word{
		{Text: "hi", Start: 0.0, End: 0.5, Speaker: speaker(0)},
		{Text: "there", Start: 0.5, End: 1.0, Speaker: speaker(0)},
		{Text: "ok", Start: 6.0, End: 7.0, Speaker: speaker(1)},
	}

	tr := Assemble(words, 2.0)

	if len(tr.Turns) != 2 {
		t.Fatalf("turns = %d, want 2", len(tr.Turns))
	}
	if tr.SpeakerCount != 2 {
		t.Errorf("speaker count = %d, want 2", tr.SpeakerCount)
	}
	if tr.Turns[0].Text != "hi there" {
		t.Errorf("first turn = %q, want merged words", tr.Turns[0].Text)
	}
	if tr.Turns[1].Speaker != 1 {
		t.Errorf("second turn speaker = %d, want 1", tr.Turns[1].Speaker)
	}
}

func TestAssembleSplitsOnLongPause(t *testing.T) {
	words := []transcribe.Word{
		{Text: "first", Start: 0.0, End: 0.5, Speaker: speaker(1)},
		{Text: "thought", Start: 0.6, End: 1.0, Speaker: speaker(1)},
		{Text: "second", Start: 10.0, End: 10.5, Speaker: speaker(0)},
	}

	tr := Assemble(words, 2.0)

	if len(tr.Turns) != 2 {
		t.Fatalf("turns = %d, want 2 (pause exceeds merge gap)", len(tr.Turns))
	}
	if tr.Turns[0].End != 1.0 || tr.Turns[1].Start != 10.0 {
		t.Errorf("turn boundaries wrong: %+v", tr.Turns)
	}
}

func TestAssembleUniformSpeakerCollapses(t *testing.T) {
	words := []transcribe.Word{
		{Text: "one", Start: 0.0, End: 0.5, Speaker: speaker(0)},
		{Text: "long", Start: 10.0, End: 10.5, Speaker: speaker(0)},
		{Text: "pause", Start: 20.0, End: 20.5, Speaker: speaker(0)},
	}

	tr := Assemble(words, 2.0)

	if len(tr.Turns) != 1 {
		t.Fatalf("turns = %d, want 1 for a uniform speaker", len(tr.Turns))
	}
	if tr.SpeakerCount != 1 {
		t.Errorf("speaker count = %d, want 1", tr.SpeakerCount)
	}
	if tr.Turns[0].Text != "one long pause" {
		t.Errorf("collapsed text = %q", tr.Turns[0].Text)
	}
	if tr.Turns[0].Start != 0.0 || tr.Turns[0].End != 20.5 {
		t.Errorf("collapsed bounds = [%v, %v]", tr.Turns[0].Start, tr.Turns[0].End)
	}
}

func TestAssembleNilSpeakersAreProse(t *testing.T) {
	words := []transcribe.Word{
		{Text: "no", Start: 0.0, End: 0.3},
		{Text: "diarization", Start: 0.3, End: 0.9},
	}

	tr := Assemble(words, 2.0)

	if tr.SpeakerCount != 1 {
		t.Errorf("speaker count = %d, want 1 when diarization is absent", tr.SpeakerCount)
	}
	if len(tr.Turns) != 1 {
		t.Errorf("turns = %d, want 1", len(tr.Turns))
	}
}

func TestAssembleTurnsAreOrderedAndNonOverlapping(t *testing.T) {
	words := []transcribe.Word{
		{Text: "a", Start: 0.0, End: 1.0, Speaker: speaker(0)},
		{Text: "b", Start: 1.0, End: 2.0, Speaker: speaker(1)},
		{Text: "c", Start: 2.0, End: 3.0, Speaker: speaker(0)},
		{Text: "d", Start: 3.0, End: 4.0, Speaker: speaker(1)},
	}

	tr := Assemble(words, 2.0)

	for i := 1; i < len(tr.Turns); i++ {
		if tr.Turns[i].Start < tr.Turns[i-1].End {
			t.Errorf("turn %d overlaps previous: %+v", i, tr.Turns)
		}
	}
}

func TestAssembleEmpty(t *testing.T) {
	tr := Assemble(nil, 2.0)
	if !tr.Empty() {
		t.Error("empty input should produce an empty transcript")
	}
	if len(tr.Turns) != 0 {
		t.Errorf("turns = %d, want 0", len(tr.Turns))
	}
}

func TestFromText(t *testing.T) {
	tr := FromText("  just plain text  ")
	if tr.SpeakerCount != 1 || len(tr.Turns) != 1 {
		t.Fatalf("transcript = %+v", tr)
	}
	if tr.Turns[0].Text != "just plain text" {
		t.Errorf("text = %q", tr.Turns[0].Text)
	}

	if !FromText("   ").Empty() {
		t.Error("blank text should produce an empty transcript")
	}
}

func TestPlainText(t *testing.T) {
	tr := Transcript{
		Turns: []Turn{
			{Speaker: 0, Text: "Good morning."},
			{Speaker: 1, Text: "Hi there."},
		},
		SpeakerCount: 2,
	}
	if got := tr.PlainText(); got != "Good morning. Hi there." {
		t.Errorf("PlainText() = %q", got)
	}
}
