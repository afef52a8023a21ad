package summarize

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"
)

func TestBuildPrompt(t *testing.T) {
	tests := []struct {
		name         string
		speakerCount int
		wantContext  string
	}{
		{"single speaker is a voice note", 1, "voice note"},
		{"multiple speakers is a meeting", 3, "meeting transcript"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prompt := buildPrompt("some words", 5*time.Minute, tt.speakerCount)
			if !strings.Contains(prompt, tt.wantContext) {
				t.Errorf("prompt missing %q:\n%s", tt.wantContext, prompt)
			}
			if !strings.Contains(prompt, "some words") {
				t.Error("prompt missing transcript text")
			}
			if !strings.Contains(prompt, "Duration: 5 minutes") {
				t.Error("prompt missing duration")
			}
		})
	}
}

func TestParseSummary(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		wantTitle string
		wantErr   bool
	}{
		{
			name:      "plain json",
			content:   `{"title": "Weekly Sync", "summary": "Planning discussion."}`,
			wantTitle: "Weekly Sync",
		},
		{
			name:      "fenced json",
			content:   "```json\n{\"title\": \"Weekly Sync\", \"summary\": \"Planning.\"}\n```",
			wantTitle: "Weekly Sync",
		},
		{
			name:      "fenced without language",
			content:   "```\n{\"title\": \"T\", \"summary\": \"S\"}\n```",
			wantTitle: "T",
		},
		{
			name:    "not json",
			content: "I cannot summarize this.",
			wantErr: true,
		},
		{
			name:    "missing title",
			content: `{"summary": "no title"}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseSummary(tt.content)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("parseSummary() error: %v", err)
			}
			if got.Title != tt.wantTitle {
				t.Errorf("title = %q, want %q", got.Title, tt.wantTitle)
			}
		})
	}
}

func TestParseSummaryTruncatesTitle(t *testing.T) {
	long := strings.Repeat("a", 100)
	got, err := parseSummary(`{"title": "` + long + `", "summary": "s"}`)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Title) != maxTitleLen {
		t.Errorf("title length = %d, want %d", len(got.Title), maxTitleLen)
	}
}

func TestParseSummaryTruncatesTitleOnRunes(t *testing.T) {
	long := strings.Repeat("ü", 100)
	got, err := parseSummary(`{"title": "` + long + `", "summary": "s"}`)
	if err != nil {
		t.Fatal(err)
	}
	if !utf8.ValidString(got.Title) {
		t.Fatal("truncated title is not valid UTF-8")
	}
	if n := utf8.RuneCountInString(got.Title); n != maxTitleLen {
		t.Errorf("title runes = %d, want %d", n, maxTitleLen)
	}
}
