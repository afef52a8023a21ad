package summarize

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const maxTitleLen = 60

func buildPrompt(transcriptText string, duration time.Duration, speakerCount int) string {
	context := "voice note"
	noteType := "voice note"
	if speakerCount > 1 {
		context = "meeting transcript"
		noteType = "meeting"
	}

	return fmt.Sprintf(
		"You are summarizing a %s. Duration: %d minutes. Speakers: %d.\n\n"+
			"Transcript:\n%s\n\n"+
			"Respond with JSON only, no markdown formatting:\n"+
			`{"title": "concise descriptive title (max 60 chars)", `+
			`"summary": "2-4 sentence summary of key points of this %s"}`,
		context, int(duration.Minutes()), speakerCount, transcriptText, noteType)
}

// parseSummary decodes the model's JSON reply, tolerating markdown code
// fences some models wrap around it.
func parseSummary(content string) (Summary, error) {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```") {
		if idx := strings.Index(content, "\n"); idx >= 0 {
			content = content[idx+1:]
		} else {
			content = content[3:]
		}
		content = strings.TrimSuffix(strings.TrimSpace(content), "```")
		content = strings.TrimSpace(content)
	}

	var parsed struct {
		Title   string `json:"title"`
		Summary string `json:"summary"`
	}
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return Summary{}, fmt.Errorf("parse summary reply: %w", err)
	}
	if parsed.Title == "" {
		return Summary{}, fmt.Errorf("summary reply has no title")
	}
	if runes := []rune(parsed.Title); len(runes) > maxTitleLen {
		parsed.Title = string(runes[:maxTitleLen])
	}
	return Summary{Title: parsed.Title, Summary: parsed.Summary}, nil
}
