package summarize

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"

	"github.com/voicescribe/scribe/internal/config"
	"github.com/voicescribe/scribe/internal/logger"
)

type implGemini struct {
	apiKey  string
	model   string
	timeout time.Duration
	logger  logger.Logger
}

func newGemini(cfg config.SummarizeConfig, log logger.Logger) Summarizer {
	return &implGemini{
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		timeout: time.Duration(cfg.TimeoutSeconds * float64(time.Second)),
		logger:  log,
	}
}

func (s *implGemini) Summarize(ctx context.Context, transcriptText string, duration time.Duration, speakerCount int) (Summary, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  s.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return Summary{}, fmt.Errorf("create client: %w", err)
	}

	prompt := buildPrompt(transcriptText, duration, speakerCount)
	result, err := client.Models.GenerateContent(ctx, s.model, genai.Text(prompt), nil)
	if err != nil {
		return Summary{}, fmt.Errorf("generate content: %w", err)
	}

	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return Summary{}, fmt.Errorf("empty response")
	}

	var text string
	for _, part := range result.Candidates[0].Content.Parts {
		if part.Text != "" {
			text += part.Text
		}
	}

	return parseSummary(text)
}
