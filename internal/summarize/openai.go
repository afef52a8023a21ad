package summarize

import (
	"context"
	"fmt"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/voicescribe/scribe/internal/config"
	"github.com/voicescribe/scribe/internal/logger"
)

type implOpenAI struct {
	client  openai.Client
	model   string
	timeout time.Duration
	logger  logger.Logger
}

func newOpenAI(cfg config.SummarizeConfig, log logger.Logger) Summarizer {
	return &implOpenAI{
		client:  openai.NewClient(option.WithAPIKey(cfg.APIKey)),
		model:   cfg.Model,
		timeout: time.Duration(cfg.TimeoutSeconds * float64(time.Second)),
		logger:  log,
	}
}

func (s *implOpenAI) Summarize(ctx context.Context, transcriptText string, duration time.Duration, speakerCount int) (Summary, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	completion, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(buildPrompt(transcriptText, duration, speakerCount)),
		},
		Model:       openai.ChatModel(s.model),
		Temperature: openai.Float(0.3),
		MaxTokens:   openai.Int(200),
	})
	if err != nil {
		return Summary{}, fmt.Errorf("chat completion: %w", err)
	}
	if len(completion.Choices) == 0 {
		return Summary{}, fmt.Errorf("empty completion response")
	}

	return parseSummary(completion.Choices[0].Message.Content)
}
