package summarize

import (
	"fmt"

	"github.com/voicescribe/scribe/internal/config"
	"github.com/voicescribe/scribe/internal/logger"
)

// New creates the configured Summarizer, or nil when summarization is
// disabled.
func New(cfg config.SummarizeConfig, log logger.Logger) (Summarizer, error) {
	switch cfg.Provider {
	case "":
		return nil, nil
	case "openai":
		return newOpenAI(cfg, log), nil
	case "gemini":
		return newGemini(cfg, log), nil
	default:
		return nil, fmt.Errorf("unknown summarize provider %q", cfg.Provider)
	}
}
