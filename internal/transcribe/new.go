package transcribe

import (
	"net/http"
	"time"

	"github.com/voicescribe/scribe/internal/config"
	"github.com/voicescribe/scribe/internal/logger"
)

const defaultBaseURL = "https://api.deepgram.com"

type implTranscriber struct {
	apiKey     string
	baseURL    string
	model      string
	keyterms   []string
	maxRetries int
	client     *http.Client
	logger     logger.Logger
}

// New creates a Transcriber backed by the Deepgram prerecorded API with
// diarization enabled. A non-empty base URL points it at a self-hosted
// deployment.
func New(cfg config.TranscribeConfig, log logger.Logger) Transcriber {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &implTranscriber{
		apiKey:     cfg.APIKey,
		baseURL:    baseURL,
		model:      cfg.Model,
		keyterms:   cfg.Keyterms,
		maxRetries: cfg.MaxRetries,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds * float64(time.Second)),
		},
		logger: log,
	}
}
