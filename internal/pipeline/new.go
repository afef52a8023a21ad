package pipeline

import (
	"github.com/voicescribe/scribe/internal/config"
	"github.com/voicescribe/scribe/internal/ledger"
	"github.com/voicescribe/scribe/internal/logger"
	"github.com/voicescribe/scribe/internal/metadata"
	"github.com/voicescribe/scribe/internal/publish"
	"github.com/voicescribe/scribe/internal/summarize"
	"github.com/voicescribe/scribe/internal/transcribe"
)

type implPipeline struct {
	cfg         *config.Config
	ledger      ledger.Ledger
	metadata    metadata.Source
	transcriber transcribe.Transcriber
	summarizer  summarize.Summarizer // nil disables summarization
	publisher   publish.Publisher
	notifier    publish.Notifier
	logger      logger.Logger
}

// New wires a Pipeline over its collaborators. A nil summarizer skips the
// summarizing state entirely.
func New(
	cfg *config.Config,
	led ledger.Ledger,
	meta metadata.Source,
	tr transcribe.Transcriber,
	sum summarize.Summarizer,
	pub publish.Publisher,
	notify publish.Notifier,
	log logger.Logger,
) Pipeline {
	return &implPipeline{
		cfg:         cfg,
		ledger:      led,
		metadata:    meta,
		transcriber: tr,
		summarizer:  sum,
		publisher:   pub,
		notifier:    notify,
		logger:      log,
	}
}
