package metadata

import (
	"time"

	"github.com/voicescribe/scribe/internal/config"
	"github.com/voicescribe/scribe/internal/logger"
)

type implSource struct {
	catalogPath string
	maxRetries  int
	retryDelay  time.Duration
	logger      logger.Logger
}

// New creates a Source reading the recording application's catalog database.
// An empty catalog path disables lookups entirely; every recording then gets
// filesystem-derived metadata.
func New(cfg config.MetadataConfig, log logger.Logger) Source {
	return &implSource{
		catalogPath: cfg.CatalogPath,
		maxRetries:  cfg.MaxRetries,
		retryDelay:  time.Duration(cfg.RetryDelaySeconds * float64(time.Second)),
		logger:      log,
	}
}
