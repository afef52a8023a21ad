package publish

import (
	"context"

	"github.com/voicescribe/scribe/internal/config"
	"github.com/voicescribe/scribe/internal/logger"
	"github.com/voicescribe/scribe/pkg/executor"
)

type implPublisher struct {
	destinations []Destination
	logger       logger.Logger
}

// New builds a Publisher over the destinations enabled in cfg.
func New(cfg config.PublishConfig, exec executor.Executor, log logger.Logger) Publisher {
	var dests []Destination
	if cfg.NotesFolder != "" {
		dests = append(dests, &notesDestination{
			folder:   cfg.NotesFolder,
			account:  cfg.NotesAccount,
			executor: exec,
			logger:   log,
		})
	}
	if cfg.OutputDir != "" {
		dests = append(dests, &markdownDestination{dir: cfg.OutputDir, logger: log})
	}
	if cfg.DocxDir != "" {
		dests = append(dests, &docxDestination{dir: cfg.DocxDir, logger: log})
	}
	return &implPublisher{destinations: dests, logger: log}
}

func (p *implPublisher) Publish(ctx context.Context, art Artifact, done map[string]string) (map[string]string, error) {
	locations := map[string]string{}
	failed := map[string]error{}

	for _, dest := range p.destinations {
		if loc, ok := done[dest.Name()]; ok {
			p.logger.Debug(ctx, "Skipping %s: already published at %s", dest.Name(), loc)
			continue
		}

		loc, err := dest.Publish(ctx, art)
		if err != nil {
			p.logger.Error(ctx, "Publish to %s failed: %v", dest.Name(), err)
			failed[dest.Name()] = err
			continue
		}
		p.logger.Info(ctx, "Published %s: %s", dest.Name(), loc)
		locations[dest.Name()] = loc
	}

	if len(failed) > 0 {
		return locations, &PartialError{Failed: failed}
	}
	return locations, nil
}
