package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/voicescribe/scribe/internal/config"
	"github.com/voicescribe/scribe/internal/ledger"
	"github.com/voicescribe/scribe/internal/logger"
	"github.com/voicescribe/scribe/internal/metadata"
	"github.com/voicescribe/scribe/internal/pipeline"
	"github.com/voicescribe/scribe/internal/publish"
	"github.com/voicescribe/scribe/internal/summarize"
	"github.com/voicescribe/scribe/internal/transcribe"
	"github.com/voicescribe/scribe/internal/watcher"
	"github.com/voicescribe/scribe/pkg/executor"
)

func main() {
	configPath := flag.String("config", filepath.Join(config.StateDir(), "config.yaml"), "path to the configuration file")
	backfill := flag.Bool("backfill", false, "process existing recordings once and exit")
	retryFailed := flag.Bool("retry-failed", false, "re-run failed recordings once and exit")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewWithFile(cfg.Logging.Level, cfg.Logging.File)
	log.Info(ctx, "Scribe starting")
	log.Info(ctx, "Recordings: %s", cfg.Watch.Dir)
	log.Info(ctx, "Ledger: %s", cfg.Ledger.Path)

	if err := os.MkdirAll(config.StateDir(), 0o755); err != nil {
		log.Error(ctx, "Failed to create state dir: %v", err)
		os.Exit(1)
	}

	led, err := ledger.New(cfg.Ledger.Path)
	if err != nil {
		log.Error(ctx, "Failed to open ledger: %v", err)
		os.Exit(1)
	}
	defer led.Close()

	summarizer, err := summarize.New(cfg.Summarize, log)
	if err != nil {
		log.Error(ctx, "Failed to configure summarizer: %v", err)
		os.Exit(1)
	}
	if summarizer == nil {
		log.Info(ctx, "Summarization disabled")
	}

	exec := executor.New()
	var notifier publish.Notifier = publish.NopNotifier{}
	if cfg.Publish.Notify {
		notifier = publish.NewNotifier(exec, log)
	}

	pipe := pipeline.New(
		cfg,
		led,
		metadata.New(cfg.Metadata, log),
		transcribe.New(cfg.Transcribe, log),
		summarizer,
		publish.New(cfg.Publish, exec, log),
		notifier,
		log,
	)

	// Runs left in flight by a crashed process have no live worker; put
	// them back on the retry path before starting any new work.
	if err := pipe.RecoverInFlight(ctx); err != nil {
		log.Error(ctx, "Failed to recover interrupted recordings: %v", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info(ctx, "Shutdown signal received")
		cancel()
	}()

	// One-shot modes run to completion and exit.
	if *backfill {
		if err := pipe.Backfill(ctx); err != nil {
			log.Error(ctx, "Backfill: %v", err)
			os.Exit(1)
		}
		return
	}
	if *retryFailed {
		if err := pipe.RetryFailed(ctx); err != nil {
			log.Error(ctx, "Retry: %v", err)
			os.Exit(1)
		}
		return
	}

	w, err := watcher.New(cfg.Watch, pipe.Process, log, cfg.Performance.MaxConcurrent)
	if err != nil {
		log.Error(ctx, "Failed to create watcher: %v", err)
		os.Exit(1)
	}
	defer w.Stop()

	log.Info(ctx, "Watching %s, press Ctrl+C to stop", cfg.Watch.Dir)
	if err := w.Start(ctx); err != nil && err != context.Canceled {
		log.Error(ctx, "Watcher: %v", err)
		os.Exit(1)
	}
	log.Info(ctx, "Scribe stopped")
}
