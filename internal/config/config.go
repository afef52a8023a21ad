package config

import (
	"fmt"
	"os"
	"path/filepath"
)

type Config struct {
	Watch       WatchConfig       `yaml:"watch"`
	Ledger      LedgerConfig      `yaml:"ledger"`
	Metadata    MetadataConfig    `yaml:"metadata"`
	Transcribe  TranscribeConfig  `yaml:"transcribe"`
	Summarize   SummarizeConfig   `yaml:"summarize"`
	Transcript  TranscriptConfig  `yaml:"transcript"`
	Publish     PublishConfig     `yaml:"publish"`
	Pipeline    PipelineConfig    `yaml:"pipeline"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`
}

type WatchConfig struct {
	Dir string `yaml:"dir"`
	// Extensions lists the audio extensions treated as recordings.
	Extensions []string `yaml:"extensions"`
	// QuietPeriodSeconds is the interval between stability checks.
	QuietPeriodSeconds float64 `yaml:"quiet_period_seconds"`
	// StableChecks is the number of consecutive unchanged checks required
	// before a file is considered fully written.
	StableChecks int `yaml:"stable_checks"`
	// StabilizeTimeoutSeconds bounds how long a file may keep changing
	// before it is skipped.
	StabilizeTimeoutSeconds float64 `yaml:"stabilize_timeout_seconds"`
}

type LedgerConfig struct {
	// Path of the sqlite ledger database. Defaults to
	// <state_dir>/ledger.db.
	Path string `yaml:"path"`
}

type MetadataConfig struct {
	// CatalogPath points at the recording application's catalog database.
	// Empty disables catalog lookups; titles fall back to file metadata.
	CatalogPath string `yaml:"catalog_path"`
	MaxRetries  int    `yaml:"max_retries"`
	// RetryDelaySeconds between catalog lookups; the catalog row may land
	// after the audio file does.
	RetryDelaySeconds float64 `yaml:"retry_delay_seconds"`
}

type TranscribeConfig struct {
	// APIKey for the transcription service. The DEEPGRAM_API_KEY
	// environment variable overrides this.
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
	// Keyterms bias recognition toward domain vocabulary.
	Keyterms       []string `yaml:"keyterms"`
	TimeoutSeconds float64  `yaml:"timeout_seconds"`
	MaxRetries     int      `yaml:"max_retries"`
}

type SummarizeConfig struct {
	// Provider selects the summarization backend: "openai", "gemini", or
	// empty to disable summarization.
	Provider string `yaml:"provider"`
	// APIKey for the selected provider. OPENAI_API_KEY / GEMINI_API_KEY
	// environment variables override this.
	APIKey         string  `yaml:"api_key"`
	Model          string  `yaml:"model"`
	TimeoutSeconds float64 `yaml:"timeout_seconds"`
}

type TranscriptConfig struct {
	// MergeGapSeconds is the largest silence between two words of the same
	// speaker that still merges them into one turn.
	MergeGapSeconds float64 `yaml:"merge_gap_seconds"`
}

type PublishConfig struct {
	NotesFolder  string `yaml:"notes_folder"`
	NotesAccount string `yaml:"notes_account"`
	// OutputDir receives one markdown file per completed recording.
	// Empty disables the flat-file destination.
	OutputDir string `yaml:"output_dir"`
	// DocxDir receives one .docx per completed recording. Empty disables.
	DocxDir string `yaml:"docx_dir"`
	// Notify sends a desktop notification when a recording fails.
	Notify bool `yaml:"notify"`
}

type PipelineConfig struct {
	// MaxAttempts is the retry ceiling; a failed entry that reaches it is
	// abandoned until an operator resets it.
	MaxAttempts int `yaml:"max_attempts"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

// StateDir is where the ledger and log file live by default.
func StateDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".scribed")
}

func (c *Config) Validate() error {
	if c.Watch.Dir == "" {
		return fmt.Errorf("watch.dir is required")
	}
	if c.Publish.NotesFolder == "" && c.Publish.OutputDir == "" && c.Publish.DocxDir == "" {
		return fmt.Errorf("at least one publish destination is required")
	}

	if len(c.Watch.Extensions) == 0 {
		c.Watch.Extensions = []string{".m4a"}
	}
	if c.Watch.QuietPeriodSeconds == 0 {
		c.Watch.QuietPeriodSeconds = 2.0
	}
	if c.Watch.StableChecks == 0 {
		c.Watch.StableChecks = 3
	}
	if c.Watch.StabilizeTimeoutSeconds == 0 {
		c.Watch.StabilizeTimeoutSeconds = 300
	}
	if c.Ledger.Path == "" {
		c.Ledger.Path = filepath.Join(StateDir(), "ledger.db")
	}
	if c.Metadata.MaxRetries == 0 {
		c.Metadata.MaxRetries = 3
	}
	if c.Metadata.RetryDelaySeconds == 0 {
		c.Metadata.RetryDelaySeconds = 2.0
	}
	if c.Transcribe.Model == "" {
		c.Transcribe.Model = "nova-3"
	}
	if c.Transcribe.TimeoutSeconds == 0 {
		c.Transcribe.TimeoutSeconds = 300
	}
	if c.Transcribe.MaxRetries == 0 {
		c.Transcribe.MaxRetries = 3
	}
	if c.Summarize.Model == "" {
		switch c.Summarize.Provider {
		case "gemini":
			c.Summarize.Model = "gemini-2.5-flash"
		default:
			c.Summarize.Model = "gpt-4o-mini"
		}
	}
	if c.Summarize.TimeoutSeconds == 0 {
		c.Summarize.TimeoutSeconds = 60
	}
	if c.Transcript.MergeGapSeconds == 0 {
		c.Transcript.MergeGapSeconds = 2.0
	}
	if c.Publish.NotesAccount == "" {
		c.Publish.NotesAccount = "iCloud"
	}
	if c.Pipeline.MaxAttempts == 0 {
		c.Pipeline.MaxAttempts = 3
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 2
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}

	if c.Transcribe.APIKey == "" {
		return fmt.Errorf("transcribe.api_key is required (or set DEEPGRAM_API_KEY)")
	}
	if c.Summarize.Provider != "" && c.Summarize.Provider != "openai" && c.Summarize.Provider != "gemini" {
		return fmt.Errorf("summarize.provider must be \"openai\", \"gemini\", or empty")
	}
	if c.Summarize.Provider != "" && c.Summarize.APIKey == "" {
		return fmt.Errorf("summarize.api_key is required when a provider is configured")
	}

	return nil
}
