package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const minimalConfig = `
watch:
  dir: /tmp/recordings
transcribe:
  api_key: dg-test-key
publish:
  output_dir: /tmp/transcripts
`

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if got := cfg.Watch.Extensions; len(got) != 1 || got[0] != ".m4a" {
		t.Errorf("extensions = %v, want [.m4a]", got)
	}
	if cfg.Watch.QuietPeriodSeconds != 2.0 {
		t.Errorf("quiet period = %v, want 2.0", cfg.Watch.QuietPeriodSeconds)
	}
	if cfg.Watch.StableChecks != 3 {
		t.Errorf("stable checks = %d, want 3", cfg.Watch.StableChecks)
	}
	if cfg.Transcribe.Model != "nova-3" {
		t.Errorf("model = %q, want nova-3", cfg.Transcribe.Model)
	}
	if cfg.Transcript.MergeGapSeconds != 2.0 {
		t.Errorf("merge gap = %v, want 2.0", cfg.Transcript.MergeGapSeconds)
	}
	if cfg.Pipeline.MaxAttempts != 3 {
		t.Errorf("max attempts = %d, want 3", cfg.Pipeline.MaxAttempts)
	}
	if cfg.Performance.MaxConcurrent != 2 {
		t.Errorf("max concurrent = %d, want 2", cfg.Performance.MaxConcurrent)
	}
	if cfg.Publish.NotesAccount != "iCloud" {
		t.Errorf("notes account = %q, want iCloud", cfg.Publish.NotesAccount)
	}
	if cfg.Ledger.Path == "" {
		t.Error("ledger path default not applied")
	}
}

func TestLoadValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name: "missing watch dir",
			content: `
transcribe:
  api_key: key
publish:
  output_dir: /tmp/out
`,
			wantErr: "watch.dir",
		},
		{
			name: "no publish destination",
			content: `
watch:
  dir: /tmp/recordings
transcribe:
  api_key: key
`,
			wantErr: "publish destination",
		},
		{
			name: "missing transcribe key",
			content: `
watch:
  dir: /tmp/recordings
publish:
  output_dir: /tmp/out
`,
			wantErr: "api_key",
		},
		{
			name: "unknown summarize provider",
			content: minimalConfig + `
summarize:
  provider: anthropic
  api_key: key
`,
			wantErr: "summarize.provider",
		},
		{
			name: "provider without key",
			content: minimalConfig + `
summarize:
  provider: openai
`,
			wantErr: "summarize.api_key",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DEEPGRAM_API_KEY", "")
			_, err := Load(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("Load() = nil, want validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("Load() = nil, want error for missing file")
	}
}

func TestLoadEnvOverridesAPIKeys(t *testing.T) {
	t.Setenv("DEEPGRAM_API_KEY", "dg-from-env")
	t.Setenv("OPENAI_API_KEY", "oa-from-env")

	cfg, err := Load(writeConfig(t, minimalConfig+`
summarize:
  provider: openai
  api_key: from-file
`))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Transcribe.APIKey != "dg-from-env" {
		t.Errorf("transcribe key = %q, want environment value", cfg.Transcribe.APIKey)
	}
	if cfg.Summarize.APIKey != "oa-from-env" {
		t.Errorf("summarize key = %q, want environment value", cfg.Summarize.APIKey)
	}
}

func TestLoadFullConfig(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
watch:
  dir: /tmp/recordings
  extensions: [".m4a", ".wav"]
  quiet_period_seconds: 1.5
  stable_checks: 5
ledger:
  path: /tmp/state/ledger.db
metadata:
  catalog_path: /tmp/catalog.db
transcribe:
  api_key: dg-key
  model: nova-2
  keyterms: ["kubernetes", "sqlite"]
summarize:
  provider: gemini
  api_key: gm-key
publish:
  notes_folder: Transcripts
  output_dir: /tmp/out
  docx_dir: /tmp/docx
  notify: true
pipeline:
  max_attempts: 5
logging:
  level: debug
`))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if len(cfg.Watch.Extensions) != 2 {
		t.Errorf("extensions = %v, want 2", cfg.Watch.Extensions)
	}
	if cfg.Transcribe.Model != "nova-2" {
		t.Errorf("model = %q, default overwrote the configured value", cfg.Transcribe.Model)
	}
	if cfg.Summarize.Model != "gemini-2.5-flash" {
		t.Errorf("summarize model = %q, want gemini default", cfg.Summarize.Model)
	}
	if cfg.Pipeline.MaxAttempts != 5 {
		t.Errorf("max attempts = %d, want 5", cfg.Pipeline.MaxAttempts)
	}
	if !cfg.Publish.Notify {
		t.Error("notify = false, want true")
	}
}
