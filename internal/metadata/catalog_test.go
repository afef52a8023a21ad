package metadata

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/voicescribe/scribe/internal/config"
	"github.com/voicescribe/scribe/internal/logger"
)

func writeCatalog(t *testing.T, rows ...[5]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.db")

	db, err := sql.Open("sqlite", "file:"+path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	if _, err := db.Exec(`
		CREATE TABLE ZCLOUDRECORDING (
			ZCUSTOMLABEL TEXT, ZENCRYPTEDTITLE TEXT,
			ZDATE REAL, ZDURATION REAL, ZPATH TEXT
		)`); err != nil {
		t.Fatal(err)
	}
	for _, r := range rows {
		if _, err := db.Exec(`
			INSERT INTO ZCLOUDRECORDING (ZCUSTOMLABEL, ZENCRYPTEDTITLE, ZDATE, ZDURATION, ZPATH)
			VALUES (?, ?, ?, ?, ?)`, r[0], r[1], r[2], r[3], r[4]); err != nil {
			t.Fatal(err)
		}
	}
	return path
}

func writeRecordingFile(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte("audio"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func newTestSource(t *testing.T, catalogPath string) Source {
	t.Helper()
	return New(config.MetadataConfig{
		CatalogPath:       catalogPath,
		MaxRetries:        1,
		RetryDelaySeconds: 0.01,
	}, logger.New("error"))
}

func TestLookupFromCatalog(t *testing.T) {
	rec := writeRecordingFile(t, "memo.m4a")
	// ZDATE 0 is Jan 1, 2001 UTC.
	catalog := writeCatalog(t, [5]any{"Weekly Sync", "", 0.0, 125.0, "Recordings/memo.m4a"})

	meta, err := newTestSource(t, catalog).Lookup(context.Background(), rec)
	if err != nil {
		t.Fatalf("Lookup() error: %v", err)
	}
	if meta.Title != "Weekly Sync" {
		t.Errorf("title = %q, want catalog custom label", meta.Title)
	}
	if want := time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC); !meta.Date.Equal(want) {
		t.Errorf("date = %v, want %v", meta.Date, want)
	}
	if meta.Duration != 125*time.Second {
		t.Errorf("duration = %v, want 2m5s", meta.Duration)
	}
}

func TestLookupPrefersCustomLabel(t *testing.T) {
	rec := writeRecordingFile(t, "memo.m4a")
	catalog := writeCatalog(t, [5]any{"", "Auto Title", 100.0, 10.0, "Recordings/memo.m4a"})

	meta, err := newTestSource(t, catalog).Lookup(context.Background(), rec)
	if err != nil {
		t.Fatal(err)
	}
	if meta.Title != "Auto Title" {
		t.Errorf("title = %q, want encrypted title when custom label empty", meta.Title)
	}
}

func TestLookupFallsBackOnMiss(t *testing.T) {
	rec := writeRecordingFile(t, "memo.m4a")
	catalog := writeCatalog(t) // empty catalog

	meta, err := newTestSource(t, catalog).Lookup(context.Background(), rec)
	if err != nil {
		t.Fatalf("missing catalog row must not fail processing: %v", err)
	}
	if meta.Title == "" {
		t.Error("fallback title is empty")
	}
	if meta.Date.IsZero() {
		t.Error("fallback date is zero")
	}
}

func TestLookupWithoutCatalog(t *testing.T) {
	rec := writeRecordingFile(t, "memo.m4a")

	meta, err := newTestSource(t, "").Lookup(context.Background(), rec)
	if err != nil {
		t.Fatal(err)
	}
	if meta.Title == "" {
		t.Error("fallback title is empty")
	}
}

func TestLookupMissingFile(t *testing.T) {
	_, err := newTestSource(t, "").Lookup(context.Background(), filepath.Join(t.TempDir(), "gone.m4a"))
	if err == nil {
		t.Error("expected error for unreadable recording")
	}
}
