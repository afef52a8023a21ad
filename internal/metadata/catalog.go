package metadata

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/voicescribe/scribe/internal/recording"
)

// The catalog stores timestamps as seconds since Jan 1, 2001 UTC.
const appleEpochOffset = 978307200

// Lookup resolves title, date and duration for the recording at path. The
// catalog row can land after the audio file appears, so misses are retried a
// bounded number of times before falling back to filesystem metadata.
func (s *implSource) Lookup(ctx context.Context, path string) (Metadata, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Metadata{}, fmt.Errorf("stat recording: %w", err)
	}
	fallback := Metadata{
		Title: recording.FallbackTitle(path, info.ModTime()),
		Date:  info.ModTime(),
	}

	if s.catalogPath == "" {
		return fallback, nil
	}

	name := filepath.Base(path)
	for attempt := 0; attempt < s.maxRetries; attempt++ {
		meta, found, err := s.query(name)
		if err != nil {
			s.logger.Warn(ctx, "Catalog read attempt %d failed: %v", attempt+1, err)
		} else if found {
			if meta.Title == "" {
				meta.Title = fallback.Title
			}
			return meta, nil
		}

		if attempt < s.maxRetries-1 {
			s.logger.Debug(ctx, "No catalog row for %s, retrying in %s", name, s.retryDelay)
			select {
			case <-time.After(s.retryDelay):
			case <-ctx.Done():
				return fallback, nil
			}
		}
	}

	s.logger.Info(ctx, "No catalog row for %s, using fallback title", name)
	return fallback, nil
}

func (s *implSource) query(name string) (Metadata, bool, error) {
	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?mode=ro", s.catalogPath))
	if err != nil {
		return Metadata{}, false, fmt.Errorf("open catalog: %w", err)
	}
	defer db.Close()

	row := db.QueryRow(`
		SELECT ZCUSTOMLABEL, ZENCRYPTEDTITLE, ZDATE, ZDURATION
		FROM ZCLOUDRECORDING WHERE ZPATH LIKE ?`, "%"+name)

	var customLabel, encryptedTitle sql.NullString
	var date, duration sql.NullFloat64
	if err := row.Scan(&customLabel, &encryptedTitle, &date, &duration); err != nil {
		if err == sql.ErrNoRows {
			return Metadata{}, false, nil
		}
		return Metadata{}, false, fmt.Errorf("query catalog: %w", err)
	}

	var meta Metadata
	if customLabel.Valid && customLabel.String != "" {
		meta.Title = customLabel.String
	} else if encryptedTitle.Valid {
		meta.Title = encryptedTitle.String
	}
	if date.Valid {
		meta.Date = time.Unix(int64(date.Float64)+appleEpochOffset, 0).UTC()
	}
	if duration.Valid {
		meta.Duration = time.Duration(duration.Float64 * float64(time.Second))
	}
	return meta, true, nil
}
