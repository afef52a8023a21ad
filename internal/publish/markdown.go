package publish

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/voicescribe/scribe/internal/logger"
)

// markdownDestination writes one flat markdown file per recording, named
// deterministically from the recording's date and title so a retry
// overwrites rather than duplicates.
type markdownDestination struct {
	dir    string
	logger logger.Logger
}

func (d *markdownDestination) Name() string { return DestMarkdown }

func (d *markdownDestination) Publish(ctx context.Context, art Artifact) (string, error) {
	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	path := filepath.Join(d.dir, artifactFilename(art, ".md"))
	if err := os.WriteFile(path, []byte(art.Markdown), 0o644); err != nil {
		return "", fmt.Errorf("write markdown: %w", err)
	}
	return path, nil
}

// artifactFilename builds "<YYYY-MM-DD> - <sanitized title><ext>".
func artifactFilename(art Artifact, ext string) string {
	return fmt.Sprintf("%s - %s%s", art.Date.Format("2006-01-02"), sanitizeTitle(art.Title), ext)
}

func sanitizeTitle(title string) string {
	var b strings.Builder
	for _, c := range title {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			b.WriteRune(c)
		case c == ' ' || c == '-' || c == '_':
			b.WriteRune(c)
		}
	}
	return strings.TrimSpace(b.String())
}
