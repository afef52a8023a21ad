// Package recording identifies audio recordings and derives their stable
// fingerprints, which key every ledger entry.
package recording

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Recording identifies one audio file on disk. Immutable once captured.
type Recording struct {
	Path        string
	Fingerprint string
	Title       string
	CreatedAt   time.Time
	Duration    time.Duration
	Size        int64
}

// Fingerprint derives the ledger key from file identity: base name, size and
// modification time. It survives a move of the same file between directories
// but distinguishes a rewritten file at the same path.
func Fingerprint(name string, size int64, modTime time.Time) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%d|%d", filepath.Base(name), size, modTime.UnixNano())))
	return hex.EncodeToString(sum[:])
}

// FromFile captures a Recording for the file at path, with title and timing
// filled from filesystem metadata. Callers overlay catalog metadata when a
// catalog row exists.
func FromFile(path string) (Recording, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Recording{}, fmt.Errorf("stat recording: %w", err)
	}
	return Recording{
		Path:        path,
		Fingerprint: Fingerprint(path, info.Size(), info.ModTime()),
		Title:       FallbackTitle(path, info.ModTime()),
		CreatedAt:   info.ModTime(),
		Size:        info.Size(),
	}, nil
}

// FallbackTitle names a recording from its modification time when no catalog
// metadata is available.
func FallbackTitle(path string, modTime time.Time) string {
	return fmt.Sprintf("Voice Memo - %s", modTime.UTC().Format("Jan 2, 2006 3:04 PM"))
}
