package recording

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFingerprintStableAcrossDirectories(t *testing.T) {
	mod := time.Date(2025, 2, 5, 14, 30, 0, 0, time.UTC)

	a := Fingerprint("/old/dir/memo.m4a", 1024, mod)
	b := Fingerprint("/new/dir/memo.m4a", 1024, mod)
	if a != b {
		t.Errorf("same name/size/mtime in different dirs should fingerprint equal: %s != %s", a, b)
	}
}

func TestFingerprintDistinguishesRewrites(t *testing.T) {
	mod := time.Date(2025, 2, 5, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		size int64
		mod  time.Time
	}{
		{"different size", 2048, mod},
		{"different mtime", 1024, mod.Add(time.Second)},
	}

	base := Fingerprint("memo.m4a", 1024, mod)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Fingerprint("memo.m4a", tt.size, tt.mod); got == base {
				t.Error("fingerprint should differ")
			}
		})
	}
}

func TestFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "memo.m4a")
	if err := os.WriteFile(path, []byte("audio bytes"), 0o644); err != nil {
		t.Fatal(err)
	}

	rec, err := FromFile(path)
	if err != nil {
		t.Fatalf("FromFile() error: %v", err)
	}
	if rec.Fingerprint == "" {
		t.Error("fingerprint is empty")
	}
	if rec.Size != int64(len("audio bytes")) {
		t.Errorf("size = %d, want %d", rec.Size, len("audio bytes"))
	}
	if rec.Title == "" {
		t.Error("fallback title is empty")
	}
}

func TestFromFileMissing(t *testing.T) {
	if _, err := FromFile(filepath.Join(t.TempDir(), "nope.m4a")); err == nil {
		t.Error("expected error for missing file")
	}
}
