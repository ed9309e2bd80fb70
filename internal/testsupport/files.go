package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteCatalog writes a catalog document to path, creating parent
// directories as needed.
func WriteCatalog(t testing.TB, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("create catalog directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
}

// WriteAudioFile creates a placeholder audio file under baseDir at the given
// relative path and returns the absolute path.
func WriteAudioFile(t testing.TB, baseDir, relPath string) string {
	t.Helper()

	full := filepath.Join(baseDir, relPath)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		t.Fatalf("create audio directory: %v", err)
	}
	if err := os.WriteFile(full, []byte("RIFF....WAVE"), 0o644); err != nil {
		t.Fatalf("write audio file: %v", err)
	}
	return full
}
