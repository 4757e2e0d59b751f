package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteROM creates a small file with the given payload, creating parent
// directories as needed, and returns its path.
func WriteROM(t testing.TB, dir, name, payload string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
