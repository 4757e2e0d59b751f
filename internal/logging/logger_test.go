package logging_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"romshelf/internal/logging"
)

func TestConsoleLoggerWritesComponentAndAttrs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.log")
	logger, err := logging.New(logging.Options{
		Level:       "debug",
		Format:      "console",
		OutputPaths: []string{path},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	scoped := logging.NewComponentLogger(logger, "scan")
	scoped.Info("file matched", logging.String("path", "/roms/nes/mario.nes"), logging.Int("system", 7))

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	line := strings.TrimSpace(string(data))
	if !strings.Contains(line, "INFO scan: file matched") {
		t.Fatalf("unexpected log line: %q", line)
	}
	if !strings.Contains(line, "path=/roms/nes/mario.nes") {
		t.Fatalf("missing path attr: %q", line)
	}
	if !strings.Contains(line, "system=7") {
		t.Fatalf("missing system attr: %q", line)
	}
}

func TestJSONLoggerUsesRenamedKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.log")
	logger, err := logging.New(logging.Options{
		Level:       "info",
		Format:      "json",
		OutputPaths: []string{path},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Info("scan complete")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	for _, key := range []string{`"ts":`, `"level":"info"`, `"msg":"scan complete"`} {
		if !strings.Contains(string(data), key) {
			t.Fatalf("json output missing %s: %s", key, data)
		}
	}
}

func TestLevelFiltering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.log")
	logger, err := logging.New(logging.Options{
		Level:       "warn",
		Format:      "console",
		OutputPaths: []string{path},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Info("quiet")
	logger.Warn("loud")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if strings.Contains(string(data), "quiet") {
		t.Fatal("info line should have been filtered")
	}
	if !strings.Contains(string(data), "loud") {
		t.Fatal("warn line missing")
	}
}

func TestUnsupportedFormatRejected(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "yaml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}
