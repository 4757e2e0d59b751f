package testsupport

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"romshelf/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.SessionDir = filepath.Join(base, "sessions")
	cfgVal.Paths.DataDir = filepath.Join(base, "data")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Catalog.Username = "tester"
	cfgVal.Catalog.APIKey = "test-key"

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithCatalogBaseURL points the catalog client at a test server.
func WithCatalogBaseURL(url string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Catalog.BaseURL = url
	}
}

// WithScanDefaults sets the default scan flags on the test config.
func WithScanDefaults(rename, remove, dedup bool) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Scan.RenameFiles = rename
		b.cfg.Scan.RemoveInvalid = remove
		b.cfg.Scan.DedupFiles = dedup
	}
}

// WithStubbedBinaries writes stub executables for the provided names and
// prepends them to PATH. If names is empty, the default hasher binary is
// stubbed.
func WithStubbedBinaries(names ...string) ConfigOption {
	return func(b *configBuilder) {
		if len(names) == 0 {
			names = []string{"RAHasher"}
		}
		for _, name := range names {
			StubBinary(b.t, b.baseDir, name, "")
		}
	}
}

// WithStubbedHasher stubs the hasher binary so that it prints the given
// digest for every input file.
func WithStubbedHasher(digest string) ConfigOption {
	return func(b *configBuilder) {
		StubBinary(b.t, b.baseDir, "RAHasher", digest)
	}
}

// StubBinary writes an executable shell stub under baseDir/bin that echoes
// output, and prepends that directory to PATH for the duration of the test.
func StubBinary(t testing.TB, baseDir, name, output string) {
	t.Helper()

	binDir := filepath.Join(baseDir, "bin")
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		t.Fatalf("mkdir bin dir: %v", err)
	}
	script := fmt.Sprintf("#!/bin/sh\necho %q\nexit 0\n", output)
	target := filepath.Join(binDir, name)
	if err := os.WriteFile(target, []byte(script), 0o755); err != nil {
		t.Fatalf("write stub %s: %v", name, err)
	}

	oldPath := os.Getenv("PATH")
	if err := os.Setenv("PATH", binDir+string(os.PathListSeparator)+oldPath); err != nil {
		t.Fatalf("set PATH: %v", err)
	}
	t.Cleanup(func() {
		_ = os.Setenv("PATH", oldPath)
	})
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.DataDir)
}
