package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runCLI(t *testing.T, args []string, configPath string) (string, error) {
	t.Helper()

	cmd := newRootCommand()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	if configPath != "" {
		args = append([]string{"--config", configPath}, args...)
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func writeTestConfig(t *testing.T, historyEnabled bool) string {
	t.Helper()

	base := t.TempDir()
	configPath := filepath.Join(base, "config.toml")
	content := fmt.Sprintf(`[paths]
session_dir = %q
data_dir = %q
log_dir = %q

[catalog]
username = "tester"
api_key = "test-key"

[hasher]
binary = "definitely-not-a-real-hasher"

[history]
enabled = %t
`,
		filepath.Join(base, "sessions"),
		filepath.Join(base, "data"),
		filepath.Join(base, "logs"),
		historyEnabled,
	)
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write test config: %v", err)
	}
	return configPath
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q, got:\n%s", needle, haystack)
	}
}

func TestRootShowsHelp(t *testing.T) {
	out, err := runCLI(t, nil, "")
	if err != nil {
		t.Fatalf("root command: %v", err)
	}
	requireContains(t, out, "romshelf")
	requireContains(t, out, "scan")
}

func TestSystemsCommandListsRegistry(t *testing.T) {
	out, err := runCLI(t, []string{"systems"}, "")
	if err != nil {
		t.Fatalf("systems command: %v", err)
	}
	requireContains(t, out, "Nintendo Entertainment System")
	requireContains(t, out, "nes")
}

func TestScanFailsFastWithoutHasher(t *testing.T) {
	configPath := writeTestConfig(t, false)
	_, err := runCLI(t, []string{"scan", t.TempDir()}, configPath)
	if err == nil {
		t.Fatal("expected scan to fail without the hasher binary")
	}
	if !strings.Contains(err.Error(), "RAHasher") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestHistoryCommandWhenDisabled(t *testing.T) {
	configPath := writeTestConfig(t, false)
	_, err := runCLI(t, []string{"history"}, configPath)
	if err == nil || !strings.Contains(err.Error(), "disabled") {
		t.Fatalf("expected disabled-history error, got: %v", err)
	}
}

func TestHistoryCommandEmpty(t *testing.T) {
	configPath := writeTestConfig(t, true)
	out, err := runCLI(t, []string{"history"}, configPath)
	if err != nil {
		t.Fatalf("history command: %v", err)
	}
	requireContains(t, out, "No scan runs recorded yet.")
}
