package session_test

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"romshelf/internal/session"
)

func TestSaveAndLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	sess := session.Session{Username: "player1", APIKey: "abc123"}
	if err := session.Save(dir, sess); err != nil {
		t.Fatalf("Save: %v", err)
	}

	info, err := os.Stat(session.Path(dir, "player1"))
	if err != nil {
		t.Fatalf("stat session file: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Fatalf("session file mode = %o, want 600", perm)
	}

	loaded, err := session.Load(dir, "player1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded != sess {
		t.Fatalf("round trip mismatch: %+v != %+v", loaded, sess)
	}
}

func TestLoadMissingReturnsNotFound(t *testing.T) {
	_, err := session.Load(t.TempDir(), "ghost")
	if !errors.Is(err, session.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestResolveExplicitKeyOverwritesStored(t *testing.T) {
	dir := t.TempDir()
	if err := session.Save(dir, session.Session{Username: "player1", APIKey: "old"}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	sess, err := session.Resolve(dir, "player1", "new", session.Prompter{})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if sess.APIKey != "new" {
		t.Fatalf("expected explicit key to win, got %q", sess.APIKey)
	}

	stored, err := session.Load(dir, "player1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if stored.APIKey != "new" {
		t.Fatalf("stored session not rewritten: %q", stored.APIKey)
	}
}

func TestResolveReusesStoredSession(t *testing.T) {
	dir := t.TempDir()
	if err := session.Save(dir, session.Session{Username: "player1", APIKey: "stored"}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	sess, err := session.Resolve(dir, "player1", "", session.Prompter{})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if sess.APIKey != "stored" {
		t.Fatalf("expected stored key, got %q", sess.APIKey)
	}
}

func TestResolvePromptsAndPersists(t *testing.T) {
	dir := t.TempDir()
	in := strings.NewReader("player2\nsecret-key\n")
	var out bytes.Buffer

	sess, err := session.Resolve(dir, "", "", session.Prompter{In: in, Out: &out})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if sess.Username != "player2" || sess.APIKey != "secret-key" {
		t.Fatalf("unexpected session: %+v", sess)
	}
	if !strings.Contains(out.String(), "username") {
		t.Fatalf("expected username prompt, got %q", out.String())
	}

	stored, err := session.Load(dir, "player2")
	if err != nil {
		t.Fatalf("Load after prompt: %v", err)
	}
	if stored.APIKey != "secret-key" {
		t.Fatalf("prompted key not persisted: %q", stored.APIKey)
	}
}

func TestResolveWithoutTerminalFails(t *testing.T) {
	if _, err := session.Resolve(t.TempDir(), "", "", session.Prompter{}); err == nil {
		t.Fatal("expected error when prompting is unavailable")
	}
}
