package session

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotFound indicates no stored session exists for the username.
var ErrNotFound = errors.New("session not found")

// Session holds the catalog credentials persisted between runs.
type Session struct {
	Username string `json:"username"`
	APIKey   string `json:"api_key"`
}

// Path returns the session file location for a username.
func Path(dir, username string) string {
	return filepath.Join(dir, username+".session")
}

// Load reads the stored session for username from dir.
func Load(dir, username string) (Session, error) {
	data, err := os.ReadFile(Path(dir, username))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Session{}, ErrNotFound
		}
		return Session{}, fmt.Errorf("read session: %w", err)
	}
	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return Session{}, fmt.Errorf("parse session: %w", err)
	}
	if sess.Username == "" {
		sess.Username = username
	}
	return sess, nil
}

// Save writes the session to dir, creating it if needed. The file is
// user-only readable since it carries an API key.
func Save(dir string, sess Session) error {
	if strings.TrimSpace(sess.Username) == "" {
		return errors.New("session username required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create session directory: %w", err)
	}
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := os.WriteFile(Path(dir, sess.Username), data, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// Remove deletes the stored session for username. Missing files are not an error.
func Remove(dir, username string) error {
	err := os.Remove(Path(dir, username))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}

// Prompter asks the user for a value when credentials are incomplete.
type Prompter struct {
	In  io.Reader
	Out io.Writer
}

func (p Prompter) ask(label string) (string, error) {
	if p.In == nil || p.Out == nil {
		return "", errors.New("credentials incomplete and no terminal available")
	}
	fmt.Fprintf(p.Out, "%s: ", label)
	reader := bufio.NewReader(p.In)
	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// Resolve produces a usable session from flags, the stored session, or an
// interactive prompt, matching the precedence users expect:
//
//   - an explicit API key always wins and rewrites the stored session;
//   - otherwise a stored session for the username is reused;
//   - otherwise the key is prompted for and the result stored.
func Resolve(dir, username, apiKey string, prompt Prompter) (Session, error) {
	username = strings.TrimSpace(username)
	apiKey = strings.TrimSpace(apiKey)

	if username == "" {
		value, err := prompt.ask("Your username on RetroAchievements")
		if err != nil {
			return Session{}, err
		}
		username = value
		if username == "" {
			return Session{}, errors.New("username required")
		}
	}

	if apiKey != "" {
		sess := Session{Username: username, APIKey: apiKey}
		if err := Save(dir, sess); err != nil {
			return Session{}, err
		}
		return sess, nil
	}

	sess, err := Load(dir, username)
	if err == nil && sess.APIKey != "" {
		return sess, nil
	}
	if err != nil && !errors.Is(err, ErrNotFound) {
		return Session{}, err
	}

	value, err := prompt.ask("Your web API key")
	if err != nil {
		return Session{}, err
	}
	if value == "" {
		return Session{}, errors.New("api key required")
	}
	sess = Session{Username: username, APIKey: value}
	if err := Save(dir, sess); err != nil {
		return Session{}, err
	}
	return sess, nil
}
