package hasher

import (
	"context"
	"errors"
	"os/exec"
	"strconv"
	"strings"
)

// Resolver computes a content hash for a local file. The boolean reports
// whether a hash was produced; a failed or silent hashing run is "no hash",
// not an error, so a single unreadable file never aborts a scan.
type Resolver interface {
	Hash(ctx context.Context, systemID int, path string) (string, bool, error)
}

// Executor abstracts command execution for testability.
type Executor interface {
	Output(ctx context.Context, binary string, args []string) ([]byte, error)
}

type commandExecutor struct{}

func (commandExecutor) Output(ctx context.Context, binary string, args []string) ([]byte, error) {
	return exec.CommandContext(ctx, binary, args...).Output()
}

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// Client invokes the external hashing utility per file.
type Client struct {
	binary string
	exec   Executor
}

var _ Resolver = (*Client)(nil)

// New constructs a hasher client around the given binary.
func New(binary string, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("hasher binary required")
	}
	client := &Client{binary: binary, exec: commandExecutor{}}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Hash runs the hashing utility synchronously and returns the first non-empty
// stdout line as the digest. The utility exits after printing one hash; the
// call blocks until its output is fully drained.
func (c *Client) Hash(ctx context.Context, systemID int, path string) (string, bool, error) {
	output, err := c.exec.Output(ctx, c.binary, []string{strconv.Itoa(systemID), path})
	if err != nil {
		if ctx.Err() != nil {
			return "", false, ctx.Err()
		}
		// Hasher failures on individual files resolve to "not found".
		return "", false, nil
	}
	for _, line := range strings.Split(string(output), "\n") {
		if digest := strings.TrimSpace(line); digest != "" {
			return digest, true, nil
		}
	}
	return "", false, nil
}
