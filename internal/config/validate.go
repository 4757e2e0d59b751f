package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate checks configuration values that would otherwise fail deep inside a scan.
func (c *Config) Validate() error {
	var problems []string

	if strings.TrimSpace(c.Paths.SessionDir) == "" {
		problems = append(problems, "paths.session_dir must not be empty")
	}
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		problems = append(problems, "paths.data_dir must not be empty")
	}

	if parsed, err := url.Parse(c.Catalog.BaseURL); err != nil {
		problems = append(problems, fmt.Sprintf("catalog.base_url is not a valid URL: %v", err))
	} else if parsed.Scheme != "http" && parsed.Scheme != "https" {
		problems = append(problems, fmt.Sprintf("catalog.base_url must use http or https, got %q", parsed.Scheme))
	}

	if strings.ContainsAny(c.Hasher.Binary, " \t") {
		problems = append(problems, "hasher.binary must be a bare executable name or path without spaces")
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Sprintf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level))
	}

	if len(problems) == 0 {
		return nil
	}
	return errors.New("invalid configuration: " + strings.Join(problems, "; "))
}
