package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeCatalog()
	c.normalizeHasher()
	c.normalizeHistory()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.SessionDir) == "" {
		c.Paths.SessionDir = defaultSessionDir
	}
	if c.Paths.SessionDir, err = expandPath(c.Paths.SessionDir); err != nil {
		return fmt.Errorf("paths.session_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeCatalog() {
	c.Catalog.BaseURL = strings.TrimRight(strings.TrimSpace(c.Catalog.BaseURL), "/")
	if c.Catalog.BaseURL == "" {
		c.Catalog.BaseURL = defaultCatalogBaseURL
	}
	c.Catalog.Username = strings.TrimSpace(c.Catalog.Username)
	c.Catalog.APIKey = strings.TrimSpace(c.Catalog.APIKey)
	if c.Catalog.APIKey == "" {
		if value, ok := os.LookupEnv("RA_API_KEY"); ok {
			c.Catalog.APIKey = strings.TrimSpace(value)
		}
	}
	if c.Catalog.RequestTimeout <= 0 {
		c.Catalog.RequestTimeout = defaultCatalogRequestTimeout
	}
}

func (c *Config) normalizeHasher() {
	c.Hasher.Binary = strings.TrimSpace(c.Hasher.Binary)
	if c.Hasher.Binary == "" {
		c.Hasher.Binary = defaultHasherBinary
	}
}

func (c *Config) normalizeHistory() {
	if c.History.KeepRuns <= 0 {
		c.History.KeepRuns = defaultHistoryKeepRuns
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
