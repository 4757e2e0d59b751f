package main

import (
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"romshelf/internal/catalog"
	"romshelf/internal/config"
	"romshelf/internal/logging"
	"romshelf/internal/session"
	"romshelf/internal/systems"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error

	registryOnce sync.Once
	registry     *systems.Registry
	registryErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger, c.loggerErr = logging.NewFromConfig(cfg)
	})
	return c.logger, c.loggerErr
}

func (c *commandContext) ensureRegistry() (*systems.Registry, error) {
	c.registryOnce.Do(func() {
		c.registry, c.registryErr = systems.Load()
	})
	return c.registry, c.registryErr
}

// resolveSession merges flag, stored-session, and interactive credentials in
// that order. usernameFlag and keyFlag may be empty.
func (c *commandContext) resolveSession(usernameFlag, keyFlag string) (session.Session, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return session.Session{}, err
	}
	username := strings.TrimSpace(usernameFlag)
	if username == "" {
		username = cfg.Catalog.Username
	}
	apiKey := strings.TrimSpace(keyFlag)
	if apiKey == "" {
		apiKey = cfg.Catalog.APIKey
	}
	prompt := session.Prompter{In: os.Stdin, Out: os.Stderr}
	return session.Resolve(cfg.Paths.SessionDir, username, apiKey, prompt)
}

func (c *commandContext) newCatalogClient(sess session.Session) (*catalog.Client, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return catalog.New(sess.Username, sess.APIKey, cfg.Catalog.BaseURL,
		catalog.WithTimeout(cfg.RequestTimeout()))
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
