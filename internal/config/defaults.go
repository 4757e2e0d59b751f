package config

const (
	defaultSessionDir            = "~/.config/romshelf/sessions"
	defaultDataDir               = "~/.local/share/romshelf"
	defaultLogDir                = "~/.local/share/romshelf/logs"
	defaultCatalogBaseURL        = "https://retroachievements.org/API"
	defaultCatalogRequestTimeout = 30
	defaultHasherBinary          = "RAHasher"
	defaultHistoryKeepRuns       = 50
	defaultLogFormat             = "console"
	defaultLogLevel              = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			SessionDir: defaultSessionDir,
			DataDir:    defaultDataDir,
			LogDir:     defaultLogDir,
		},
		Catalog: Catalog{
			BaseURL:        defaultCatalogBaseURL,
			RequestTimeout: defaultCatalogRequestTimeout,
		},
		Hasher: Hasher{
			Binary: defaultHasherBinary,
		},
		History: History{
			Enabled:  true,
			KeepRuns: defaultHistoryKeepRuns,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
