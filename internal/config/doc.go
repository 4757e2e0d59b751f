// Package config loads, normalizes, and validates romshelf configuration.
//
// Configuration is a single TOML document resolved from --config, then
// ~/.config/romshelf/config.toml, then ./romshelf.toml. Missing files are not
// an error; defaults apply. Path fields are tilde-expanded and made absolute
// during normalization so downstream packages never deal with relative paths.
package config
