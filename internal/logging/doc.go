// Package logging builds the slog loggers used across romshelf.
//
// Two output formats are supported: a compact console format
// (timestamp LEVEL component: message key=value ...) and standard slog JSON.
// Attr helpers mirror the slog constructors so call sites import one package.
package logging
