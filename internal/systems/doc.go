// Package systems maps catalog system IDs and directory names to platform
// metadata. The mapping is an embedded TOML resource parsed once during
// startup; the resulting Registry is read-only.
package systems
