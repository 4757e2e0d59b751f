// Package history persists scan runs and their per-file results in a local
// SQLite database so past verification work can be reviewed later.
package history
