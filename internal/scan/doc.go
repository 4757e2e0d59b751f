// Package scan walks ROM collection roots, resolves each file against the
// catalog through the reconcile engine, applies requested repairs, and
// records runs to the scan history. A root can be scanned as a single known
// system or dispatched across subdirectories named after system aliases.
package scan
