// Package reconcile decides what happens to each local ROM file.
//
// A scan builds one Index per system from the catalog's game list, classifies
// every file by hashing it and resolving the digest against the index (exact
// casing first, then lowercase, then uppercase), derives the canonical name
// through a per-system policy table, and hands the outcome to the Executor,
// which performs at most one of four mutually exclusive filesystem actions:
// accept, rename, delete-duplicate, or delete-invalid.
package reconcile
