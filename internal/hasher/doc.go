// Package hasher wraps the external RAHasher utility. Hashing is delegated
// entirely to that tool; this package only runs it and reads its stdout.
package hasher
