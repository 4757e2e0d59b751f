// Package preflight provides readiness checks for the external binaries,
// directories, and catalog credentials that romshelf depends on.
//
// These checks run in two contexts:
//   - The scan command verifies the hasher binary before walking anything,
//     so a misconfigured machine fails fast instead of mid-collection.
//   - The CLI "romshelf check" command runs RunAll and renders the results.
package preflight
