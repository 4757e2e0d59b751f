package preflight

import (
	"context"

	"romshelf/internal/catalog"
	"romshelf/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes all preflight checks for the given config. The catalog
// service may be nil when no credentials are available yet; the auth probe
// is skipped in that case.
func RunAll(ctx context.Context, cfg *config.Config, verifier catalog.CredentialVerifier) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	results = append(results, CheckDirectoryAccess("Session directory", cfg.Paths.SessionDir))
	results = append(results, CheckDirectoryAccess("Data directory", cfg.Paths.DataDir))
	results = append(results, CheckDirectoryAccess("Log directory", cfg.Paths.LogDir))

	for _, status := range CheckSystemDeps(cfg) {
		result := Result{Name: status.Name, Passed: status.Available, Detail: status.Detail}
		if status.Available {
			result.Detail = status.Command
		}
		results = append(results, result)
	}

	if verifier != nil {
		results = append(results, CheckCatalog(ctx, verifier))
	}

	return results
}

// Passed reports whether every result succeeded.
func Passed(results []Result) bool {
	for _, result := range results {
		if !result.Passed {
			return false
		}
	}
	return true
}
