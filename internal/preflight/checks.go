package preflight

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"time"

	"golang.org/x/sys/unix"

	"romshelf/internal/catalog"
	"romshelf/internal/config"
	"romshelf/internal/deps"
)

// CheckCatalog verifies that the RetroAchievements API is reachable and the
// credentials are accepted. One attempt, 10-second timeout.
func CheckCatalog(ctx context.Context, verifier catalog.CredentialVerifier) Result {
	const name = "Catalog API"

	checkCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := verifier.VerifyCredentials(checkCtx); err != nil {
		return Result{Name: name, Detail: summarizeCatalogError(err)}
	}
	return Result{Name: name, Passed: true, Detail: "credentials accepted"}
}

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckSystemDeps evaluates the external binaries a scan needs. The scan
// command runs this before any walking so a missing hasher fails fast.
func CheckSystemDeps(cfg *config.Config) []deps.Status {
	return deps.CheckBinaries([]deps.Requirement{
		deps.HasherRequirement(cfg.HasherBinary()),
	})
}

func summarizeCatalogError(err error) string {
	if errors.Is(err, catalog.ErrUnauthorized) {
		return "auth failed (invalid username or api key)"
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "probe timed out (catalog unreachable)"
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "probe timed out (catalog unreachable)"
	}
	return err.Error()
}
