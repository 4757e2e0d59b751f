package fileutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// Exists reports whether path exists as any kind of filesystem entry.
func Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("stat %q: %w", path, err)
}

// TempSibling returns an unused name next to path, for two-step renames on
// case-insensitive filesystems.
func TempSibling(path string) (string, error) {
	for i := 0; i < 100; i++ {
		candidate := fmt.Sprintf("%s.tmp%d", path, i)
		exists, err := Exists(candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no free temporary name next to %q", path)
}
