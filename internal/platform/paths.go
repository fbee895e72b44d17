package platform

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandUser replaces a leading ~ with the current user's home directory.
// Paths without a leading ~ are returned unchanged, as are paths like
// ~other/file that name a different user.
func ExpandUser(path string) string {
	if path == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			return home
		}
		return path
	}
	if strings.HasPrefix(path, "~"+string(filepath.Separator)) || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

// NormalizePath expands a leading ~ and resolves the result to an absolute,
// cleaned path
func NormalizePath(path string) (string, error) {
	return filepath.Abs(ExpandUser(path))
}
