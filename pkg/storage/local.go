package storage

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Local is a filesystem-based storage backend
type Local struct {
	rootPath string
	excludes []string
}

// NewLocal creates a new local filesystem backend rooted at rootPath.
// Exclude patterns are doublestar globs matched against root-relative
// slash-separated paths.
func NewLocal(rootPath string, excludes []string) (*Local, error) {
	absPath, err := filepath.Abs(rootPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to access path: %w", err)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", absPath)
	}

	return &Local{rootPath: absPath, excludes: excludes}, nil
}

// Root returns the absolute root path
func (l *Local) Root() string {
	return l.rootPath
}

// Glob returns regular files matching pattern under the root
func (l *Local) Glob(ctx context.Context, pattern string, recursive bool) ([]FileInfo, error) {
	var files []FileInfo

	err := filepath.WalkDir(l.rootPath, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			// An unreadable subtree is skipped, not fatal; the root itself
			// was validated at construction time.
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		// Check context cancellation
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		relPath, err := filepath.Rel(l.rootPath, p)
		if err != nil {
			return err
		}
		relSlash := filepath.ToSlash(relPath)

		if d.IsDir() {
			if p != l.rootPath && !recursive {
				return filepath.SkipDir
			}
			if p != l.rootPath && l.isExcluded(relSlash) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if l.isExcluded(relSlash) {
			return nil
		}
		if !matchPattern(pattern, relSlash) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			// File disappeared between listing and stat: skip it.
			return nil
		}

		files = append(files, FileInfo{
			Path:         p,
			RelativePath: relPath,
			Size:         info.Size(),
			ModTime:      info.ModTime(),
		})

		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}

	return files, nil
}

// matchPattern matches a glob pattern against a relative slash path.
// A pattern without a separator applies to the base name at any depth,
// mirroring recursive shell globbing; a pattern with a separator applies
// to the whole relative path.
func matchPattern(pattern, relSlash string) bool {
	if !strings.Contains(pattern, "/") {
		matched, _ := doublestar.Match(pattern, relSlash[strings.LastIndex(relSlash, "/")+1:])
		return matched
	}
	matched, _ := doublestar.Match(pattern, relSlash)
	return matched
}

// isExcluded checks if a relative path matches any exclude pattern
func (l *Local) isExcluded(relSlash string) bool {
	base := relSlash[strings.LastIndex(relSlash, "/")+1:]
	for _, pattern := range l.excludes {
		if pattern == "" {
			continue
		}
		pattern = filepath.ToSlash(pattern)

		// Directory patterns (trailing slash) match the directory itself
		// and everything under it
		if strings.HasSuffix(pattern, "/") {
			dirPattern := strings.TrimSuffix(pattern, "/")
			if relSlash == dirPattern || strings.HasPrefix(relSlash, dirPattern+"/") {
				return true
			}
			continue
		}

		if strings.Contains(pattern, "/") {
			if matched, _ := doublestar.Match(pattern, relSlash); matched {
				return true
			}
		} else {
			if matched, _ := doublestar.Match(pattern, base); matched {
				return true
			}
		}
	}
	return false
}

// Read opens a file for reading
func (l *Local) Read(ctx context.Context, path string) (io.ReadCloser, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return file, nil
}

// Stat returns file metadata
func (l *Local) Stat(ctx context.Context, path string) (*FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	relPath, err := filepath.Rel(l.rootPath, path)
	if err != nil {
		return nil, err
	}

	return &FileInfo{
		Path:         path,
		RelativePath: relPath,
		Size:         info.Size(),
		ModTime:      info.ModTime(),
	}, nil
}

// Close releases resources (no-op for local filesystem)
func (l *Local) Close() error {
	return nil
}
