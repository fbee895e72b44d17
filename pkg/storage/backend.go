package storage

import (
	"context"
	"io"
	"time"
)

// FileInfo represents metadata about a file
type FileInfo struct {
	Path         string
	RelativePath string
	Size         int64
	ModTime      time.Time
}

// Backend defines the interface for read-only file discovery and access.
// The scanner never mutates the tree it scans, so the interface carries no
// write operations. Implementations include the local filesystem; network
// shares would satisfy the same contract.
type Backend interface {
	// Glob returns the regular files under the root whose name matches the
	// given pattern. When recursive is false only the top level is searched.
	// Result order is filesystem-dependent; callers needing determinism must
	// sort before consuming.
	Glob(ctx context.Context, pattern string, recursive bool) ([]FileInfo, error)

	// Read opens a file for reading
	Read(ctx context.Context, path string) (io.ReadCloser, error)

	// Stat returns file metadata
	Stat(ctx context.Context, path string) (*FileInfo, error)

	// Root returns the absolute root path of the backend
	Root() string

	// Close releases any resources held by the backend
	Close() error
}
