package scan

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sdejongh/hashsentry/pkg/hashing"
	"github.com/sdejongh/hashsentry/pkg/logging"
	"github.com/sdejongh/hashsentry/pkg/models"
	"github.com/sdejongh/hashsentry/pkg/storage"
)

// Options controls a scan run
type Options struct {
	// CandidatePattern selects the files to hash (e.g., "*.exe")
	CandidatePattern string

	// ReferencePattern selects the known-hash files (e.g., "*.txt")
	ReferencePattern string

	// Recursive includes subdirectories
	Recursive bool

	// AbsolutePaths stores absolute paths in records instead of
	// root-relative ones
	AbsolutePaths bool
}

// ProgressFunc receives a notification after each candidate file is processed
type ProgressFunc func(processed, total int, path string)

// Scanner hashes candidate files under a root and assembles a scan report.
// Files are processed one at a time in sorted path order so output is
// reproducible across runs on the same tree.
type Scanner struct {
	backend  storage.Backend
	hasher   *hashing.Hasher
	options  Options
	logger   logging.Logger
	progress ProgressFunc
}

// NewScanner creates a scanner over the given backend
func NewScanner(backend storage.Backend, hasher *hashing.Hasher, options Options, logger logging.Logger) *Scanner {
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	return &Scanner{
		backend: backend,
		hasher:  hasher,
		options: options,
		logger:  logger,
	}
}

// SetProgress sets the progress notification callback
func (s *Scanner) SetProgress(progress ProgressFunc) {
	s.progress = progress
}

// displayPath formats a discovered file for records and reference keys.
// Record construction and reference loading both go through this function;
// comparison correctness depends on the two sides formatting identically.
func displayPath(info storage.FileInfo, absolute bool) string {
	if absolute {
		return info.Path
	}
	return info.RelativePath
}

// sortByPath orders discovery results deterministically
func sortByPath(files []storage.FileInfo) {
	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})
}

// Run discovers candidate files, hashes each one, and returns the finished
// report. Individual file failures are logged and excluded from the result
// set; only context cancellation or a discovery failure aborts the run.
func (s *Scanner) Run(ctx context.Context) (*models.ScanReport, error) {
	report := &models.ScanReport{
		ScanID:    uuid.New().String(),
		RootPath:  s.backend.Root(),
		Algorithm: s.hasher.Algorithm(),
		StartTime: time.Now(),
		Status:    models.StatusSuccess,
	}

	files, err := s.backend.Glob(ctx, s.options.CandidatePattern, s.options.Recursive)
	if err != nil {
		report.Status = models.StatusFailed
		return report, fmt.Errorf("failed to discover files: %w", err)
	}
	sortByPath(files)

	report.Stats.FilesDiscovered = len(files)

	for i, file := range files {
		path := displayPath(file, s.options.AbsolutePaths)

		record, err := s.hashFile(ctx, file, path)
		if err != nil {
			if ctx.Err() != nil {
				report.Status = models.StatusFailed
				return report, ctx.Err()
			}
			s.logger.Error(ctx, "failed to hash file", err, logging.Fields{
				"path":      path,
				"algorithm": s.hasher.Algorithm(),
			})
			report.Errors = append(report.Errors, models.ScanError{
				FilePath:  path,
				Stage:     "hash",
				Error:     err.Error(),
				Timestamp: time.Now(),
			})
			report.Stats.FilesErrored++
		} else {
			report.Records = append(report.Records, record)
			report.Stats.FilesHashed++
			report.Stats.BytesHashed += record.Size
		}

		if s.progress != nil {
			s.progress(i+1, len(files), path)
		}
	}

	if report.Stats.FilesErrored > 0 {
		report.Status = models.StatusPartial
	}

	report.EndTime = time.Now()
	report.Duration = report.EndTime.Sub(report.StartTime)
	return report, nil
}

// hashFile computes one record for a discovered file
func (s *Scanner) hashFile(ctx context.Context, file storage.FileInfo, path string) (models.HashRecord, error) {
	reader, err := s.backend.Read(ctx, file.Path)
	if err != nil {
		return models.HashRecord{}, err
	}
	defer reader.Close()

	hash, err := s.hasher.Sum(ctx, reader)
	if err != nil {
		return models.HashRecord{}, err
	}

	return models.NewHashRecord(hash, s.hasher.Algorithm(), file.Size, file.ModTime.Unix(), path), nil
}
