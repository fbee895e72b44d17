package scan

import (
	"context"
	"io"
	"time"

	"github.com/sdejongh/hashsentry/pkg/logging"
	"github.com/sdejongh/hashsentry/pkg/models"
)

// LoadReferences builds the known-hash mapping from reference files under
// the scanner's root. Each reference file is read fully and stored under the
// comparison key derived from its display path, using the same derivation as
// hash records. Files are processed in sorted order; when two reference
// files reduce to the same key the later one wins.
//
// A single unreadable reference file is logged and skipped; the loader
// continues. The returned map is complete when this function returns and is
// never mutated afterwards.
func (s *Scanner) LoadReferences(ctx context.Context, report *models.ScanReport) (models.ReferenceMap, error) {
	files, err := s.backend.Glob(ctx, s.options.ReferencePattern, s.options.Recursive)
	if err != nil {
		return nil, err
	}
	sortByPath(files)

	refs := make(models.ReferenceMap, len(files))

	for _, file := range files {
		path := displayPath(file, s.options.AbsolutePaths)

		content, err := s.readReference(ctx, file.Path)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			s.logger.Error(ctx, "failed to read reference file", err, logging.Fields{
				"path": path,
			})
			if report != nil {
				report.Errors = append(report.Errors, models.ScanError{
					FilePath:  path,
					Stage:     "reference",
					Error:     err.Error(),
					Timestamp: time.Now(),
				})
				report.Stats.ReferencesErrored++
			}
			continue
		}

		refs[models.ComparisonKey(path)] = content
		if report != nil {
			report.Stats.ReferencesLoaded++
		}
	}

	return refs, nil
}

// readReference reads the full content of one reference file
func (s *Scanner) readReference(ctx context.Context, path string) (string, error) {
	reader, err := s.backend.Read(ctx, path)
	if err != nil {
		return "", err
	}
	defer reader.Close()

	content, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	return string(content), nil
}
