package output

import (
	"io"

	"github.com/sdejongh/hashsentry/pkg/models"
)

// Formatter defines the interface for console output formatting
// Implementations include human-readable, JSON, and progress-bar formatters
type Formatter interface {
	// Start initializes the formatter for a new scan run
	Start(writer io.Writer, totalFiles int) error

	// Record emits one finished hash record. withStatus indicates whether
	// comparison ran for this run (the status field is meaningful).
	Record(record models.HashRecord, withStatus bool) error

	// Complete finalizes output and displays the run summary
	Complete(report *models.ScanReport) error

	// Error reports a run-level error
	Error(err error) error

	// Name returns the formatter name
	Name() string
}
