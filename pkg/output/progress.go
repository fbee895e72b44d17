package output

import (
	"io"
	"os"

	"github.com/cheggaaa/pb/v3"
	"github.com/sdejongh/hashsentry/pkg/models"
)

// ProgressFormatter shows a progress bar while hashing and defers record
// output to the final summary. Per-record console blocks are suppressed so
// they don't interleave with the bar.
type ProgressFormatter struct {
	bar       *pb.ProgressBar
	barWriter io.Writer
	summary   *HumanFormatter
}

// NewProgressFormatter creates a progress bar formatter. The bar is drawn on
// stderr so stdout stays clean for the summary.
func NewProgressFormatter() *ProgressFormatter {
	return &ProgressFormatter{
		barWriter: os.Stderr,
		summary:   NewHumanFormatter(false),
	}
}

// SetBarWriter redirects bar output, used in tests
func (f *ProgressFormatter) SetBarWriter(writer io.Writer) {
	f.barWriter = writer
}

// Start initializes the summary output
func (f *ProgressFormatter) Start(writer io.Writer, totalFiles int) error {
	return f.summary.Start(writer, totalFiles)
}

// Tick advances the bar during hashing. The bar is created on the first tick
// because the file count isn't known until discovery completes.
func (f *ProgressFormatter) Tick(processed, total int) {
	if f.bar == nil {
		f.bar = pb.New(total)
		f.bar.SetWriter(f.barWriter)
		f.bar.Start()
	}
	f.bar.SetCurrent(int64(processed))
}

// Record suppresses per-record output; the bar covers per-file feedback
func (f *ProgressFormatter) Record(record models.HashRecord, withStatus bool) error {
	return nil
}

// Complete stops the bar and prints the summary
func (f *ProgressFormatter) Complete(report *models.ScanReport) error {
	if f.bar != nil {
		f.bar.Finish()
	}
	return f.summary.Complete(report)
}

// Error reports a run-level error
func (f *ProgressFormatter) Error(err error) error {
	if f.bar != nil {
		f.bar.Finish()
	}
	return f.summary.Error(err)
}

// Name returns the formatter name
func (f *ProgressFormatter) Name() string {
	return "progress"
}
