package output

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/sdejongh/hashsentry/pkg/models"
)

var (
	matchColor    = color.New(color.FgGreen)
	mismatchColor = color.New(color.FgRed)
	unknownColor  = color.New(color.FgYellow)
)

// colorStatus renders a classification status with its color
func colorStatus(status models.Status) string {
	switch status {
	case models.StatusMatch:
		return matchColor.Sprint(string(status))
	case models.StatusMismatch:
		return mismatchColor.Sprint(string(status))
	case models.StatusUnknown:
		return unknownColor.Sprint(string(status))
	default:
		return string(status)
	}
}

// HumanFormatter formats output in human-readable format
type HumanFormatter struct {
	writer     io.Writer
	totalFiles int
	quiet      bool
}

// NewHumanFormatter creates a new human-readable formatter
func NewHumanFormatter(quiet bool) *HumanFormatter {
	return &HumanFormatter{quiet: quiet}
}

// Start initializes the formatter
func (f *HumanFormatter) Start(writer io.Writer, totalFiles int) error {
	if writer == nil {
		writer = io.Discard
	}
	f.writer = writer
	f.totalFiles = totalFiles
	return nil
}

// Record emits one hash record block
func (f *HumanFormatter) Record(record models.HashRecord, withStatus bool) error {
	if f.quiet {
		return nil
	}
	fmt.Fprintf(f.writer, "Filepath: %s\n", record.FilePath)
	fmt.Fprintf(f.writer, "Hash: %s\n", record.Hash)
	if withStatus && record.Status != "" {
		fmt.Fprintf(f.writer, "Status: %s\n", colorStatus(record.Status))
	}
	fmt.Fprintf(f.writer, "---\n")
	return nil
}

// Complete finalizes output and displays the run summary
func (f *HumanFormatter) Complete(report *models.ScanReport) error {
	if f.writer == nil {
		f.writer = io.Discard
	}

	if len(report.Records) == 0 {
		fmt.Fprintf(f.writer, "No matching files found.\n")
		return nil
	}

	if f.quiet {
		return nil
	}

	fmt.Fprintf(f.writer, "\n")
	fmt.Fprintf(f.writer, "Scan completed in %s\n", report.Duration.Round(time.Millisecond))
	fmt.Fprintf(f.writer, "\n")
	fmt.Fprintf(f.writer, "Summary:\n")
	fmt.Fprintf(f.writer, "  Algorithm:        %s\n", report.Algorithm)
	fmt.Fprintf(f.writer, "  Files discovered: %d\n", report.Stats.FilesDiscovered)
	fmt.Fprintf(f.writer, "  Files hashed:     %d\n", report.Stats.FilesHashed)
	fmt.Fprintf(f.writer, "  Files errored:    %d\n", report.Stats.FilesErrored)
	fmt.Fprintf(f.writer, "  Data hashed:      %s\n", formatBytes(report.Stats.BytesHashed))

	if report.Compared {
		fmt.Fprintf(f.writer, "\n")
		fmt.Fprintf(f.writer, "  Comparison:\n")
		fmt.Fprintf(f.writer, "    References loaded: %d\n", report.Stats.ReferencesLoaded)
		fmt.Fprintf(f.writer, "    Matched:           %d\n", report.Stats.Matched)
		fmt.Fprintf(f.writer, "    Mismatched:        %d\n", report.Stats.Mismatched)
		fmt.Fprintf(f.writer, "    Unknown:           %d\n", report.Stats.Unknown)
	}

	fmt.Fprintf(f.writer, "\n")
	fmt.Fprintf(f.writer, "Status: %s\n", report.Status)

	if len(report.Errors) > 0 {
		fmt.Fprintf(f.writer, "\nErrors:\n")
		for _, err := range report.Errors {
			fmt.Fprintf(f.writer, "  %s: %s\n", err.FilePath, err.Error)
		}
	}

	return nil
}

// Error reports a run-level error
func (f *HumanFormatter) Error(err error) error {
	if f.writer != nil {
		fmt.Fprintf(f.writer, "Error: %v\n", err)
	}
	return nil
}

// Name returns the formatter name
func (f *HumanFormatter) Name() string {
	return "human"
}

// formatBytes renders a byte count in a human-readable unit
func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
