package output

import (
	"encoding/json"
	"io"
	"os"

	"github.com/sdejongh/hashsentry/pkg/models"
)

// JSONFormatter emits the whole run as a single JSON document on Complete,
// for automation and scripting. Per-record output is accumulated rather than
// streamed so the document stays parseable.
type JSONFormatter struct {
	writer  io.Writer
	records []models.HashRecord
}

// JSONReport is the document shape emitted by the JSON formatter
type JSONReport struct {
	ScanID     string              `json:"scan_id"`
	Root       string              `json:"root"`
	Algorithm  string              `json:"algorithm"`
	Compared   bool                `json:"compared"`
	Status     string              `json:"status"`
	DurationMs int64               `json:"duration_ms"`
	Stats      JSONStats           `json:"stats"`
	Records    []models.HashRecord `json:"records"`
	Errors     []JSONError         `json:"errors,omitempty"`
}

// JSONStats mirrors the scan statistics
type JSONStats struct {
	FilesDiscovered   int   `json:"files_discovered"`
	FilesHashed       int   `json:"files_hashed"`
	FilesErrored      int   `json:"files_errored"`
	BytesHashed       int64 `json:"bytes_hashed"`
	ReferencesLoaded  int   `json:"references_loaded"`
	ReferencesErrored int   `json:"references_errored"`
	Matched           int   `json:"matched"`
	Mismatched        int   `json:"mismatched"`
	Unknown           int   `json:"unknown"`
}

// JSONError represents a per-file failure entry
type JSONError struct {
	Path  string `json:"path"`
	Stage string `json:"stage"`
	Error string `json:"error"`
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Start initializes the formatter
func (f *JSONFormatter) Start(writer io.Writer, totalFiles int) error {
	if writer == nil {
		writer = os.Stdout
	}
	f.writer = writer
	f.records = make([]models.HashRecord, 0, totalFiles)
	return nil
}

// Record accumulates one hash record for the final document
func (f *JSONFormatter) Record(record models.HashRecord, withStatus bool) error {
	f.records = append(f.records, record)
	return nil
}

// Complete writes the full run document
func (f *JSONFormatter) Complete(report *models.ScanReport) error {
	if f.writer == nil {
		f.writer = io.Discard
	}

	doc := JSONReport{
		ScanID:     report.ScanID,
		Root:       report.RootPath,
		Algorithm:  report.Algorithm,
		Compared:   report.Compared,
		Status:     string(report.Status),
		DurationMs: report.Duration.Milliseconds(),
		Stats: JSONStats{
			FilesDiscovered:   report.Stats.FilesDiscovered,
			FilesHashed:       report.Stats.FilesHashed,
			FilesErrored:      report.Stats.FilesErrored,
			BytesHashed:       report.Stats.BytesHashed,
			ReferencesLoaded:  report.Stats.ReferencesLoaded,
			ReferencesErrored: report.Stats.ReferencesErrored,
			Matched:           report.Stats.Matched,
			Mismatched:        report.Stats.Mismatched,
			Unknown:           report.Stats.Unknown,
		},
		Records: f.records,
	}
	if doc.Records == nil {
		doc.Records = []models.HashRecord{}
	}
	for _, e := range report.Errors {
		doc.Errors = append(doc.Errors, JSONError{Path: e.FilePath, Stage: e.Stage, Error: e.Error})
	}

	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(doc)
}

// Error reports a run-level error as a JSON object
func (f *JSONFormatter) Error(err error) error {
	if f.writer == nil {
		return nil
	}
	return json.NewEncoder(f.writer).Encode(map[string]string{"error": err.Error()})
}

// Name returns the formatter name
func (f *JSONFormatter) Name() string {
	return "json"
}
