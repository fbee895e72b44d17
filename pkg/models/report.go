package models

import (
	"time"
)

// ScanReport represents the results of one scan run
type ScanReport struct {
	// Run details
	ScanID    string
	RootPath  string
	Algorithm string
	Compared  bool

	// Timing
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration

	// Statistics
	Stats Statistics

	// Records for successfully hashed files, sorted by path
	Records []HashRecord

	// Errors encountered for individual files
	Errors []ScanError

	// Overall status
	Status ScanStatus
}

// Statistics holds scan metrics
type Statistics struct {
	// Files
	FilesDiscovered int
	FilesHashed     int
	FilesErrored    int

	// Reference files
	ReferencesLoaded  int
	ReferencesErrored int

	// Data
	BytesHashed int64

	// Classification counts (populated only when comparison ran)
	Matched    int
	Mismatched int
	Unknown    int
}

// ScanStatus represents the overall result of a run
type ScanStatus string

const (
	// StatusSuccess indicates every discovered file was hashed
	StatusSuccess ScanStatus = "success"
	// StatusPartial indicates some files were skipped due to errors
	StatusPartial ScanStatus = "partial"
	// StatusFailed indicates the run aborted before completing
	StatusFailed ScanStatus = "failed"
)

// ScanError represents a per-file failure during a run
type ScanError struct {
	FilePath  string
	Stage     string // "discover", "hash", "reference"
	Error     string
	Timestamp time.Time
}

// CountStatuses recounts the classification statistics from the records
func (r *ScanReport) CountStatuses() {
	r.Stats.Matched = 0
	r.Stats.Mismatched = 0
	r.Stats.Unknown = 0
	for _, rec := range r.Records {
		switch rec.Status {
		case StatusMatch:
			r.Stats.Matched++
		case StatusMismatch:
			r.Stats.Mismatched++
		case StatusUnknown:
			r.Stats.Unknown++
		}
	}
}
