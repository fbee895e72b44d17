package models

import (
	"encoding/json"
	"testing"
)

// TestComparisonKey verifies key derivation from display paths
func TestComparisonKey(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{"SimpleExtension", "app.exe", "app"},
		{"NestedPath", "bin/tools/app.exe", "bin/tools/app"},
		{"MultipleDots", "archive.tar.gz", "archive.tar"},
		{"NoExtension", "README", "README"},
		{"TrailingDot", "app.", "app"},
		{"LeadingDot", ".hidden", ""},
		{"DotInDirectory", "v1.2/app", "v1"},
		{"Empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComparisonKey(tt.path); got != tt.expected {
				t.Errorf("ComparisonKey(%q) = %q, want %q", tt.path, got, tt.expected)
			}
		})
	}
}

// TestNewHashRecord verifies record construction and key derivation
func TestNewHashRecord(t *testing.T) {
	rec := NewHashRecord("abc123", "sha256", 2048, 1700000000, "tools/app.exe")

	if rec.Hash != "abc123" {
		t.Errorf("Hash = %q, want %q", rec.Hash, "abc123")
	}
	if rec.Algorithm != "sha256" {
		t.Errorf("Algorithm = %q, want %q", rec.Algorithm, "sha256")
	}
	if rec.Size != 2048 {
		t.Errorf("Size = %d, want %d", rec.Size, 2048)
	}
	if rec.ModifiedTime != 1700000000 {
		t.Errorf("ModifiedTime = %d, want %d", rec.ModifiedTime, 1700000000)
	}
	if rec.Key != "tools/app" {
		t.Errorf("Key = %q, want %q", rec.Key, "tools/app")
	}
	if rec.Status != "" {
		t.Errorf("Status should be empty before classification, got %q", rec.Status)
	}
}

// TestHashRecordKeyMatchesComparisonKey verifies the record builder and the
// standalone derivation function agree for every path shape
func TestHashRecordKeyMatchesComparisonKey(t *testing.T) {
	paths := []string{
		"app.exe",
		"sub/dir/tool.exe",
		"noext",
		"a.b.c.exe",
		"dir.with.dots/file",
	}

	for _, path := range paths {
		rec := NewHashRecord("h", "sha256", 0, 0, path)
		if rec.Key != ComparisonKey(path) {
			t.Errorf("record key %q diverges from ComparisonKey(%q) = %q", rec.Key, path, ComparisonKey(path))
		}
	}
}

// TestHashRecordJSONRoundTrip verifies records survive JSON serialization
func TestHashRecordJSONRoundTrip(t *testing.T) {
	original := []HashRecord{
		{
			Hash:         "deadbeef",
			Algorithm:    "sha256",
			Size:         123,
			ModifiedTime: 1700000000,
			FilePath:     "app.exe",
			Key:          "app",
			Status:       StatusMatch,
		},
		{
			Hash:         "cafebabe",
			Algorithm:    "sha512",
			Size:         0,
			ModifiedTime: 0,
			FilePath:     "plain",
			Key:          "plain",
		},
	}

	data, err := json.MarshalIndent(original, "", "  ")
	if err != nil {
		t.Fatalf("failed to marshal records: %v", err)
	}

	var parsed []HashRecord
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("failed to unmarshal records: %v", err)
	}

	if len(parsed) != len(original) {
		t.Fatalf("round trip length = %d, want %d", len(parsed), len(original))
	}
	for i := range original {
		if parsed[i] != original[i] {
			t.Errorf("record %d round trip mismatch: got %+v, want %+v", i, parsed[i], original[i])
		}
	}
}

// TestHashRecordJSONOmitsEmptyStatus verifies the status field only appears
// after classification
func TestHashRecordJSONOmitsEmptyStatus(t *testing.T) {
	rec := NewHashRecord("h", "sha256", 1, 1, "app.exe")
	data, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("failed to marshal record: %v", err)
	}

	var generic map[string]any
	if err := json.Unmarshal(data, &generic); err != nil {
		t.Fatalf("failed to unmarshal record: %v", err)
	}

	if _, present := generic["status"]; present {
		t.Error("status field should be omitted before classification")
	}
	for _, key := range []string{"hash", "algorithm", "size", "modified_time", "file_path", "filename"} {
		if _, present := generic[key]; !present {
			t.Errorf("required field %q missing from JSON output", key)
		}
	}
}

// TestPreconditionErrorExitCode verifies the fatal error exit code mapping
func TestPreconditionErrorExitCode(t *testing.T) {
	err := NewPreconditionError("bad root", nil)
	if err.ExitCode() != 2 {
		t.Errorf("ExitCode() = %d, want 2", err.ExitCode())
	}
	if err.Error() != "bad root" {
		t.Errorf("Error() = %q, want %q", err.Error(), "bad root")
	}
}
