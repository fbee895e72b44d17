package models

import (
	"strings"
)

// Status classifies a hash record against the reference map
type Status string

const (
	// StatusMatch indicates the computed hash equals the recorded reference value
	StatusMatch Status = "MATCH"
	// StatusMismatch indicates a reference value exists but differs from the computed hash
	StatusMismatch Status = "MISMATCH"
	// StatusUnknown indicates no reference value exists for the record's key
	StatusUnknown Status = "UNKNOWN"
)

// HashRecord represents one hashed file
type HashRecord struct {
	// Hash is the lowercase hex digest of the file content
	Hash string `json:"hash"`

	// Algorithm is the digest algorithm name (e.g., "sha256")
	Algorithm string `json:"algorithm"`

	// Size in bytes
	Size int64 `json:"size"`

	// ModifiedTime is the last modification time in epoch seconds
	ModifiedTime int64 `json:"modified_time"`

	// FilePath is the display path (absolute or root-relative)
	FilePath string `json:"file_path"`

	// Key is the comparison key derived from FilePath
	Key string `json:"filename"`

	// Status is set only after classification against a reference map
	Status Status `json:"status,omitempty"`
}

// ReferenceMap maps a comparison key to the recorded reference value for
// that key (the literal content of the matching reference file)
type ReferenceMap map[string]string

// ComparisonKey derives the comparison key for a display path by removing
// everything from the last '.' to the end. A path without a '.' is returned
// unchanged. Record construction and reference loading must both go through
// this function so the two key formats can never diverge.
func ComparisonKey(filePath string) string {
	if idx := strings.LastIndex(filePath, "."); idx >= 0 {
		return filePath[:idx]
	}
	return filePath
}

// NewHashRecord builds a record for a hashed file. Pure construction:
// inputs are assumed validated by the caller.
func NewHashRecord(hash, algorithm string, size, modifiedTime int64, filePath string) HashRecord {
	return HashRecord{
		Hash:         hash,
		Algorithm:    algorithm,
		Size:         size,
		ModifiedTime: modifiedTime,
		FilePath:     filePath,
		Key:          ComparisonKey(filePath),
	}
}
