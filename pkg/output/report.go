package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sdejongh/hashsentry/pkg/models"
)

// WriteJSON writes hash records to a JSON report file as a pretty-printed
// array of objects. Parent directories are created as needed; an empty
// record set writes an empty array.
func WriteJSON(records []models.HashRecord, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}

	if records == nil {
		records = []models.HashRecord{}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal records: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write JSON report: %w", err)
	}
	return nil
}
