package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/sdejongh/hashsentry/pkg/models"
)

// csvColumns is the fixed column order of CSV reports. The status column is
// appended only when comparison ran for the run.
var csvColumns = []string{"hash", "algorithm", "size", "modified_time", "file_path", "filename"}

// WriteCSV writes hash records to a CSV report file. Parent directories are
// created as needed. An empty record set still produces a header-only file
// so requested reports always exist.
func WriteCSV(records []models.HashRecord, path string, withStatus bool) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV report: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	header := csvColumns
	if withStatus {
		header = append(append([]string{}, csvColumns...), "status")
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, record := range records {
		row := []string{
			record.Hash,
			record.Algorithm,
			strconv.FormatInt(record.Size, 10),
			strconv.FormatInt(record.ModifiedTime, 10),
			record.FilePath,
			record.Key,
		}
		if withStatus {
			row = append(row, string(record.Status))
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV report: %w", err)
	}
	return nil
}
