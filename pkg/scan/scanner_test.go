package scan

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sdejongh/hashsentry/pkg/hashing"
	"github.com/sdejongh/hashsentry/pkg/models"
	"github.com/sdejongh/hashsentry/pkg/storage"
)

// TestHelper provides utilities for scanner tests
type TestHelper struct {
	t    *testing.T
	root string
}

// NewTestHelper creates a helper with a temporary scan root
func NewTestHelper(t *testing.T) *TestHelper {
	t.Helper()
	return &TestHelper{t: t, root: t.TempDir()}
}

// CreateFile creates a file under the scan root
func (h *TestHelper) CreateFile(name, content string) {
	h.t.Helper()
	path := filepath.Join(h.root, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		h.t.Fatalf("failed to create parent dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		h.t.Fatalf("failed to create file %s: %v", name, err)
	}
}

// Scanner builds a scanner over the helper's root
func (h *TestHelper) Scanner(options Options) *Scanner {
	h.t.Helper()
	if options.CandidatePattern == "" {
		options.CandidatePattern = "*.exe"
	}
	if options.ReferencePattern == "" {
		options.ReferencePattern = "*.txt"
	}

	backend, err := storage.NewLocal(h.root, nil)
	if err != nil {
		h.t.Fatalf("failed to create backend: %v", err)
	}
	h.t.Cleanup(func() { backend.Close() })

	hasher, err := hashing.NewHasher("sha256", hashing.DefaultChunkSize)
	if err != nil {
		h.t.Fatalf("failed to create hasher: %v", err)
	}

	return NewScanner(backend, hasher, options, nil)
}

// sha256Hex returns the hex digest for a content string
func sha256Hex(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

// TestScannerRun tests the basic hashing workflow
func TestScannerRun(t *testing.T) {
	h := NewTestHelper(t)
	h.CreateFile("beta.exe", "BB")
	h.CreateFile("alpha.exe", "AA")
	h.CreateFile("notes.txt", "not a candidate")

	report, err := h.Scanner(Options{}).Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(report.Records) != 2 {
		t.Fatalf("Run() produced %d records, want 2", len(report.Records))
	}

	// Sorted by path regardless of discovery order
	if report.Records[0].FilePath != "alpha.exe" || report.Records[1].FilePath != "beta.exe" {
		t.Errorf("records out of order: %q, %q", report.Records[0].FilePath, report.Records[1].FilePath)
	}

	first := report.Records[0]
	if first.Hash != sha256Hex("AA") {
		t.Errorf("Hash = %q, want %q", first.Hash, sha256Hex("AA"))
	}
	if first.Algorithm != "sha256" {
		t.Errorf("Algorithm = %q, want %q", first.Algorithm, "sha256")
	}
	if first.Size != 2 {
		t.Errorf("Size = %d, want 2", first.Size)
	}
	if first.ModifiedTime == 0 {
		t.Error("ModifiedTime should be populated")
	}
	if first.Key != "alpha" {
		t.Errorf("Key = %q, want %q", first.Key, "alpha")
	}
	if first.Status != "" {
		t.Errorf("Status should be empty without comparison, got %q", first.Status)
	}

	if report.Stats.FilesDiscovered != 2 || report.Stats.FilesHashed != 2 || report.Stats.FilesErrored != 0 {
		t.Errorf("stats = %+v, want 2 discovered, 2 hashed, 0 errored", report.Stats)
	}
	if report.Stats.BytesHashed != 4 {
		t.Errorf("BytesHashed = %d, want 4", report.Stats.BytesHashed)
	}
	if report.Status != models.StatusSuccess {
		t.Errorf("Status = %q, want %q", report.Status, models.StatusSuccess)
	}
	if report.ScanID == "" {
		t.Error("ScanID should be populated")
	}
}

// TestScannerRunRecursive tests subdirectory handling
func TestScannerRunRecursive(t *testing.T) {
	h := NewTestHelper(t)
	h.CreateFile("top.exe", "t")
	h.CreateFile("sub/inner.exe", "i")

	t.Run("Disabled", func(t *testing.T) {
		report, err := h.Scanner(Options{}).Run(context.Background())
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		if len(report.Records) != 1 || report.Records[0].FilePath != "top.exe" {
			t.Errorf("expected only top-level record, got %+v", report.Records)
		}
	})

	t.Run("Enabled", func(t *testing.T) {
		report, err := h.Scanner(Options{Recursive: true}).Run(context.Background())
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		if len(report.Records) != 2 {
			t.Fatalf("Run() produced %d records, want 2", len(report.Records))
		}
		if report.Records[0].Key != filepath.Join("sub", "inner") && report.Records[1].Key != filepath.Join("sub", "inner") {
			t.Errorf("nested record key missing: %+v", report.Records)
		}
	})
}

// TestScannerRunAbsolutePaths tests the path display toggle
func TestScannerRunAbsolutePaths(t *testing.T) {
	h := NewTestHelper(t)
	h.CreateFile("app.exe", "x")

	report, err := h.Scanner(Options{AbsolutePaths: true}).Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(report.Records) != 1 {
		t.Fatalf("Run() produced %d records, want 1", len(report.Records))
	}
	if !filepath.IsAbs(report.Records[0].FilePath) {
		t.Errorf("FilePath = %q, want absolute", report.Records[0].FilePath)
	}
	if report.Records[0].Key != models.ComparisonKey(report.Records[0].FilePath) {
		t.Error("Key should derive from the absolute display path")
	}
}

// TestScannerRunEmpty tests a root with no candidate files
func TestScannerRunEmpty(t *testing.T) {
	h := NewTestHelper(t)
	h.CreateFile("readme.md", "no executables here")

	report, err := h.Scanner(Options{}).Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(report.Records) != 0 {
		t.Errorf("Run() produced %d records, want 0", len(report.Records))
	}
	if report.Status != models.StatusSuccess {
		t.Errorf("Status = %q, want %q (empty scan is a success)", report.Status, models.StatusSuccess)
	}
}

// TestScannerRunProgress tests the progress callback
func TestScannerRunProgress(t *testing.T) {
	h := NewTestHelper(t)
	h.CreateFile("a.exe", "1")
	h.CreateFile("b.exe", "2")

	scanner := h.Scanner(Options{})
	var calls []string
	scanner.SetProgress(func(processed, total int, path string) {
		calls = append(calls, fmt.Sprintf("%d/%d %s", processed, total, path))
	})

	if _, err := scanner.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := []string{"1/2 a.exe", "2/2 b.exe"}
	if len(calls) != len(want) {
		t.Fatalf("progress calls = %v, want %v", calls, want)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Errorf("progress call %d = %q, want %q", i, calls[i], want[i])
		}
	}
}

// faultyBackend wraps a backend and fails reads for one path
type faultyBackend struct {
	storage.Backend
	failPath string
}

func (b *faultyBackend) Read(ctx context.Context, path string) (io.ReadCloser, error) {
	if filepath.Base(path) == b.failPath {
		return nil, errors.New("permission denied")
	}
	return b.Backend.Read(ctx, path)
}

// TestScannerRunSkipsFailedFiles tests that one unreadable file does not
// abort the run
func TestScannerRunSkipsFailedFiles(t *testing.T) {
	h := NewTestHelper(t)
	h.CreateFile("good.exe", "fine")
	h.CreateFile("bad.exe", "unreadable")

	backend, err := storage.NewLocal(h.root, nil)
	if err != nil {
		t.Fatalf("failed to create backend: %v", err)
	}
	defer backend.Close()

	hasher, err := hashing.NewHasher("sha256", hashing.DefaultChunkSize)
	if err != nil {
		t.Fatalf("failed to create hasher: %v", err)
	}

	scanner := NewScanner(&faultyBackend{Backend: backend, failPath: "bad.exe"},
		hasher, Options{CandidatePattern: "*.exe", ReferencePattern: "*.txt"}, nil)

	report, err := scanner.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(report.Records) != 1 || report.Records[0].FilePath != "good.exe" {
		t.Errorf("expected only the readable file in records, got %+v", report.Records)
	}
	if report.Stats.FilesErrored != 1 {
		t.Errorf("FilesErrored = %d, want 1", report.Stats.FilesErrored)
	}
	if len(report.Errors) != 1 || report.Errors[0].FilePath != "bad.exe" || report.Errors[0].Stage != "hash" {
		t.Errorf("unexpected error entries: %+v", report.Errors)
	}
	if report.Status != models.StatusPartial {
		t.Errorf("Status = %q, want %q", report.Status, models.StatusPartial)
	}
}

// TestScannerRunCancelled tests context cancellation aborting the run
func TestScannerRunCancelled(t *testing.T) {
	h := NewTestHelper(t)
	h.CreateFile("app.exe", "x")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := h.Scanner(Options{}).Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
	if report.Status != models.StatusFailed {
		t.Errorf("Status = %q, want %q", report.Status, models.StatusFailed)
	}
}
