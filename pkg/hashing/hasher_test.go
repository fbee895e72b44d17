package hashing

import (
	"bytes"
	"context"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"io"
	"strings"
	"testing"
)

// TestSupported verifies the registry contents
func TestSupported(t *testing.T) {
	expected := []string{"blake3", "md5", "sha1", "sha256", "sha512"}
	got := Supported()

	if len(got) != len(expected) {
		t.Fatalf("Supported() returned %d algorithms, want %d", len(got), len(expected))
	}
	for i, name := range expected {
		if got[i] != name {
			t.Errorf("Supported()[%d] = %q, want %q", i, got[i], name)
		}
	}
}

// TestNewUnsupportedAlgorithm verifies validation before any I/O
func TestNewUnsupportedAlgorithm(t *testing.T) {
	_, err := New("sha999")
	if err == nil {
		t.Fatal("New() should fail for unsupported algorithm")
	}

	var unsupported *UnsupportedAlgorithmError
	if !errors.As(err, &unsupported) {
		t.Fatalf("error type = %T, want *UnsupportedAlgorithmError", err)
	}
	if unsupported.Name != "sha999" {
		t.Errorf("error name = %q, want %q", unsupported.Name, "sha999")
	}
}

// TestNewHasherValidation verifies the hasher constructor rejects bad algorithms
func TestNewHasherValidation(t *testing.T) {
	t.Run("UnsupportedAlgorithm", func(t *testing.T) {
		_, err := NewHasher("crc99", DefaultChunkSize)
		if err == nil {
			t.Error("NewHasher() should fail for unsupported algorithm")
		}
	})

	t.Run("ZeroChunkSizeGetsDefault", func(t *testing.T) {
		h, err := NewHasher("sha256", 0)
		if err != nil {
			t.Fatalf("NewHasher() error = %v", err)
		}
		if h.chunkSize != DefaultChunkSize {
			t.Errorf("chunkSize = %d, want %d", h.chunkSize, DefaultChunkSize)
		}
	})

	t.Run("TinyChunkSizeGetsFloor", func(t *testing.T) {
		h, err := NewHasher("sha256", 16)
		if err != nil {
			t.Fatalf("NewHasher() error = %v", err)
		}
		if h.chunkSize != minChunkSize {
			t.Errorf("chunkSize = %d, want %d", h.chunkSize, minChunkSize)
		}
	})
}

// TestSumKnownDigests verifies digests against reference values
func TestSumKnownDigests(t *testing.T) {
	content := []byte("AA")

	sha256Sum := sha256.Sum256(content)
	sha512Sum := sha512.Sum512(content)

	tests := []struct {
		algorithm string
		expected  string
	}{
		{"sha256", hex.EncodeToString(sha256Sum[:])},
		{"sha512", hex.EncodeToString(sha512Sum[:])},
	}

	for _, tt := range tests {
		t.Run(tt.algorithm, func(t *testing.T) {
			h, err := NewHasher(tt.algorithm, DefaultChunkSize)
			if err != nil {
				t.Fatalf("NewHasher() error = %v", err)
			}

			got, err := h.Sum(context.Background(), bytes.NewReader(content))
			if err != nil {
				t.Fatalf("Sum() error = %v", err)
			}
			if got != tt.expected {
				t.Errorf("Sum() = %q, want %q", got, tt.expected)
			}
		})
	}
}

// TestSumDeterministic verifies the same content hashes identically
func TestSumDeterministic(t *testing.T) {
	content := bytes.Repeat([]byte("hashsentry"), 50000)

	for _, algorithm := range Supported() {
		t.Run(algorithm, func(t *testing.T) {
			h, err := NewHasher(algorithm, DefaultChunkSize)
			if err != nil {
				t.Fatalf("NewHasher() error = %v", err)
			}

			first, err := h.Sum(context.Background(), bytes.NewReader(content))
			if err != nil {
				t.Fatalf("first Sum() error = %v", err)
			}
			second, err := h.Sum(context.Background(), bytes.NewReader(content))
			if err != nil {
				t.Fatalf("second Sum() error = %v", err)
			}
			if first != second {
				t.Errorf("digests differ for identical content: %q vs %q", first, second)
			}
		})
	}
}

// TestSumChunkSizeIndependent verifies the chunk size does not change the digest
func TestSumChunkSizeIndependent(t *testing.T) {
	content := bytes.Repeat([]byte{0xAB, 0xCD}, 100000)

	reference, err := NewHasher("sha256", DefaultChunkSize)
	if err != nil {
		t.Fatalf("NewHasher() error = %v", err)
	}
	want, err := reference.Sum(context.Background(), bytes.NewReader(content))
	if err != nil {
		t.Fatalf("Sum() error = %v", err)
	}

	for _, chunkSize := range []int{4096, 8192, 65536} {
		small, err := NewHasher("sha256", chunkSize)
		if err != nil {
			t.Fatalf("NewHasher(%d) error = %v", chunkSize, err)
		}
		got, err := small.Sum(context.Background(), bytes.NewReader(content))
		if err != nil {
			t.Fatalf("Sum() with chunk size %d error = %v", chunkSize, err)
		}
		if got != want {
			t.Errorf("chunk size %d produced %q, want %q", chunkSize, got, want)
		}
	}
}

// failingReader fails after serving some bytes
type failingReader struct {
	data   []byte
	served bool
}

func (r *failingReader) Read(p []byte) (int, error) {
	if !r.served {
		r.served = true
		n := copy(p, r.data)
		return n, nil
	}
	return 0, errors.New("device error")
}

// TestSumReadFailure verifies a read error discards the partial digest
func TestSumReadFailure(t *testing.T) {
	h, err := NewHasher("sha256", DefaultChunkSize)
	if err != nil {
		t.Fatalf("NewHasher() error = %v", err)
	}

	got, err := h.Sum(context.Background(), &failingReader{data: []byte("partial")})
	if err == nil {
		t.Fatal("Sum() should fail when the reader fails")
	}
	if got != "" {
		t.Errorf("Sum() returned partial digest %q on failure", got)
	}
}

// TestSumContextCancellation verifies cancellation aborts hashing
func TestSumContextCancellation(t *testing.T) {
	h, err := NewHasher("sha256", DefaultChunkSize)
	if err != nil {
		t.Fatalf("NewHasher() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = h.Sum(ctx, strings.NewReader("content"))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Sum() error = %v, want context.Canceled", err)
	}
}

// TestSumReaderWrapper verifies the wrapper hook sees the stream
func TestSumReaderWrapper(t *testing.T) {
	h, err := NewHasher("sha256", DefaultChunkSize)
	if err != nil {
		t.Fatalf("NewHasher() error = %v", err)
	}

	wrapped := false
	h.SetReaderWrapper(func(r io.Reader) io.Reader {
		wrapped = true
		return r
	})

	if _, err := h.Sum(context.Background(), strings.NewReader("content")); err != nil {
		t.Fatalf("Sum() error = %v", err)
	}
	if !wrapped {
		t.Error("reader wrapper was not applied")
	}
}
