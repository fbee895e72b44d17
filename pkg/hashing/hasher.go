package hashing

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"sync"
)

// DefaultChunkSize is the read size used when none is configured (1 MiB)
const DefaultChunkSize = 1024 * 1024

// minChunkSize is the floor for configured chunk sizes
const minChunkSize = 4096

// ReaderWrapper wraps a reader before hashing (e.g., for rate limiting)
type ReaderWrapper func(io.Reader) io.Reader

// Hasher computes streaming digests with a fixed chunk size
type Hasher struct {
	algorithm     string
	chunkSize     int
	bufferPool    *sync.Pool
	readerWrapper ReaderWrapper
}

// NewHasher creates a hasher for the named algorithm. The algorithm is
// validated here, before any I/O is attempted.
func NewHasher(algorithm string, chunkSize int) (*Hasher, error) {
	if !IsSupported(algorithm) {
		return nil, &UnsupportedAlgorithmError{Name: algorithm}
	}
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if chunkSize < minChunkSize {
		chunkSize = minChunkSize
	}
	return &Hasher{
		algorithm: algorithm,
		chunkSize: chunkSize,
		bufferPool: &sync.Pool{
			New: func() interface{} {
				buf := make([]byte, chunkSize)
				return &buf
			},
		},
	}, nil
}

// SetReaderWrapper sets a function to wrap readers (e.g., for rate limiting)
func (h *Hasher) SetReaderWrapper(wrapper ReaderWrapper) {
	h.readerWrapper = wrapper
}

// Algorithm returns the algorithm name
func (h *Hasher) Algorithm() string {
	return h.algorithm
}

// Sum streams reader through the digest in fixed-size chunks and returns the
// lowercase hex digest. A read failure discards the partial digest and
// returns an error; the caller decides whether to skip the file or abort.
func (h *Hasher) Sum(ctx context.Context, reader io.Reader) (string, error) {
	digest, err := New(h.algorithm)
	if err != nil {
		return "", err
	}

	if h.readerWrapper != nil {
		reader = h.readerWrapper(reader)
	}

	bufPtr := h.bufferPool.Get().(*[]byte)
	buffer := *bufPtr
	defer h.bufferPool.Put(bufPtr)

	for {
		// Check context cancellation
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		n, err := reader.Read(buffer)
		if n > 0 {
			digest.Write(buffer[:n])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to read file: %w", err)
		}
	}

	return hex.EncodeToString(digest.Sum(nil)), nil
}
