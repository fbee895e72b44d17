package ratelimit

import (
	"io"
	"sync"
	"time"
)

// Limiter caps read throughput across any number of readers using a token
// bucket. Used to keep hashing from saturating slow or shared storage.
type Limiter struct {
	bytesPerSecond int64
	mu             sync.Mutex
	tokens         int64
	lastUpdate     time.Time
	bucketSize     int64
}

// NewLimiter creates a limiter for the given bytes-per-second cap.
// A cap of zero or less returns nil, meaning no limiting.
func NewLimiter(bytesPerSecond int64) *Limiter {
	if bytesPerSecond <= 0 {
		return nil
	}

	// One second of burst, floored at 64KB so small caps still read smoothly
	bucketSize := bytesPerSecond
	if bucketSize < 65536 {
		bucketSize = 65536
	}

	return &Limiter{
		bytesPerSecond: bytesPerSecond,
		tokens:         bucketSize,
		lastUpdate:     time.Now(),
		bucketSize:     bucketSize,
	}
}

// Reader wraps an io.Reader with a throughput cap
type Reader struct {
	reader  io.Reader
	limiter *Limiter
}

// NewReader wraps reader with the limiter. A nil limiter returns the reader
// unchanged.
func NewReader(reader io.Reader, limiter *Limiter) io.Reader {
	if limiter == nil {
		return reader
	}
	return &Reader{reader: reader, limiter: limiter}
}

// Read implements io.Reader, blocking until the bucket allows the read
func (r *Reader) Read(p []byte) (int, error) {
	toRead := len(p)
	if toRead > int(r.limiter.bucketSize) {
		toRead = int(r.limiter.bucketSize)
	}

	r.limiter.wait(int64(toRead))

	n, err := r.reader.Read(p[:toRead])
	if n > 0 {
		r.limiter.consume(int64(n))
	}
	return n, err
}

// wait blocks until enough tokens are available
func (l *Limiter) wait(needed int64) {
	for {
		l.mu.Lock()
		l.refill()

		if l.tokens >= needed {
			l.mu.Unlock()
			return
		}

		deficit := needed - l.tokens
		l.mu.Unlock()

		waitTime := time.Duration(float64(deficit) / float64(l.bytesPerSecond) * float64(time.Second))
		if waitTime < time.Millisecond {
			waitTime = time.Millisecond
		}
		time.Sleep(waitTime)
	}
}

// refill adds tokens for elapsed time (must be called with the lock held)
func (l *Limiter) refill() {
	now := time.Now()
	elapsed := now.Sub(l.lastUpdate)

	tokensToAdd := int64(float64(elapsed) / float64(time.Second) * float64(l.bytesPerSecond))
	if tokensToAdd > 0 {
		l.tokens += tokensToAdd
		if l.tokens > l.bucketSize {
			l.tokens = l.bucketSize
		}
		l.lastUpdate = now
	}
}

// consume removes tokens after a completed read
func (l *Limiter) consume(n int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.tokens -= n
	if l.tokens < 0 {
		l.tokens = 0
	}
}
