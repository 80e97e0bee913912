package dispatch

import (
	"context"
	"time"

	"github.com/martinopiaggi/summarize/internal/segment"
)

// Dispatcher runs generation requests for transcript chunks under a
// concurrency bound and returns the results in chunk order.
type Dispatcher interface {
	Process(ctx context.Context, chunks []segment.Chunk, template string) ([]Result, error)
}

// Result is the outcome of one chunk's generation call. Failed or empty
// results are dropped at assembly time, not treated as fatal.
type Result struct {
	Index     int
	Timestamp string
	Text      string
	Failed    bool
}

// Options configure a dispatch run.
type Options struct {
	// MaxConcurrent bounds in-flight requests. Must be in [1, 100].
	MaxConcurrent int
	// RetryAttempts is the per-chunk attempt budget (calls, not retries).
	RetryAttempts int
	// RequestsPerSecond caps the overall request rate. Zero disables it.
	RequestsPerSecond float64
	// Backoff returns the delay before retrying after a failed attempt
	// (0-based). Defaults to ExponentialBackoff.
	Backoff func(attempt int) time.Duration
	// Progress is invoked as each chunk task completes, successful or
	// not. completed is the number of finished tasks so far.
	Progress func(completed, total int)
}

// ExponentialBackoff waits 2^attempt seconds: 1s, 2s, 4s, ...
func ExponentialBackoff(attempt int) time.Duration {
	return time.Duration(1<<attempt) * time.Second
}
