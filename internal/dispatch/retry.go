package dispatch

import (
	"context"
	"time"
)

// withRetry runs fn up to attempts times. The budget counts calls, not
// retries: attempts=3 means at most three invocations. Between failed
// attempts it sleeps for backoff(attempt), aborting early when the context
// is cancelled.
func withRetry(ctx context.Context, attempts int, backoff func(int) time.Duration, fn func(context.Context) (string, error)) (string, error) {
	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		text, err := fn(ctx)
		if err == nil {
			return text, nil
		}
		lastErr = err

		if attempt == attempts-1 {
			break
		}
		select {
		case <-time.After(backoff(attempt)):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return "", lastErr
}
