package dispatch

import (
	"fmt"

	"golang.org/x/time/rate"

	"github.com/martinopiaggi/summarize/internal/llm"
	"github.com/martinopiaggi/summarize/internal/logger"
)

const defaultRetryAttempts = 3

type implDispatcher struct {
	client  llm.Client
	opts    Options
	limiter *rate.Limiter
	logger  logger.Logger
}

// New creates a Dispatcher. An out-of-range concurrency bound is a
// configuration error, never silently clamped.
func New(client llm.Client, opts Options, log logger.Logger) (Dispatcher, error) {
	if opts.MaxConcurrent < 1 || opts.MaxConcurrent > 100 {
		return nil, fmt.Errorf("max concurrent requests must be between 1 and 100, got %d", opts.MaxConcurrent)
	}
	if opts.RetryAttempts <= 0 {
		opts.RetryAttempts = defaultRetryAttempts
	}
	if opts.Backoff == nil {
		opts.Backoff = ExponentialBackoff
	}

	var limiter *rate.Limiter
	if opts.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), opts.MaxConcurrent)
	}

	return &implDispatcher{
		client:  client,
		opts:    opts,
		limiter: limiter,
		logger:  log,
	}, nil
}
