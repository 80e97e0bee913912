package dispatch

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/martinopiaggi/summarize/internal/segment"
)

// ErrAllChunksFailed means every chunk produced an empty or failed result.
// Partial success, even one chunk of many, is a normal outcome and does not
// raise it.
var ErrAllChunksFailed = errors.New("no chunk produced usable content")

// placeholder substituted with the chunk text in the request template.
const placeholder = "{text}"

// Replies containing these phrases mean the model had too little context to
// work with. Expected for boundary-spanning chunks, so the chunk is dropped
// rather than treated as an error.
var refusalPhrases = []string{"please provide", "please share"}

// Process runs one generation call per non-empty chunk, bounded by the
// configured concurrency, and returns results ordered by chunk index
// regardless of completion order.
func (d *implDispatcher) Process(ctx context.Context, chunks []segment.Chunk, template string) ([]Result, error) {
	var pending []segment.Chunk
	for _, c := range chunks {
		if strings.TrimSpace(c.Text) != "" {
			pending = append(pending, c)
		}
	}
	if len(pending) == 0 {
		return nil, errors.New("no valid content chunks to process")
	}

	d.logger.Info(ctx, "processing %d chunks (max concurrent: %d)", len(pending), d.opts.MaxConcurrent)

	sem := newSemaphore(d.opts.MaxConcurrent)
	results := make([]Result, len(pending))
	total := len(pending)
	var completed int64
	var wg sync.WaitGroup

	for i, chunk := range pending {
		wg.Add(1)
		go func(slot int, c segment.Chunk) {
			defer wg.Done()

			res := Result{Index: c.Index, Timestamp: c.Timestamp}
			defer func() {
				results[slot] = res
				done := int(atomic.AddInt64(&completed, 1))
				if d.opts.Progress != nil {
					d.opts.Progress(done, total)
				}
			}()

			if err := sem.acquire(ctx); err != nil {
				res.Failed = true
				return
			}
			defer sem.release()

			text, err := d.processChunk(ctx, c, template)
			if err != nil {
				d.logger.Warn(ctx, "chunk %d failed after %d attempts: %v", c.Index, d.opts.RetryAttempts, err)
				res.Failed = true
				return
			}
			res.Text = text
		}(i, chunk)
	}
	wg.Wait()

	usable := 0
	for _, r := range results {
		if !r.Failed && strings.TrimSpace(r.Text) != "" {
			usable++
		}
	}
	if usable == 0 {
		return nil, ErrAllChunksFailed
	}

	sort.Slice(results, func(i, j int) bool { return results[i].Index < results[j].Index })
	d.logger.Info(ctx, "completed %d/%d chunks", usable, total)
	return results, nil
}

// processChunk issues the request for one chunk through the retry wrapper
// and filters content-free replies.
func (d *implDispatcher) processChunk(ctx context.Context, c segment.Chunk, template string) (string, error) {
	prompt := strings.ReplaceAll(template, placeholder, strings.TrimSpace(c.Text))

	text, err := withRetry(ctx, d.opts.RetryAttempts, d.opts.Backoff, func(ctx context.Context) (string, error) {
		if d.limiter != nil {
			if err := d.limiter.Wait(ctx); err != nil {
				return "", err
			}
		}
		return d.client.Complete(ctx, prompt)
	})
	if err != nil {
		return "", err
	}
	if isRefusal(text) {
		return "", nil
	}
	return text, nil
}

func isRefusal(text string) bool {
	lower := strings.ToLower(text)
	for _, phrase := range refusalPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}
