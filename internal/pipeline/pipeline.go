// Package pipeline wires transcript acquisition, chunking, concurrent
// generation and assembly into a single run per source.
package pipeline

import (
	"context"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/martinopiaggi/summarize/internal/cache"
	"github.com/martinopiaggi/summarize/internal/config"
	"github.com/martinopiaggi/summarize/internal/dispatch"
	"github.com/martinopiaggi/summarize/internal/llm"
	"github.com/martinopiaggi/summarize/internal/logger"
	"github.com/martinopiaggi/summarize/internal/prompt"
	"github.com/martinopiaggi/summarize/internal/segment"
	"github.com/martinopiaggi/summarize/internal/source"
	"github.com/martinopiaggi/summarize/internal/summary"
	"github.com/martinopiaggi/summarize/pkg/executor"
)

// Pipeline produces a summary for one source.
type Pipeline interface {
	Run(ctx context.Context, desc source.Descriptor) (string, error)
	Close() error
}

type implPipeline struct {
	cfg        *config.Config
	resolver   source.Resolver
	dispatcher dispatch.Dispatcher
	cache      *cache.Cache
	template   string
	logger     logger.Logger
}

// New builds a pipeline from the configuration. The credential is
// resolved here, before any network call, so a missing key fails fast.
func New(cfg *config.Config, exec executor.Executor, log logger.Logger) (Pipeline, error) {
	apiKey, err := config.ResolveAPIKey(cfg.API.Key, cfg.API.BaseURL, os.LookupEnv)
	if err != nil {
		return nil, err
	}

	template, err := prompt.Get(cfg.Chunking.PromptType)
	if err != nil {
		return nil, err
	}

	client := llm.New(cfg.API.BaseURL, apiKey, cfg.API.Model, cfg.API.MaxOutputTokens)
	dispatcher, err := dispatch.New(client, dispatch.Options{
		MaxConcurrent:     cfg.API.ParallelCalls,
		RetryAttempts:     cfg.API.RetryAttempts,
		RequestsPerSecond: cfg.API.RequestsPerSecond,
		Progress: func(completed, total int) {
			log.Info(context.Background(), "processed %d/%d chunks", completed, total)
		},
	}, log)
	if err != nil {
		return nil, err
	}

	resolver, err := source.New(cfg, exec, log)
	if err != nil {
		return nil, err
	}

	var transcripts *cache.Cache
	if cfg.Cache.Path != "" {
		transcripts, err = cache.Open(cfg.Cache.Path)
		if err != nil {
			return nil, err
		}
	}

	return &implPipeline{
		cfg:        cfg,
		resolver:   resolver,
		dispatcher: dispatcher,
		cache:      transcripts,
		template:   template,
		logger:     log,
	}, nil
}

func (p *implPipeline) Run(ctx context.Context, desc source.Descriptor) (string, error) {
	transcript, err := p.transcript(ctx, desc)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(transcript) == "" {
		return "", errors.New("no transcript content to process")
	}

	chunks := segment.Split(transcript, p.cfg.Chunking.Size)
	p.logger.Info(ctx, "created %d chunks (target size: %d)", len(chunks), p.cfg.Chunking.Size)

	results, err := p.dispatcher.Process(ctx, chunks, p.template)
	if err != nil {
		return "", err
	}

	return summary.Assemble(results, desc), nil
}

// transcript returns the cached transcript when available, resolving and
// caching it otherwise.
func (p *implPipeline) transcript(ctx context.Context, desc source.Descriptor) (string, error) {
	if p.cache != nil {
		text, ok, err := p.cache.Get(ctx, desc.Locator)
		if err != nil {
			p.logger.Warn(ctx, "transcript cache read failed: %v", err)
		} else if ok {
			p.logger.Info(ctx, "using cached transcript for %s", desc.Locator)
			return text, nil
		}
	}

	text, err := p.resolver.Resolve(ctx, desc)
	if err != nil {
		return "", err
	}

	if p.cache != nil {
		if err := p.cache.Put(ctx, desc.Locator, text); err != nil {
			p.logger.Warn(ctx, "transcript cache write failed: %v", err)
		}
	}
	return text, nil
}

func (p *implPipeline) Close() error {
	if p.cache != nil {
		return p.cache.Close()
	}
	return nil
}
