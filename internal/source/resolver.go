package source

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/martinopiaggi/summarize/internal/audio"
	"github.com/martinopiaggi/summarize/internal/captions"
	"github.com/martinopiaggi/summarize/internal/config"
	"github.com/martinopiaggi/summarize/internal/logger"
	"github.com/martinopiaggi/summarize/internal/transcribe"
	"github.com/martinopiaggi/summarize/pkg/executor"
)

// Resolver produces the timestamped transcript for a source.
type Resolver interface {
	Resolve(ctx context.Context, desc Descriptor) (string, error)
}

type implResolver struct {
	useCaptions bool
	language    string
	captions    captions.Client
	strategies  []Strategy
	pipeline    *audio.Pipeline
	transcriber transcribe.Transcriber
	logger      logger.Logger
}

// New wires the caption client, the download strategies and the
// transcription backend from the configuration.
func New(cfg *config.Config, exec executor.Executor, log logger.Logger) (Resolver, error) {
	transcriber, err := transcribe.New(cfg, exec, log)
	if err != nil {
		return nil, err
	}

	httpClient := &http.Client{Timeout: 10 * time.Minute}
	return &implResolver{
		useCaptions: cfg.Source.UseYouTubeCaptions,
		language:    cfg.Source.Language,
		captions:    captions.New(),
		strategies: []Strategy{
			&ytDlpStrategy{binary: cfg.Source.YtDlpPath, tempDir: cfg.Paths.Temp, exec: exec, logger: log},
			&fileStrategy{driveMountDir: cfg.Source.DriveMountDir},
			&dropboxStrategy{tempDir: cfg.Paths.Temp, http: httpClient, logger: log},
			&cobaltStrategy{baseURL: cfg.Cobalt.BaseURL, tempDir: cfg.Paths.Temp, http: httpClient, logger: log},
		},
		pipeline:    audio.NewPipeline(exec, cfg.Paths.Temp, log),
		transcriber: transcriber,
		logger:      log,
	}, nil
}

func (r *implResolver) Resolve(ctx context.Context, desc Descriptor) (string, error) {
	if desc.Kind == KindYouTube && r.useCaptions && IsYouTubeURL(desc.Locator) {
		return r.resolveCaptions(ctx, desc)
	}
	return r.resolveDownload(ctx, desc)
}

// resolveCaptions fetches the platform caption track. Failure is not
// silently retried as a download: the caller decides whether to disable
// captions and try again.
func (r *implResolver) resolveCaptions(ctx context.Context, desc Descriptor) (string, error) {
	videoID, err := ExtractYouTubeID(desc.Locator)
	if err != nil {
		return "", errors.Wrapf(ErrTranscriptUnavailable, "%v", err)
	}

	r.logger.Info(ctx, "fetching caption track for %s", videoID)
	entries, err := r.captions.Fetch(ctx, videoID, r.language)
	if err != nil {
		return "", errors.Wrapf(ErrTranscriptUnavailable,
			"%v (disable YouTube captions to transcribe the audio instead)", err)
	}
	return captions.Render(entries), nil
}

func (r *implResolver) resolveDownload(ctx context.Context, desc Descriptor) (string, error) {
	strategy := r.selectStrategy(desc)
	if strategy == nil {
		return "", errors.Wrapf(ErrUnsupportedSource, "%s %q", desc.Kind, desc.Locator)
	}

	raw, err := strategy.Acquire(ctx, desc)
	if err != nil {
		return "", err
	}
	defer raw.Release(ctx, r.logger)

	processed, err := r.pipeline.Transcode(ctx, raw.Path)
	if err != nil {
		return "", err
	}
	defer processed.Release(ctx, r.logger)

	transcript, err := r.transcriber.Transcribe(ctx, processed.Path)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(transcript) == "" {
		return "", errors.New("transcription produced no text")
	}
	return transcript, nil
}

func (r *implResolver) selectStrategy(desc Descriptor) Strategy {
	for _, s := range r.strategies {
		if s.Match(desc) {
			return s
		}
	}
	return nil
}
