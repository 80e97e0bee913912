package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/atotto/clipboard"

	"github.com/martinopiaggi/summarize/internal/config"
	"github.com/martinopiaggi/summarize/internal/logger"
	"github.com/martinopiaggi/summarize/internal/pipeline"
	"github.com/martinopiaggi/summarize/internal/source"
	"github.com/martinopiaggi/summarize/internal/summary"
	"github.com/martinopiaggi/summarize/internal/watcher"
	"github.com/martinopiaggi/summarize/pkg/executor"
)

type flags struct {
	configPath    string
	sourceType    string
	forceDownload bool
	baseURL       string
	model         string
	apiKey        string
	promptType    string
	chunkSize     int
	parallel      int
	maxTokens     int
	language      string
	transcription string
	outputDir     string
	format        string
	clipboard     bool
	cachePath     string
	watchDir      string
	logLevel      string
}

func parseFlags() *flags {
	f := &flags{}
	flag.StringVar(&f.configPath, "config", "", "path to a YAML config file")
	flag.StringVar(&f.sourceType, "type", "", "source kind: youtube, video-url, local-file, google-drive, dropbox (auto-detected when empty)")
	flag.BoolVar(&f.forceDownload, "force-download", false, "skip YouTube captions and transcribe the audio")
	flag.StringVar(&f.baseURL, "base-url", "", "generation API base URL")
	flag.StringVar(&f.model, "model", "", "generation model identifier")
	flag.StringVar(&f.apiKey, "api-key", "", "API key (resolved from the environment when empty)")
	flag.StringVar(&f.promptType, "prompt-type", "", "summary style")
	flag.IntVar(&f.chunkSize, "chunk-size", 0, "target chunk size in characters")
	flag.IntVar(&f.parallel, "parallel", 0, "max concurrent generation requests")
	flag.IntVar(&f.maxTokens, "max-tokens", 0, "max output tokens per chunk")
	flag.StringVar(&f.language, "language", "", "caption/transcription language code")
	flag.StringVar(&f.transcription, "transcription", "", "transcription backend: cloud or local")
	flag.StringVar(&f.outputDir, "output-dir", "", "directory for saved summaries")
	flag.StringVar(&f.format, "format", "", "output format: md or docx")
	flag.BoolVar(&f.clipboard, "clipboard", false, "also copy each summary to the clipboard")
	flag.StringVar(&f.cachePath, "cache", "", "transcript cache database path")
	flag.StringVar(&f.watchDir, "watch", "", "watch a directory and summarize new media files")
	flag.StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn, error")
	flag.Parse()
	return f
}

// buildConfig layers flags over the config file over the defaults.
func buildConfig(f *flags) (*config.Config, error) {
	cfg := config.Default()
	if f.configPath != "" {
		loaded, err := config.Load(f.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if f.forceDownload {
		cfg.Source.UseYouTubeCaptions = false
	}
	if f.baseURL != "" {
		cfg.API.BaseURL = f.baseURL
	}
	if f.model != "" {
		cfg.API.Model = f.model
	}
	if f.apiKey != "" {
		cfg.API.Key = f.apiKey
	}
	if f.promptType != "" {
		cfg.Chunking.PromptType = f.promptType
	}
	if f.chunkSize > 0 {
		cfg.Chunking.Size = f.chunkSize
	}
	if f.parallel > 0 {
		cfg.API.ParallelCalls = f.parallel
	}
	if f.maxTokens > 0 {
		cfg.API.MaxOutputTokens = f.maxTokens
	}
	if f.language != "" {
		cfg.Source.Language = f.language
	}
	if f.transcription != "" {
		cfg.Source.Transcription = f.transcription
	}
	if f.outputDir != "" {
		cfg.Output.Dir = f.outputDir
	}
	if f.format != "" {
		cfg.Output.Format = f.format
	}
	if f.clipboard {
		cfg.Output.Clipboard = true
	}
	if f.cachePath != "" {
		cfg.Cache.Path = f.cachePath
	}
	if f.logLevel != "" {
		cfg.Logging.Level = f.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func main() {
	f := parseFlags()

	cfg, err := buildConfig(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Options{Level: cfg.Logging.Level, File: cfg.Logging.File})
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	p, err := pipeline.New(cfg, executor.New(), log)
	if err != nil {
		log.Error(ctx, "failed to build pipeline: %v", err)
		os.Exit(1)
	}
	defer p.Close()

	if f.watchDir != "" {
		if err := runWatch(ctx, f.watchDir, cfg, p, log); err != nil && !errors.Is(err, context.Canceled) {
			log.Error(ctx, "watch mode failed: %v", err)
			os.Exit(1)
		}
		return
	}

	locators := flag.Args()
	if len(locators) == 0 {
		fmt.Fprintln(os.Stderr, "usage: summarize [flags] <url-or-path>...")
		flag.PrintDefaults()
		os.Exit(2)
	}

	failures := 0
	for _, locator := range locators {
		if err := processOne(ctx, locator, f.sourceType, cfg, p, log); err != nil {
			log.Error(ctx, "error processing %s: %v", locator, err)
			failures++
		}
	}
	if failures == len(locators) {
		os.Exit(1)
	}
}

func processOne(ctx context.Context, locator, sourceType string, cfg *config.Config, p pipeline.Pipeline, log logger.Logger) error {
	desc, err := describe(locator, sourceType)
	if err != nil {
		return err
	}

	log.Info(ctx, "processing %s (%s)", desc.Locator, desc.Kind)
	text, err := p.Run(ctx, desc)
	if err != nil {
		return err
	}

	path, err := save(cfg, desc.Locator, text)
	if err != nil {
		return err
	}
	log.Info(ctx, "summary saved to %s", path)

	if cfg.Output.Clipboard {
		if err := clipboard.WriteAll(text); err != nil {
			log.Warn(ctx, "clipboard copy failed: %v", err)
		}
	}
	return nil
}

func describe(locator, sourceType string) (source.Descriptor, error) {
	if sourceType == "" {
		return source.Descriptor{Kind: source.DetectKind(locator), Locator: locator}, nil
	}
	kind, err := source.ParseKind(sourceType)
	if err != nil {
		return source.Descriptor{}, err
	}
	return source.Descriptor{Kind: kind, Locator: locator}, nil
}

func save(cfg *config.Config, locator, text string) (string, error) {
	if cfg.Output.Format == "docx" {
		return summary.SaveDocx(cfg.Output.Dir, locator, text)
	}
	return summary.SaveMarkdown(cfg.Output.Dir, locator, text)
}

func runWatch(ctx context.Context, dir string, cfg *config.Config, p pipeline.Pipeline, log logger.Logger) error {
	w, err := watcher.New(dir, func(ctx context.Context, filePath string) error {
		return processOne(ctx, filePath, string(source.KindLocalFile), cfg, p, log)
	}, log, cfg.Watch.MaxConcurrent)
	if err != nil {
		return err
	}
	defer w.Stop()

	log.Info(ctx, "watch mode: drop media files into %s", dir)
	return w.Start(ctx)
}
