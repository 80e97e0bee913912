package transcribe

import (
	"context"
	"os"

	"github.com/pkg/errors"

	"github.com/martinopiaggi/summarize/internal/config"
	"github.com/martinopiaggi/summarize/internal/logger"
	"github.com/martinopiaggi/summarize/pkg/executor"
)

// Transcriber turns an audio file into timestamped transcript text, one
// "HH:MM:SS text" line per segment.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}

// New selects the transcription backend from the configuration.
func New(cfg *config.Config, exec executor.Executor, log logger.Logger) (Transcriber, error) {
	switch cfg.Source.Transcription {
	case "cloud":
		return newCloud(cfg, os.LookupEnv, log)
	case "local":
		return newLocal(cfg, exec, log), nil
	default:
		return nil, errors.Errorf("unknown transcription backend %q", cfg.Source.Transcription)
	}
}
