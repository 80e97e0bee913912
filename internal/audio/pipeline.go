// Package audio normalizes acquired media into the small mono MP3 format
// the transcription backends expect, shelling out to ffmpeg.
package audio

import (
	"context"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/martinopiaggi/summarize/internal/logger"
	"github.com/martinopiaggi/summarize/pkg/executor"
)

// ErrProcessing wraps ffmpeg failures.
var ErrProcessing = errors.New("audio processing failed")

// Pipeline converts media files into transcription-ready audio.
type Pipeline struct {
	exec    executor.Executor
	tempDir string
	logger  logger.Logger
}

func NewPipeline(exec executor.Executor, tempDir string, log logger.Logger) *Pipeline {
	if tempDir == "" {
		tempDir = os.TempDir()
	}
	return &Pipeline{exec: exec, tempDir: tempDir, logger: log}
}

// Transcode extracts the audio track from the input and downsamples it in
// two stages: first to 16 kHz mono WAV, then to 8 kHz mono MP3 at 16 kbps
// to stay within transcription API upload limits. The intermediate WAV is
// always removed; the returned artifact is owned by the caller.
func (p *Pipeline) Transcode(ctx context.Context, input string) (Artifact, error) {
	id := uuid.NewString()
	wavPath := filepath.Join(p.tempDir, id+".wav")
	mp3Path := filepath.Join(p.tempDir, id+".mp3")

	p.logger.Debug(ctx, "extracting audio from %s", input)
	_, err := p.exec.Execute(ctx, "ffmpeg",
		"-y", "-i", input, "-vn",
		"-acodec", "pcm_s16le", "-ar", "16000", "-ac", "1",
		wavPath)
	if err != nil {
		return Artifact{}, errors.Wrap(ErrProcessing, err.Error())
	}
	wav := Artifact{Path: wavPath, Owned: true}
	defer wav.Release(ctx, p.logger)

	p.logger.Debug(ctx, "downsampling audio to %s", mp3Path)
	_, err = p.exec.Execute(ctx, "ffmpeg",
		"-y", "-i", wavPath,
		"-ar", "8000", "-ac", "1", "-b:a", "16k",
		mp3Path)
	if err != nil {
		// ffmpeg may leave a partial output behind on failure.
		partial := Artifact{Path: mp3Path, Owned: true}
		partial.Release(ctx, p.logger)
		return Artifact{}, errors.Wrap(ErrProcessing, err.Error())
	}

	return Artifact{Path: mp3Path, Owned: true}, nil
}
