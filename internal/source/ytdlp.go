package source

import (
	"context"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/martinopiaggi/summarize/internal/audio"
	"github.com/martinopiaggi/summarize/internal/logger"
	"github.com/martinopiaggi/summarize/pkg/executor"
)

// ytDlpStrategy downloads YouTube audio through the yt-dlp binary.
type ytDlpStrategy struct {
	binary  string
	tempDir string
	exec    executor.Executor
	logger  logger.Logger
}

func (s *ytDlpStrategy) Match(desc Descriptor) bool {
	return desc.Kind == KindYouTube
}

func (s *ytDlpStrategy) Acquire(ctx context.Context, desc Descriptor) (audio.Artifact, error) {
	id := uuid.NewString()

	// yt-dlp picks the container, so the extension is only known after
	// the download finishes.
	s.logger.Info(ctx, "downloading audio for %s", desc.Locator)
	_, err := s.exec.ExecuteInDir(ctx, s.tempDir, s.binary,
		"-f", "bestaudio/best",
		"--no-playlist",
		"-o", id+".%(ext)s",
		desc.Locator)
	if err != nil {
		// A download that dies mid-stream leaves a partial .part file
		// under the output prefix.
		s.removePartials(ctx, id)
		return audio.Artifact{}, errors.Wrap(err, "yt-dlp download")
	}

	matches, err := filepath.Glob(filepath.Join(s.tempDir, id+".*"))
	if err != nil {
		return audio.Artifact{}, errors.Wrap(err, "locate downloaded audio")
	}
	if len(matches) == 0 {
		return audio.Artifact{}, errors.New("yt-dlp reported success but produced no file")
	}
	return audio.Artifact{Path: matches[0], Owned: true}, nil
}

func (s *ytDlpStrategy) removePartials(ctx context.Context, id string) {
	matches, err := filepath.Glob(filepath.Join(s.tempDir, id+".*"))
	if err != nil {
		return
	}
	for _, m := range matches {
		if err := os.Remove(m); err != nil && !os.IsNotExist(err) {
			s.logger.Warn(ctx, "failed to remove partial download %s: %v", m, err)
		}
	}
}
