package source

import (
	"context"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/martinopiaggi/summarize/internal/audio"
	"github.com/martinopiaggi/summarize/internal/logger"
)

// dropboxStrategy fetches shared Dropbox links directly, rewriting the
// preview link into a direct-download one.
type dropboxStrategy struct {
	tempDir string
	http    *http.Client
	logger  logger.Logger
}

func (s *dropboxStrategy) Match(desc Descriptor) bool {
	return desc.Kind == KindDropbox
}

func (s *dropboxStrategy) Acquire(ctx context.Context, desc Descriptor) (audio.Artifact, error) {
	url := directDropboxURL(desc.Locator)
	dest := filepath.Join(s.tempDir, uuid.NewString()+".bin")

	s.logger.Info(ctx, "downloading dropbox media %s", desc.Locator)
	if err := downloadToFile(ctx, s.http, url, dest); err != nil {
		return audio.Artifact{}, errors.Wrap(err, "dropbox download")
	}
	return audio.Artifact{Path: dest, Owned: true}, nil
}

// directDropboxURL turns a shared preview link (dl=0) into a direct
// download link (dl=1).
func directDropboxURL(url string) string {
	if strings.Contains(url, "dl=0") {
		return strings.Replace(url, "dl=0", "dl=1", 1)
	}
	if strings.Contains(url, "?") {
		return url + "&dl=1"
	}
	return url + "?dl=1"
}
