package source

import (
	"context"
	"io"
	"net/http"
	"os"

	"github.com/pkg/errors"

	"github.com/martinopiaggi/summarize/internal/audio"
)

// Strategy acquires the raw media file for a source. Platform-specific
// strategies come before the generic relay, which matches any URL.
type Strategy interface {
	Match(desc Descriptor) bool
	Acquire(ctx context.Context, desc Descriptor) (audio.Artifact, error)
}

// downloadToFile streams a URL to dest, removing the partial file on
// failure.
func downloadToFile(ctx context.Context, client *http.Client, url, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errors.Wrap(err, "build download request")
	}

	resp, err := client.Do(req)
	if err != nil {
		return errors.Wrap(err, "download media")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("media download returned %d", resp.StatusCode)
	}

	f, err := os.Create(dest)
	if err != nil {
		return errors.Wrap(err, "create download file")
	}

	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		os.Remove(dest)
		return errors.Wrap(err, "write download file")
	}
	return f.Close()
}
