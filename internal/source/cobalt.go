package source

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/martinopiaggi/summarize/internal/audio"
	"github.com/martinopiaggi/summarize/internal/logger"
)

// cobaltStrategy relays arbitrary video URLs through a cobalt instance,
// which resolves them to a direct media download. Catch-all: must come
// after the platform-specific strategies.
type cobaltStrategy struct {
	baseURL string
	tempDir string
	http    *http.Client
	logger  logger.Logger
}

func (s *cobaltStrategy) Match(desc Descriptor) bool {
	return strings.HasPrefix(desc.Locator, "http://") || strings.HasPrefix(desc.Locator, "https://")
}

// cobaltResponse covers the response shapes of different cobalt versions:
// the resolved link may sit under any of several field names.
type cobaltResponse struct {
	Status   string `json:"status"`
	Text     string `json:"text"`
	URL      string `json:"url"`
	Download string `json:"download"`
	Audio    string `json:"audio"`
	File     string `json:"file"`
	Links    []struct {
		URL string `json:"url"`
	} `json:"links"`
}

func (r *cobaltResponse) downloadURL() string {
	for _, u := range []string{r.URL, r.Download, r.Audio, r.File} {
		if u != "" {
			return u
		}
	}
	if len(r.Links) > 0 {
		return r.Links[0].URL
	}
	return ""
}

func (s *cobaltStrategy) Acquire(ctx context.Context, desc Descriptor) (audio.Artifact, error) {
	downloadURL, err := s.resolve(ctx, desc.Locator)
	if err != nil {
		return audio.Artifact{}, err
	}

	dest := filepath.Join(s.tempDir, uuid.NewString()+".bin")
	s.logger.Info(ctx, "downloading relayed media for %s", desc.Locator)
	if err := downloadToFile(ctx, s.http, downloadURL, dest); err != nil {
		return audio.Artifact{}, errors.Wrap(err, "relay download")
	}
	return audio.Artifact{Path: dest, Owned: true}, nil
}

func (s *cobaltStrategy) resolve(ctx context.Context, locator string) (string, error) {
	if s.baseURL == "" {
		return "", errors.New("cobalt base URL not configured")
	}

	body, err := json.Marshal(map[string]string{"url": locator})
	if err != nil {
		return "", errors.Wrap(err, "encode relay request")
	}

	endpoint := strings.TrimRight(s.baseURL, "/") + "/api/json"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", errors.Wrap(err, "build relay request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := s.http.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "relay request")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", errors.Errorf("relay request returned %d", resp.StatusCode)
	}

	var parsed cobaltResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", errors.Wrap(err, "parse relay response")
	}
	if parsed.Status == "error" {
		if parsed.Text != "" {
			return "", errors.Errorf("relay rejected the URL: %s", parsed.Text)
		}
		return "", errors.New("relay returned an error")
	}

	downloadURL := parsed.downloadURL()
	if downloadURL == "" {
		return "", errors.New("relay response did not include a download URL")
	}
	return downloadURL, nil
}
