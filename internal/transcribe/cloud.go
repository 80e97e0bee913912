package transcribe

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/martinopiaggi/summarize/internal/config"
	"github.com/martinopiaggi/summarize/internal/logger"
	"github.com/martinopiaggi/summarize/internal/segment"
)

const (
	groqEndpoint = "https://api.groq.com/openai/v1/audio/transcriptions"
	groqModel    = "whisper-large-v3"
)

// implCloud sends audio to Groq's hosted Whisper. The whole file becomes a
// single segment anchored at 00:00:00.
type implCloud struct {
	endpoint string
	apiKey   string
	language string
	lookup   config.LookupFunc
	http     *http.Client
	logger   logger.Logger
}

func newCloud(cfg *config.Config, lookup config.LookupFunc, log logger.Logger) (*implCloud, error) {
	language := cfg.Source.Language
	if language == "auto" || language == "" {
		language = "en"
	}

	return &implCloud{
		endpoint: groqEndpoint,
		language: language,
		lookup:   lookup,
		http:     &http.Client{Timeout: 5 * time.Minute},
		logger:   log,
	}, nil
}

func (c *implCloud) Transcribe(ctx context.Context, audioPath string) (string, error) {
	// The key is resolved per call: caption-only runs never need it.
	if c.apiKey == "" {
		key, err := config.ResolveAPIKey("", c.endpoint, c.lookup)
		if err != nil {
			return "", errors.Wrap(err, "cloud transcription needs a Groq API key")
		}
		c.apiKey = key
	}

	f, err := os.Open(audioPath)
	if err != nil {
		return "", errors.Wrap(err, "open audio file")
	}
	defer f.Close()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", filepath.Base(audioPath))
	if err != nil {
		return "", errors.Wrap(err, "build upload")
	}
	if _, err := io.Copy(part, f); err != nil {
		return "", errors.Wrap(err, "read audio file")
	}
	w.WriteField("model", groqModel)
	w.WriteField("response_format", "text")
	w.WriteField("language", c.language)
	w.WriteField("temperature", "0")
	if err := w.Close(); err != nil {
		return "", errors.Wrap(err, "finalize upload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, &body)
	if err != nil {
		return "", errors.Wrap(err, "build transcription request")
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	c.logger.Info(ctx, "transcribing %s via hosted whisper", filepath.Base(audioPath))
	resp, err := c.http.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "transcription request")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrap(err, "read transcription response")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", errors.Errorf("transcription request returned %d: %s", resp.StatusCode, excerpt(string(raw)))
	}

	text := strings.TrimSpace(string(raw))
	if text == "" {
		return "", errors.New("transcription returned no text")
	}
	return segment.FormatTimestamp(0) + " " + text + "\n", nil
}

func excerpt(s string) string {
	if len(s) > 200 {
		return s[:200] + "..."
	}
	return s
}
