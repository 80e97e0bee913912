// Package captions fetches YouTube caption tracks through the timedtext
// endpoint and renders them as timestamped transcript text.
package captions

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/martinopiaggi/summarize/internal/segment"
)

const defaultBaseURL = "https://www.youtube.com/api/timedtext"

type implClient struct {
	baseURL string
	http    *http.Client
}

// New creates a caption Client against the public timedtext endpoint.
func New() Client {
	return &implClient{
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// rawTrack mirrors the json3 wire format: a list of events, each holding
// one or more utf8 segments. Styling and window fields are ignored.
type rawTrack struct {
	Events []rawEvent `json:"events"`
}

type rawEvent struct {
	TStartMs int64    `json:"tStartMs"`
	Segs     []rawSeg `json:"segs,omitempty"`
}

type rawSeg struct {
	Utf8 string `json:"utf8"`
}

func (c *implClient) Fetch(ctx context.Context, videoID, language string) ([]Entry, error) {
	if language == "auto" || language == "" {
		language = "en"
	}

	endpoint := fmt.Sprintf("%s?v=%s&lang=%s&fmt=json3",
		c.baseURL, url.QueryEscape(videoID), url.QueryEscape(language))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Wrap(err, "build caption request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "fetch caption track")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("caption track request returned %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read caption track")
	}
	// An empty body means no track exists for this video/language pair.
	if len(body) == 0 {
		return nil, errors.New("no caption track available")
	}

	var track rawTrack
	if err := json.Unmarshal(body, &track); err != nil {
		return nil, errors.Wrap(err, "parse caption track")
	}

	var entries []Entry
	for _, ev := range track.Events {
		var b strings.Builder
		for _, seg := range ev.Segs {
			b.WriteString(seg.Utf8)
		}
		text := strings.TrimSpace(b.String())
		if text == "" {
			continue
		}
		entries = append(entries, Entry{
			Start: float64(ev.TStartMs) / 1000,
			Text:  text,
		})
	}
	if len(entries) == 0 {
		return nil, errors.New("caption track has no text events")
	}
	return entries, nil
}

// Render joins caption entries into transcript lines of the form
// "HH:MM:SS text".
func Render(entries []Entry) string {
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, segment.FormatTimestamp(e.Start)+" "+e.Text)
	}
	return strings.Join(lines, "\n")
}
