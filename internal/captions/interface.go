package captions

import "context"

// Entry is one caption cue with its start offset in seconds.
type Entry struct {
	Start float64
	Text  string
}

// Client fetches the caption track for a video.
type Client interface {
	Fetch(ctx context.Context, videoID, language string) ([]Entry, error)
}
