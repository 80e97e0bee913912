// Package source turns a video source (URL, local file, drive mount) into
// a timestamped transcript, choosing between the platform caption track
// and an audio download followed by transcription.
package source

import (
	"regexp"

	"github.com/pkg/errors"
)

// Kind classifies where a transcript source lives.
type Kind string

const (
	KindYouTube     Kind = "youtube"
	KindVideoURL    Kind = "video-url"
	KindLocalFile   Kind = "local-file"
	KindGoogleDrive Kind = "google-drive"
	KindDropbox     Kind = "dropbox"
)

// ParseKind maps a user-supplied source type name to a Kind.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindYouTube, KindVideoURL, KindLocalFile, KindGoogleDrive, KindDropbox:
		return Kind(s), nil
	}
	return "", errors.Errorf("unknown source kind %q (available: youtube, video-url, local-file, google-drive, dropbox)", s)
}

// Descriptor identifies one source. Built once from caller input, never
// mutated afterwards.
type Descriptor struct {
	Kind    Kind
	Locator string
}

// youtubeIDPattern matches watch, embed, short-link and bare /v/ URL
// shapes, capturing the 11-character video ID.
var youtubeIDPattern = regexp.MustCompile(`(?:https?://)?(?:www\.)?(?:youtube\.com/(?:[^/\n\s]+/\S+/|(?:v|e(?:mbed)?)/|\S*?[?&]v=)|youtu\.be/)([a-zA-Z0-9_-]{11})`)

// ExtractYouTubeID pulls the video ID out of a YouTube URL.
func ExtractYouTubeID(url string) (string, error) {
	m := youtubeIDPattern.FindStringSubmatch(url)
	if m == nil {
		return "", errors.Errorf("could not extract a YouTube video ID from %q", url)
	}
	return m[1], nil
}

// IsYouTubeURL reports whether the URL looks like a YouTube video link.
func IsYouTubeURL(url string) bool {
	return youtubeIDPattern.MatchString(url)
}

// DetectKind classifies a bare locator: YouTube links get the caption
// path, other URLs the relay path, everything else is a local file.
func DetectKind(locator string) Kind {
	if IsYouTubeURL(locator) {
		return KindYouTube
	}
	if urlPattern.MatchString(locator) {
		if dropboxPattern.MatchString(locator) {
			return KindDropbox
		}
		return KindVideoURL
	}
	return KindLocalFile
}

var (
	urlPattern     = regexp.MustCompile(`^https?://`)
	dropboxPattern = regexp.MustCompile(`^https?://(?:www\.)?dropbox\.com/`)
)
