package source

import "github.com/pkg/errors"

var (
	// ErrTranscriptUnavailable means the caption track could not be
	// fetched. Recoverable: the caller may disable captions and retry
	// through the download track.
	ErrTranscriptUnavailable = errors.New("transcript unavailable")

	// ErrSourceNotFound means a local or mounted file does not exist.
	ErrSourceNotFound = errors.New("source not found")

	// ErrUnsupportedSource means no download strategy matches the source.
	ErrUnsupportedSource = errors.New("unsupported source")
)
