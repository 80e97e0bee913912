package watcher

import "context"

// Watcher monitors a directory for new media files to summarize.
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler is invoked for each new media file.
type EventHandler func(ctx context.Context, filePath string) error
