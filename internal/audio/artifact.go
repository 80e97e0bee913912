package audio

import (
	"context"
	"os"

	"github.com/martinopiaggi/summarize/internal/logger"
)

// Artifact is an audio file on disk together with its ownership: owned
// artifacts are temporary and deleted after use, unowned ones belong to
// the user and are left in place.
type Artifact struct {
	Path  string
	Owned bool
}

// Release deletes an owned artifact. Safe to call more than once and on
// unowned artifacts, where it does nothing.
func (a *Artifact) Release(ctx context.Context, log logger.Logger) {
	if !a.Owned || a.Path == "" {
		return
	}
	if err := os.Remove(a.Path); err != nil && !os.IsNotExist(err) {
		log.Warn(ctx, "failed to remove temp audio %s: %v", a.Path, err)
	}
	a.Path = ""
}
