package source

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/martinopiaggi/summarize/internal/audio"
)

// fileStrategy serves local files and files under a cloud-drive mount.
// The returned artifact is unowned: the user's file stays in place.
type fileStrategy struct {
	driveMountDir string
}

func (s *fileStrategy) Match(desc Descriptor) bool {
	return desc.Kind == KindLocalFile || desc.Kind == KindGoogleDrive
}

func (s *fileStrategy) Acquire(ctx context.Context, desc Descriptor) (audio.Artifact, error) {
	path := desc.Locator
	if desc.Kind == KindGoogleDrive {
		if s.driveMountDir == "" {
			return audio.Artifact{}, errors.New("drive_mount_dir is not configured")
		}
		if !strings.HasPrefix(path, s.driveMountDir) {
			path = filepath.Join(s.driveMountDir, path)
		}
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return audio.Artifact{}, errors.Wrapf(ErrSourceNotFound, "%s", path)
		}
		return audio.Artifact{}, errors.Wrap(err, "stat source file")
	}
	return audio.Artifact{Path: path, Owned: false}, nil
}
