package audio

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type nopLogger struct{}

func (nopLogger) Debug(ctx context.Context, msg string, args ...interface{}) {}
func (nopLogger) Info(ctx context.Context, msg string, args ...interface{})  {}
func (nopLogger) Warn(ctx context.Context, msg string, args ...interface{})  {}
func (nopLogger) Error(ctx context.Context, msg string, args ...interface{}) {}

// fakeExecutor records commands and can fail a given invocation. It
// creates the output file (last argument) on success so cleanup paths can
// be observed.
type fakeExecutor struct {
	calls   [][]string
	failOn  int
	created []string
}

func (f *fakeExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	if f.failOn == len(f.calls) {
		return "", errors.New("exit status 1")
	}
	out := args[len(args)-1]
	if err := os.WriteFile(out, []byte("audio"), 0o644); err != nil {
		return "", err
	}
	f.created = append(f.created, out)
	return "", nil
}

func (f *fakeExecutor) ExecuteInDir(ctx context.Context, dir, name string, args ...string) (string, error) {
	return f.Execute(ctx, name, args...)
}

func TestTranscodeRunsTwoStages(t *testing.T) {
	tempDir := t.TempDir()
	exec := &fakeExecutor{}
	p := NewPipeline(exec, tempDir, nopLogger{})

	artifact, err := p.Transcode(context.Background(), "/media/input.mp4")
	if err != nil {
		t.Fatalf("Transcode() error = %v", err)
	}
	defer artifact.Release(context.Background(), nopLogger{})

	if len(exec.calls) != 2 {
		t.Fatalf("got %d ffmpeg calls, want 2", len(exec.calls))
	}

	wavCall := strings.Join(exec.calls[0], " ")
	for _, want := range []string{"ffmpeg -y -i /media/input.mp4 -vn", "-acodec pcm_s16le", "-ar 16000", "-ac 1"} {
		if !strings.Contains(wavCall, want) {
			t.Errorf("wav stage missing %q: %s", want, wavCall)
		}
	}

	mp3Call := strings.Join(exec.calls[1], " ")
	for _, want := range []string{"-ar 8000", "-ac 1", "-b:a 16k"} {
		if !strings.Contains(mp3Call, want) {
			t.Errorf("mp3 stage missing %q: %s", want, mp3Call)
		}
	}

	if !artifact.Owned {
		t.Error("transcoded artifact should be owned")
	}
	if filepath.Ext(artifact.Path) != ".mp3" {
		t.Errorf("artifact path = %q, want .mp3", artifact.Path)
	}
	if _, err := os.Stat(artifact.Path); err != nil {
		t.Errorf("mp3 should exist: %v", err)
	}

	// Intermediate wav must be gone.
	wavPath := exec.calls[0][len(exec.calls[0])-1]
	if _, err := os.Stat(wavPath); !os.IsNotExist(err) {
		t.Errorf("intermediate wav %s should be removed", wavPath)
	}
}

func TestTranscodeFirstStageFailure(t *testing.T) {
	p := NewPipeline(&fakeExecutor{failOn: 1}, t.TempDir(), nopLogger{})
	_, err := p.Transcode(context.Background(), "/media/input.mp4")
	if !errors.Is(err, ErrProcessing) {
		t.Fatalf("err = %v, want ErrProcessing", err)
	}
}

func TestTranscodeSecondStageCleansUp(t *testing.T) {
	tempDir := t.TempDir()
	exec := &fakeExecutor{failOn: 2}
	p := NewPipeline(exec, tempDir, nopLogger{})

	_, err := p.Transcode(context.Background(), "/media/input.mp4")
	if !errors.Is(err, ErrProcessing) {
		t.Fatalf("err = %v, want ErrProcessing", err)
	}

	left, err := os.ReadDir(tempDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(left) != 0 {
		t.Errorf("temp dir should be empty after failure, found %d files", len(left))
	}
}

func TestArtifactReleaseIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clip.mp3")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	a := Artifact{Path: path, Owned: true}
	a.Release(context.Background(), nopLogger{})
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("owned artifact should be deleted")
	}
	a.Release(context.Background(), nopLogger{})
	if a.Path != "" {
		t.Errorf("path should be cleared, got %q", a.Path)
	}
}

func TestArtifactReleaseKeepsUnowned(t *testing.T) {
	path := filepath.Join(t.TempDir(), "user.mp4")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	a := Artifact{Path: path, Owned: false}
	a.Release(context.Background(), nopLogger{})
	if _, err := os.Stat(path); err != nil {
		t.Errorf("unowned file must not be deleted: %v", err)
	}
}
