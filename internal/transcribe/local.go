package transcribe

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/martinopiaggi/summarize/internal/config"
	"github.com/martinopiaggi/summarize/internal/logger"
	"github.com/martinopiaggi/summarize/internal/segment"
	"github.com/martinopiaggi/summarize/pkg/executor"
)

// implLocal shells out to whisper.cpp and reads its JSON output file.
type implLocal struct {
	binaryPath string
	modelPath  string
	language   string
	threads    int
	useGPU     bool
	tempDir    string
	exec       executor.Executor
	logger     logger.Logger
}

func newLocal(cfg *config.Config, exec executor.Executor, log logger.Logger) *implLocal {
	return &implLocal{
		binaryPath: cfg.Whisper.BinaryPath,
		modelPath:  filepath.Join(cfg.Whisper.ModelDir, "ggml-"+cfg.Whisper.Model+".bin"),
		language:   cfg.Source.Language,
		threads:    cfg.Whisper.Threads,
		useGPU:     cfg.Whisper.UseGPU,
		tempDir:    cfg.Paths.Temp,
		exec:       exec,
		logger:     log,
	}
}

// whisperOutput mirrors the -oj output file: one entry per segment with
// millisecond offsets.
type whisperOutput struct {
	Transcription []struct {
		Offsets struct {
			From int64 `json:"from"`
		} `json:"offsets"`
		Text string `json:"text"`
	} `json:"transcription"`
}

func (l *implLocal) Transcribe(ctx context.Context, audioPath string) (string, error) {
	outputPrefix := filepath.Join(l.tempDir, uuid.NewString())

	args := []string{
		"-m", l.modelPath,
		"-f", audioPath,
		"-oj",
		"-l", l.language,
		"-t", strconv.Itoa(l.threads),
		"--output-file", outputPrefix,
	}
	if !l.useGPU {
		args = append(args, "-ng")
	}

	l.logger.Info(ctx, "transcribing %s with %d threads", filepath.Base(audioPath), l.threads)
	if _, err := l.exec.Execute(ctx, l.binaryPath, args...); err != nil {
		return "", errors.Wrap(err, "whisper transcribe")
	}

	jsonPath := outputPrefix + ".json"
	defer os.Remove(jsonPath)

	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return "", errors.Wrap(err, "read whisper output")
	}

	var out whisperOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return "", errors.Wrap(err, "parse whisper output")
	}
	if len(out.Transcription) == 0 {
		return "", errors.New("whisper produced no segments")
	}

	var b strings.Builder
	for _, seg := range out.Transcription {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}
		b.WriteString(segment.FormatTimestamp(float64(seg.Offsets.From) / 1000))
		b.WriteString(" ")
		b.WriteString(text)
		b.WriteString("\n")
	}
	return b.String(), nil
}
