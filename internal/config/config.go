package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type Config struct {
	API      APIConfig      `yaml:"api"`
	Source   SourceConfig   `yaml:"source"`
	Chunking ChunkingConfig `yaml:"chunking"`
	Whisper  WhisperConfig  `yaml:"whisper"`
	Cobalt   CobaltConfig   `yaml:"cobalt"`
	Output   OutputConfig   `yaml:"output"`
	Cache    CacheConfig    `yaml:"cache"`
	Watch    WatchConfig    `yaml:"watch"`
	Paths    PathsConfig    `yaml:"paths"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type APIConfig struct {
	BaseURL           string  `yaml:"base_url"`
	Key               string  `yaml:"key"`
	Model             string  `yaml:"model"`
	MaxOutputTokens   int     `yaml:"max_output_tokens"`
	ParallelCalls     int     `yaml:"parallel_calls"`
	RetryAttempts     int     `yaml:"retry_attempts"`
	RequestsPerSecond float64 `yaml:"requests_per_second"`
}

type SourceConfig struct {
	UseYouTubeCaptions bool   `yaml:"use_youtube_captions"`
	Language           string `yaml:"language"`
	Transcription      string `yaml:"transcription"` // "cloud" or "local"
	DriveMountDir      string `yaml:"drive_mount_dir"`
	YtDlpPath          string `yaml:"yt_dlp_path"`
}

type ChunkingConfig struct {
	Size       int    `yaml:"size"`
	PromptType string `yaml:"prompt_type"`
}

type WhisperConfig struct {
	BinaryPath string `yaml:"binary_path"`
	ModelDir   string `yaml:"model_dir"`
	Model      string `yaml:"model"` // size tier: tiny, base, small, medium, large
	Threads    int    `yaml:"threads"`
	UseGPU     bool   `yaml:"use_gpu"`
}

type CobaltConfig struct {
	BaseURL string `yaml:"base_url"`
}

type OutputConfig struct {
	Dir       string `yaml:"dir"`
	Format    string `yaml:"format"` // "md" or "docx"
	Clipboard bool   `yaml:"clipboard"`
}

type CacheConfig struct {
	Path string `yaml:"path"` // empty disables the transcript cache
}

type WatchConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"` // files processed at once in watch mode
}

type PathsConfig struct {
	Temp string `yaml:"temp"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Default returns the configuration used when no config file overrides it.
func Default() *Config {
	return &Config{
		API: APIConfig{
			MaxOutputTokens: 4096,
			ParallelCalls:   30,
			RetryAttempts:   3,
		},
		Source: SourceConfig{
			UseYouTubeCaptions: true,
			Language:           "auto",
			Transcription:      "cloud",
			YtDlpPath:          "yt-dlp",
		},
		Chunking: ChunkingConfig{
			Size:       10000,
			PromptType: "Questions and answers",
		},
		Whisper: WhisperConfig{
			Model:   "base",
			Threads: 4,
		},
		Cobalt: CobaltConfig{
			BaseURL: "http://localhost:9000",
		},
		Output: OutputConfig{
			Dir:    "summaries",
			Format: "md",
		},
		Watch: WatchConfig{
			MaxConcurrent: 1,
		},
		Paths: PathsConfig{
			Temp: os.TempDir(),
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads a YAML config file over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read config file %s", path)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parse config file %s", path)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return errors.New("api.base_url is required")
	}
	if c.API.Model == "" {
		return errors.New("api.model is required")
	}
	if c.API.ParallelCalls < 1 || c.API.ParallelCalls > 100 {
		return errors.Errorf("api.parallel_calls must be between 1 and 100, got %d", c.API.ParallelCalls)
	}
	if c.API.RetryAttempts < 1 {
		return errors.Errorf("api.retry_attempts must be at least 1, got %d", c.API.RetryAttempts)
	}
	if c.Chunking.Size < 500 {
		return errors.Errorf("chunking.size must be at least 500 characters, got %d", c.Chunking.Size)
	}
	switch c.Source.Transcription {
	case "cloud", "local":
	default:
		return errors.Errorf("source.transcription must be \"cloud\" or \"local\", got %q", c.Source.Transcription)
	}
	if c.Source.Transcription == "local" {
		if c.Whisper.BinaryPath == "" {
			return errors.New("whisper.binary_path is required for local transcription")
		}
		if c.Whisper.ModelDir == "" {
			return errors.New("whisper.model_dir is required for local transcription")
		}
	}
	switch c.Output.Format {
	case "md", "docx":
	default:
		return errors.Errorf("output.format must be \"md\" or \"docx\", got %q", c.Output.Format)
	}
	if c.Watch.MaxConcurrent < 1 {
		return errors.Errorf("watch.max_concurrent must be at least 1, got %d", c.Watch.MaxConcurrent)
	}

	if c.Paths.Temp == "" {
		c.Paths.Temp = os.TempDir()
	}

	return nil
}
