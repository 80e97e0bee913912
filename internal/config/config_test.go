package config

import (
	"os"
	"testing"
)

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := Default()
		cfg.API.BaseURL = "https://api.deepseek.com/v1"
		cfg.API.Model = "deepseek-chat"
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:   "valid config",
			mutate: func(c *Config) {},
		},
		{
			name:    "missing base url",
			mutate:  func(c *Config) { c.API.BaseURL = "" },
			wantErr: true,
		},
		{
			name:    "missing model",
			mutate:  func(c *Config) { c.API.Model = "" },
			wantErr: true,
		},
		{
			name:    "parallel calls too low",
			mutate:  func(c *Config) { c.API.ParallelCalls = 0 },
			wantErr: true,
		},
		{
			name:    "parallel calls too high",
			mutate:  func(c *Config) { c.API.ParallelCalls = 101 },
			wantErr: true,
		},
		{
			name:   "parallel calls at upper bound",
			mutate: func(c *Config) { c.API.ParallelCalls = 100 },
		},
		{
			name:    "chunk size below minimum",
			mutate:  func(c *Config) { c.Chunking.Size = 499 },
			wantErr: true,
		},
		{
			name:    "unknown transcription method",
			mutate:  func(c *Config) { c.Source.Transcription = "remote" },
			wantErr: true,
		},
		{
			name: "local transcription requires whisper binary",
			mutate: func(c *Config) {
				c.Source.Transcription = "local"
				c.Whisper.BinaryPath = ""
				c.Whisper.ModelDir = "models"
			},
			wantErr: true,
		},
		{
			name: "local transcription fully configured",
			mutate: func(c *Config) {
				c.Source.Transcription = "local"
				c.Whisper.BinaryPath = "./whisper-cli"
				c.Whisper.ModelDir = "models"
			},
		},
		{
			name:    "unknown output format",
			mutate:  func(c *Config) { c.Output.Format = "pdf" },
			wantErr: true,
		},
		{
			name:    "watch concurrency below minimum",
			mutate:  func(c *Config) { c.Watch.MaxConcurrent = 0 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "config-*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())

	content := `
api:
  base_url: "https://api.deepseek.com/v1"
  model: "deepseek-chat"
  parallel_calls: 10

source:
  language: "en"
  transcription: "cloud"

chunking:
  size: 8000
  prompt_type: "Summarization"

output:
  dir: "out"

watch:
  max_concurrent: 3
`

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpfile.Name())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.API.BaseURL != "https://api.deepseek.com/v1" {
		t.Errorf("BaseURL = %v, want %v", cfg.API.BaseURL, "https://api.deepseek.com/v1")
	}
	if cfg.Chunking.Size != 8000 {
		t.Errorf("Chunking.Size = %v, want 8000", cfg.Chunking.Size)
	}
	if cfg.Watch.MaxConcurrent != 3 {
		t.Errorf("Watch.MaxConcurrent = %v, want 3", cfg.Watch.MaxConcurrent)
	}

	// Defaults survive a partial file
	if !cfg.Source.UseYouTubeCaptions {
		t.Error("UseYouTubeCaptions default should remain true")
	}
	if cfg.API.RetryAttempts != 3 {
		t.Errorf("RetryAttempts = %v, want default 3", cfg.API.RetryAttempts)
	}
	if cfg.Output.Format != "md" {
		t.Errorf("Output.Format = %v, want default md", cfg.Output.Format)
	}
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := Load("nonexistent.yaml")
	if err == nil {
		t.Error("Load() should return error for nonexistent file")
	}
}
