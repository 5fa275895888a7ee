package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"long-whisper/internal/app/audio"
	apperrors "long-whisper/internal/app/errors"
)

const (
	DefaultModel   = "whisper-1"
	DefaultWorkers = 1
)

// Config drives one pipeline run. Durations use Go syntax ("10m", "90s").
type Config struct {
	ChunkLength    time.Duration `yaml:"chunk_length" validate:"min=1s"`
	Model          string        `yaml:"model" validate:"required"`
	Language       string        `yaml:"language,omitempty"`
	Prompt         string        `yaml:"prompt,omitempty"`
	BaseURL        string        `yaml:"base_url,omitempty" validate:"omitempty,url"`
	Workers        int           `yaml:"workers" validate:"min=1,max=32"`
	Bitrate        string        `yaml:"bitrate,omitempty"`
	RequestTimeout time.Duration `yaml:"request_timeout,omitempty"`
	FFmpegPath     string        `yaml:"ffmpeg_path" validate:"required"`
	FFprobePath    string        `yaml:"ffprobe_path" validate:"required"`
	RecordDB       string        `yaml:"record_db,omitempty"`
	MetricsFile    string        `yaml:"metrics_file,omitempty"`
	// Progress forces progress bars even when stderr is not a terminal.
	Progress bool `yaml:"progress,omitempty"`

	// APIKey comes from the environment only.
	APIKey string `yaml:"-"`
}

// Default returns the configuration used when no file or flag overrides it.
func Default() *Config {
	return &Config{
		ChunkLength: audio.DefaultChunkLength,
		Model:       DefaultModel,
		Workers:     DefaultWorkers,
		FFmpegPath:  audio.DefaultFFmpegPath,
		FFprobePath: audio.DefaultFFprobePath,
	}
}

// Load reads a YAML file on top of the defaults and validates the result.
func Load(configPath string) (*Config, error) {
	configPath = os.ExpandEnv(configPath)

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, apperrors.Mark(fmt.Errorf("failed to read config file: %w", err), apperrors.ErrInvalidConfig)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, apperrors.Mark(fmt.Errorf("failed to parse YAML: %w", err), apperrors.ErrInvalidConfig)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ChunkLengthMs returns the chunk length in milliseconds.
func (c *Config) ChunkLengthMs() int64 {
	return c.ChunkLength.Milliseconds()
}
