package config

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"long-whisper/internal/app/audio"
	apperrors "long-whisper/internal/app/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lw.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 10*time.Minute, cfg.ChunkLength)
	assert.Equal(t, int64(600000), cfg.ChunkLengthMs())
	assert.Equal(t, "whisper-1", cfg.Model)
	assert.Equal(t, 1, cfg.Workers)
	assert.NoError(t, Validate(cfg))
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
chunk_length: 5m
model: gpt-4o-mini-transcribe
language: de
base_url: http://localhost:8080/v1
workers: 4
bitrate: 64k
request_timeout: 2m
record_db: runs.db
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 5*time.Minute, cfg.ChunkLength)
	assert.Equal(t, "gpt-4o-mini-transcribe", cfg.Model)
	assert.Equal(t, "de", cfg.Language)
	assert.Equal(t, "http://localhost:8080/v1", cfg.BaseURL)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, "64k", cfg.Bitrate)
	assert.Equal(t, 2*time.Minute, cfg.RequestTimeout)
	assert.Equal(t, "runs.db", cfg.RecordDB)
	// untouched keys keep their defaults
	assert.Equal(t, audio.DefaultFFmpegPath, cfg.FFmpegPath)
	assert.Equal(t, audio.DefaultFFprobePath, cfg.FFprobePath)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name          string
		content       string
		errorContains string
	}{
		{name: "malformed yaml", content: "workers: [", errorContains: "failed to parse YAML"},
		{name: "bad duration", content: "chunk_length: ten minutes", errorContains: "failed to parse YAML"},
		{name: "too many workers", content: "workers: 64", errorContains: "workers must be at most 32"},
		{name: "chunk too short", content: "chunk_length: 500ms", errorContains: "chunklength must be at least 1s"},
		{name: "empty model", content: `model: ""`, errorContains: "model is required"},
		{name: "bad url", content: "base_url: not a url", errorContains: "baseurl must be a valid URL"},
		{name: "huge timeout", content: "request_timeout: 2h", errorContains: "timeout too large"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.True(t, stderrors.Is(err, apperrors.ErrInvalidConfig))
			assert.Contains(t, err.Error(), tt.errorContains)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, apperrors.ErrInvalidConfig))
}
