package cmd

import (
	"bytes"
	"context"
	"strings"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"long-whisper/internal/app/audio"
	apperrors "long-whisper/internal/app/errors"
	"long-whisper/internal/config"
)

const ffprobeOutput = `{
  "streams": [{"codec_type": "audio", "codec_name": "mp3", "sample_rate": "44100", "channels": 2}],
  "format": {"format_name": "mp3", "duration": "1500.000000"}
}`

// stubRunner answers ffprobe with a fixed payload and fails any ffmpeg call.
type stubRunner struct {
	output []byte
	calls  []string
}

func (r *stubRunner) Output(_ context.Context, name string, args ...string) ([]byte, error) {
	r.calls = append(r.calls, name+" "+strings.Join(args, " "))
	return r.output, nil
}

func (r *stubRunner) Run(_ context.Context, name string, args ...string) error {
	r.calls = append(r.calls, name+" "+strings.Join(args, " "))
	return assert.AnError
}

func useRunner(t *testing.T, runner audio.CommandRunner) {
	t.Helper()
	original := newRunner
	newRunner = func() audio.CommandRunner { return runner }
	t.Cleanup(func() { newRunner = original })
}

func observeLogs(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	original := newLogger
	newLogger = func(bool) (*zap.Logger, error) {
		return zap.New(core), nil
	}
	t.Cleanup(func() { newLogger = original })
	return logs
}

// chdirTemp runs the test from an empty directory so output directories can be checked.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(wd) })
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	err := execute(root, args)
	return out.String(), err
}

func TestRoot_MissingArgument(t *testing.T) {
	logs := observeLogs(t)
	dir := chdirTemp(t)

	_, err := run(t)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrMissingInput)
	assert.Equal(t, 1, logs.FilterMessage(missingInputMessage).Len())
	assert.Equal(t, 1, logs.Len())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRoot_TooManyArguments(t *testing.T) {
	logs := observeLogs(t)

	_, err := run(t, "a.mp3", "b.mp3")
	require.Error(t, err)

	entries := logs.FilterMessage("Invalid command line").All()
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].ContextMap()["error"], "accepts at most 1 arg(s)")
}

func TestRoot_UnknownFlag(t *testing.T) {
	logs := observeLogs(t)

	_, err := run(t, "--no-such-flag", "a.mp3")
	require.Error(t, err)

	entries := logs.FilterMessage("Invalid command line").All()
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].ContextMap()["error"], "unknown flag: --no-such-flag")
}

func TestRoot_MissingFileCreatesNothing(t *testing.T) {
	logs := observeLogs(t)
	dir := chdirTemp(t)
	t.Setenv(config.EnvAPIKey, "sk-test")

	_, err := run(t, filepath.Join(dir, "nope.mp3"))
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrDecodeFailed)
	assert.Equal(t, 1, logs.FilterMessage("Failed to load audio file").Len())

	assert.NoDirExists(t, filepath.Join(dir, "nope"))
}

func TestRoot_MissingAPIKey(t *testing.T) {
	observeLogs(t)
	chdirTemp(t)
	t.Setenv(config.EnvAPIKey, "")

	_, err := run(t, "lecture.mp3")
	assert.ErrorIs(t, err, apperrors.ErrMissingAPIKey)
}

func TestRoot_InvalidWorkers(t *testing.T) {
	observeLogs(t)
	t.Setenv(config.EnvAPIKey, "sk-test")

	_, err := run(t, "--workers", "0", "lecture.mp3")
	assert.ErrorIs(t, err, apperrors.ErrInvalidConfig)
}

func TestResolveConfig_FlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lw.yaml")
	require.NoError(t, os.WriteFile(path, []byte("model: whisper-large-v3\nworkers: 2\nlanguage: de\n"), 0644))

	root := NewRootCmd()
	require.NoError(t, root.ParseFlags([]string{"--config", path, "--workers", "4", "--chunk-length", "5m"}))

	f := &flags{}
	// flags are bound to the closure inside NewRootCmd, so read them back through cobra
	f.configPath, _ = root.Flags().GetString("config")
	f.workers, _ = root.Flags().GetInt("workers")
	f.chunkLength, _ = root.Flags().GetDuration("chunk-length")

	cfg, err := f.resolveConfig(root)
	require.NoError(t, err)
	assert.Equal(t, "whisper-large-v3", cfg.Model)
	assert.Equal(t, "de", cfg.Language)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, int64(300_000), cfg.ChunkLengthMs())
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "v0.1.0")
}

func TestPlan_MissingArgument(t *testing.T) {
	logs := observeLogs(t)

	_, err := run(t, "plan")
	assert.ErrorIs(t, err, apperrors.ErrMissingInput)
	assert.Equal(t, 1, logs.FilterMessage(missingInputMessage).Len())
}

func TestPlan_PrintsSegments(t *testing.T) {
	observeLogs(t)
	dir := chdirTemp(t)
	runner := &stubRunner{output: []byte(ffprobeOutput)}
	useRunner(t, runner)

	input := filepath.Join(t.TempDir(), "lecture.mp3")
	require.NoError(t, os.WriteFile(input, []byte("mp3"), 0644))

	out, err := run(t, "plan", input)
	require.NoError(t, err)

	assert.Contains(t, out, "25m0s, 3 segment(s)")
	assert.Contains(t, out, "lecture/lecture_segment_0.mp3")
	assert.Contains(t, out, "segment 0 [0, 600000) 10m0s")
	assert.Contains(t, out, "segment 1 [600000, 1200000) 10m0s")
	assert.Contains(t, out, "segment 2 [1200000, 1500000) 5m0s")
	assert.Contains(t, out, "lecture/lecture_transcript.txt")
	assert.NotContains(t, out, "lecture_segment_3.mp3")

	// only ffprobe ran; nothing was exported
	require.Len(t, runner.calls, 1)
	assert.True(t, strings.HasPrefix(runner.calls[0], "ffprobe "))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestPlan_ChunkLengthFlag(t *testing.T) {
	observeLogs(t)
	useRunner(t, &stubRunner{output: []byte(ffprobeOutput)})

	input := filepath.Join(t.TempDir(), "lecture.mp3")
	require.NoError(t, os.WriteFile(input, []byte("mp3"), 0644))

	out, err := run(t, "plan", "--chunk-length", "20m", input)
	require.NoError(t, err)

	assert.Contains(t, out, "2 segment(s)")
	assert.Contains(t, out, "segment 1 [1200000, 1500000) 5m0s")
}

func TestPlan_DecodeFailure(t *testing.T) {
	logs := observeLogs(t)
	useRunner(t, &stubRunner{output: []byte(`{"streams": [], "format": {}}`)})

	input := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(input, []byte("text"), 0644))

	_, err := run(t, "plan", input)
	assert.ErrorIs(t, err, apperrors.ErrDecodeFailed)
	assert.Equal(t, 1, logs.FilterMessage("Failed to load audio file").Len())
	assert.Equal(t, 0, logs.FilterMessage("Invalid command line").Len())
}
