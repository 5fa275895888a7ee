package audio

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "long-whisper/internal/app/errors"
	"long-whisper/internal/app/model"
)

func TestExporter_CommandArguments(t *testing.T) {
	tests := []struct {
		name         string
		bitrate      string
		segment      model.Segment
		expectedArgs []string
	}{
		{
			name:    "first segment default bitrate",
			segment: model.Segment{Index: 0, StartMs: 0, EndMs: 600000},
			expectedArgs: []string{
				"-y", "-v", "error",
				"-ss", "0.000",
				"-t", "600.000",
				"-i", "/in/talk.wav",
				"-vn",
				"-acodec", "libmp3lame",
				"/out/talk/talk_segment_0.mp3",
			},
		},
		{
			name:    "short last segment with bitrate",
			bitrate: "64k",
			segment: model.Segment{Index: 2, StartMs: 1200000, EndMs: 1500250},
			expectedArgs: []string{
				"-y", "-v", "error",
				"-ss", "1200.000",
				"-t", "300.250",
				"-i", "/in/talk.wav",
				"-vn",
				"-acodec", "libmp3lame",
				"-b:a", "64k",
				"/out/talk/talk_segment_2.mp3",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &fakeRunner{}
			exporter := NewExporter("", tt.bitrate, runner)
			src := &model.DecodedAudio{Path: "/in/talk.wav", DurationMs: 1500250}

			exported := exporter.Export(context.Background(), src, tt.segment, "/out/talk", "talk")

			require.NoError(t, exported.Err)
			assert.Equal(t, tt.segment, exported.Segment)
			assert.Equal(t, filepath.Join("/out/talk", fmt.Sprintf("talk_segment_%d.mp3", tt.segment.Index)), exported.Path)
			require.Len(t, runner.calls, 1)
			assert.Equal(t, DefaultFFmpegPath, runner.calls[0].Name)
			assert.Equal(t, tt.expectedArgs, runner.calls[0].Args)
		})
	}
}

func TestExporter_FailureIsReported(t *testing.T) {
	runner := &fakeRunner{err: fmt.Errorf("ffmpeg error: exit status 1, stderr: Invalid data found")}
	exporter := NewExporter("ffmpeg", "", runner)

	exported := exporter.Export(context.Background(), &model.DecodedAudio{Path: "/in/a.mp3"},
		model.Segment{Index: 1, StartMs: 600000, EndMs: 700000}, "/out/a", "a")

	require.Error(t, exported.Err)
	assert.True(t, stderrors.Is(exported.Err, apperrors.ErrExportFailed))
	assert.Contains(t, exported.Err.Error(), "Invalid data found")
	assert.Equal(t, "/out/a/a_segment_1.mp3", exported.Path)
}

func TestExporter_ReexportOverwrites(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "a_segment_0.mp3")
	require.NoError(t, os.WriteFile(dst, []byte("stale"), 0644))

	exporter := NewExporter("ffmpeg-custom", "", &fakeRunner{write: true})
	src := &model.DecodedAudio{Path: "/in/a.mp3", DurationMs: 1000}
	seg := model.Segment{Index: 0, StartMs: 0, EndMs: 1000}

	for i := 0; i < 2; i++ {
		exported := exporter.Export(context.Background(), src, seg, dir, "a")
		require.NoError(t, exported.Err)
	}

	content, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "ffmpeg-custom", string(content))
}
