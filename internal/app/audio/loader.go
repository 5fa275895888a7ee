package audio

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	apperrors "long-whisper/internal/app/errors"
	"long-whisper/internal/app/model"
)

const DefaultFFprobePath = "ffprobe"

// Loader probes input files with ffprobe.
type Loader struct {
	ffprobePath string
	cmd         CommandRunner
}

func NewLoader(ffprobePath string, runner CommandRunner) *Loader {
	if ffprobePath == "" {
		ffprobePath = DefaultFFprobePath
	}
	if runner == nil {
		runner = NewExecRunner()
	}
	return &Loader{ffprobePath: ffprobePath, cmd: runner}
}

// Load reads the container and stream metadata of path. Every failure is
// marked with ErrDecodeFailed.
func (l *Loader) Load(ctx context.Context, path string) (*model.DecodedAudio, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, apperrors.Mark(err, apperrors.ErrDecodeFailed)
	}
	if info.IsDir() {
		return nil, apperrors.Mark(fmt.Errorf("%s is a directory", path), apperrors.ErrDecodeFailed)
	}

	output, err := l.cmd.Output(ctx, l.ffprobePath,
		"-v", "quiet", "-print_format", "json", "-show_streams", "-show_format", path)
	if err != nil {
		return nil, apperrors.Mark(err, apperrors.ErrDecodeFailed)
	}

	audio, err := parseProbeOutput(output)
	if err != nil {
		return nil, apperrors.Mark(err, apperrors.ErrDecodeFailed)
	}
	audio.Path = path
	return audio, nil
}

func parseProbeOutput(output []byte) (*model.DecodedAudio, error) {
	var probe model.FFProbeOutput
	if err := json.Unmarshal(output, &probe); err != nil {
		return nil, fmt.Errorf("unreadable ffprobe output: %w", err)
	}

	audio := &model.DecodedAudio{}
	found := false
	for _, stream := range probe.Streams {
		if stream.CodecType == "audio" {
			audio.Codec = stream.CodecName
			audio.SampleRate = stream.SampleRate
			audio.Channels = stream.Channels
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("no audio stream found")
	}

	raw := strings.TrimSpace(probe.Format.Duration)
	if raw == "" || raw == "N/A" {
		return nil, fmt.Errorf("duration not reported")
	}
	seconds, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	if seconds < 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return nil, fmt.Errorf("invalid duration %q", raw)
	}
	audio.DurationMs = int64(math.Round(seconds * 1000))
	return audio, nil
}
