package audio

import (
	"context"
	"path/filepath"
	"strconv"

	apperrors "long-whisper/internal/app/errors"
	"long-whisper/internal/app/model"
	"long-whisper/internal/app/util/files"
)

const DefaultFFmpegPath = "ffmpeg"

// Exporter encodes segments of a source file to MP3 with ffmpeg.
type Exporter struct {
	ffmpegPath string
	bitrate    string
	cmd        CommandRunner
}

// NewExporter creates an Exporter. An empty bitrate keeps the libmp3lame default.
func NewExporter(ffmpegPath string, bitrate string, runner CommandRunner) *Exporter {
	if ffmpegPath == "" {
		ffmpegPath = DefaultFFmpegPath
	}
	if runner == nil {
		runner = NewExecRunner()
	}
	return &Exporter{ffmpegPath: ffmpegPath, bitrate: bitrate, cmd: runner}
}

// Export writes seg of src to dir/{basename}_segment_{index}.mp3, replacing any
// existing file. Failures are reported in the returned ExportedFile.
func (e *Exporter) Export(ctx context.Context, src *model.DecodedAudio, seg model.Segment, dir string, basename string) model.ExportedFile {
	dst := filepath.Join(dir, files.SegmentFileName(basename, seg.Index))

	if err := e.cmd.Run(ctx, e.ffmpegPath, e.args(src.Path, seg, dst)...); err != nil {
		return model.ExportedFile{Segment: seg, Path: dst, Err: apperrors.Mark(err, apperrors.ErrExportFailed)}
	}
	return model.ExportedFile{Segment: seg, Path: dst}
}

func (e *Exporter) args(src string, seg model.Segment, dst string) []string {
	args := []string{
		"-y", "-v", "error",
		"-ss", msToSeconds(seg.StartMs),
		"-t", msToSeconds(seg.EndMs - seg.StartMs),
		"-i", src,
		"-vn",
		"-acodec", "libmp3lame",
	}
	if e.bitrate != "" {
		args = append(args, "-b:a", e.bitrate)
	}
	return append(args, dst)
}

func msToSeconds(ms int64) string {
	return strconv.FormatFloat(float64(ms)/1000, 'f', 3, 64)
}
