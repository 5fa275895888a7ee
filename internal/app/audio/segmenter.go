package audio

import (
	"time"

	"long-whisper/internal/app/model"
)

// DefaultChunkLength is the length of every segment except possibly the last.
const DefaultChunkLength = 10 * time.Minute

// Split partitions [0, durationMs) into consecutive segments of chunkMs.
// The last segment may be shorter. A non-positive duration yields no segments
// and a non-positive chunk length falls back to DefaultChunkLength.
func Split(durationMs int64, chunkMs int64) []model.Segment {
	if durationMs <= 0 {
		return nil
	}
	if chunkMs <= 0 {
		chunkMs = DefaultChunkLength.Milliseconds()
	}

	segments := make([]model.Segment, 0, (durationMs+chunkMs-1)/chunkMs)
	for offset, index := int64(0), 0; offset < durationMs; offset, index = offset+chunkMs, index+1 {
		segments = append(segments, model.Segment{
			Index:   index,
			StartMs: offset,
			EndMs:   min(offset+chunkMs, durationMs),
		})
	}
	return segments
}
