package model

import (
	"fmt"
	"time"
)

// Segment is the half-open range [StartMs, EndMs) of the source audio.
type Segment struct {
	Index   int
	StartMs int64
	EndMs   int64
}

func (s Segment) Duration() time.Duration {
	return time.Duration(s.EndMs-s.StartMs) * time.Millisecond
}

func (s Segment) String() string {
	return fmt.Sprintf("segment %d [%d, %d)", s.Index, s.StartMs, s.EndMs)
}

// ExportedFile is the on-disk MP3 of one segment. Err is set when the export failed.
type ExportedFile struct {
	Segment Segment
	Path    string
	Err     error
}
