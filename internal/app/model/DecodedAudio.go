package model

import "time"

// DecodedAudio is a probed source file that can be sliced by time range.
type DecodedAudio struct {
	Path       string
	DurationMs int64
	Codec      string
	SampleRate int
	Channels   int
}

func (a *DecodedAudio) Duration() time.Duration {
	return time.Duration(a.DurationMs) * time.Millisecond
}
