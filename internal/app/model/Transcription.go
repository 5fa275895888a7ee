package model

import "time"

// Run is one invocation of the pipeline as stored in the run ledger.
type Run struct {
	ID           string
	InputPath    string
	OutputDir    string
	SegmentCount int
	FailedCount  int
	StartedAt    time.Time
	FinishedAt   *time.Time
}

// SegmentRecord is one transcribed segment as stored in the run ledger.
type SegmentRecord struct {
	RunID         string
	SegmentIndex  int
	StartMs       int64
	EndMs         int64
	FilePath      string
	Transcription string
	HasError      int
	ErrorMessage  string
}
