package repository

import (
	"context"
	"time"

	"long-whisper/internal/app/model"
)

// RunDAO stores pipeline runs and their per-segment outcomes.
type RunDAO interface {
	Close() error

	CreateRun(ctx context.Context, run model.Run) error

	RecordSegment(ctx context.Context, record model.SegmentRecord) error

	FinishRun(ctx context.Context, runID string, segmentCount, failedCount int, finishedAt time.Time) error

	GetSegments(ctx context.Context, runID string) ([]model.SegmentRecord, error)
}
