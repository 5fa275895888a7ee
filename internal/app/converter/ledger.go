package converter

import (
	"context"
	"time"

	"go.uber.org/zap"

	"long-whisper/internal/app/model"
)

// The run ledger is a side channel: its failures are logged and never fail a run.

func (c *Converter) startRun(ctx context.Context, logger *zap.Logger, run model.Run) {
	if c.db == nil {
		return
	}
	if err := c.db.CreateRun(ctx, run); err != nil {
		logger.Warn("Failed to record run", zap.Error(err))
	}
}

func (c *Converter) recordSegment(ctx context.Context, logger *zap.Logger, runID string, file model.ExportedFile, entry model.TranscriptEntry) {
	if c.db == nil {
		return
	}
	record := model.SegmentRecord{
		RunID:         runID,
		SegmentIndex:  entry.Index,
		StartMs:       file.Segment.StartMs,
		EndMs:         file.Segment.EndMs,
		FilePath:      file.Path,
		Transcription: entry.Text,
	}
	if entry.Failed() {
		record.HasError = 1
		record.ErrorMessage = entry.Err.Error()
	}
	if err := c.db.RecordSegment(ctx, record); err != nil {
		logger.Warn("Failed to record segment", zap.Int("segment", entry.Index), zap.Error(err))
	}
}

func (c *Converter) finishRun(ctx context.Context, logger *zap.Logger, runID string, segmentCount, failedCount int) {
	if c.db == nil {
		return
	}
	if err := c.db.FinishRun(ctx, runID, segmentCount, failedCount, time.Now()); err != nil {
		logger.Warn("Failed to finish run", zap.Error(err))
	}
}

func (c *Converter) writeMetrics(logger *zap.Logger) {
	if c.options.MetricsFile == "" {
		return
	}
	if err := c.recorder.WriteToFile(c.options.MetricsFile); err != nil {
		logger.Warn("Failed to write metrics", zap.String("path", c.options.MetricsFile), zap.Error(err))
		return
	}
	logger.Debug("Metrics written", zap.String("path", c.options.MetricsFile))
}
