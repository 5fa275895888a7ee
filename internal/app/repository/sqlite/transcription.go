package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"long-whisper/internal/app/model"
	"long-whisper/internal/app/repository"
)

type SQLiteDB struct {
	db *sql.DB
}

var _ repository.RunDAO = (*SQLiteDB)(nil)

// NewSQLiteDB wraps an already opened database.
func NewSQLiteDB(db *sql.DB) *SQLiteDB {
	return &SQLiteDB{db: db}
}

func (sdb *SQLiteDB) Close() error {
	return sdb.db.Close()
}

func (sdb *SQLiteDB) CreateRun(ctx context.Context, run model.Run) error {
	insertSQL := `INSERT INTO runs (id, input_path, output_dir, started_at) VALUES (?, ?, ?, ?);`
	_, err := sdb.db.ExecContext(ctx, insertSQL, run.ID, run.InputPath, run.OutputDir, run.StartedAt)
	if err != nil {
		return fmt.Errorf("insert run failed: %w", err)
	}
	return nil
}

func (sdb *SQLiteDB) RecordSegment(ctx context.Context, record model.SegmentRecord) error {
	insertSQL := `INSERT OR REPLACE INTO segments
		(run_id, segment_index, start_ms, end_ms, file_path, transcription, has_error, error_message)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?);`
	_, err := sdb.db.ExecContext(ctx, insertSQL, record.RunID, record.SegmentIndex, record.StartMs, record.EndMs,
		record.FilePath, record.Transcription, record.HasError, record.ErrorMessage)
	if err != nil {
		return fmt.Errorf("insert segment failed: %w", err)
	}
	return nil
}

func (sdb *SQLiteDB) FinishRun(ctx context.Context, runID string, segmentCount, failedCount int, finishedAt time.Time) error {
	updateSQL := `UPDATE runs SET segment_count = ?, failed_count = ?, finished_at = ? WHERE id = ?;`
	result, err := sdb.db.ExecContext(ctx, updateSQL, segmentCount, failedCount, finishedAt, runID)
	if err != nil {
		return fmt.Errorf("update run failed: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update run failed: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("run not found: %s", runID)
	}
	return nil
}

func (sdb *SQLiteDB) GetSegments(ctx context.Context, runID string) ([]model.SegmentRecord, error) {
	sqlStr := `
		SELECT run_id, segment_index, start_ms, end_ms, file_path, transcription, has_error, error_message
		FROM segments
		WHERE run_id = ?
		ORDER BY segment_index;`
	rows, err := sdb.db.QueryContext(ctx, sqlStr, runID)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	records := make([]model.SegmentRecord, 0)
	for rows.Next() {
		var r model.SegmentRecord
		err = rows.Scan(&r.RunID, &r.SegmentIndex, &r.StartMs, &r.EndMs, &r.FilePath, &r.Transcription, &r.HasError, &r.ErrorMessage)
		if err != nil {
			return nil, fmt.Errorf("db scan failed: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
