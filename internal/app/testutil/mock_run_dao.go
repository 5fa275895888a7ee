package testutil

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"long-whisper/internal/app/model"
	"long-whisper/internal/app/repository"
)

// MockRunDAO keeps runs and segment records in memory.
// ErrorMap injects a failure per method name, e.g. "RecordSegment".
type MockRunDAO struct {
	mu       sync.Mutex
	runs     map[string]*model.Run
	segments map[string]map[int]model.SegmentRecord

	ErrorMap map[string]error
	Closed   bool
}

func NewMockRunDAO() *MockRunDAO {
	return &MockRunDAO{
		runs:     make(map[string]*model.Run),
		segments: make(map[string]map[int]model.SegmentRecord),
		ErrorMap: make(map[string]error),
	}
}

func (m *MockRunDAO) WithError(method string, err error) *MockRunDAO {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ErrorMap[method] = err
	return m
}

func (m *MockRunDAO) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Closed = true
	return m.ErrorMap["Close"]
}

func (m *MockRunDAO) CreateRun(_ context.Context, run model.Run) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.ErrorMap["CreateRun"]; err != nil {
		return err
	}
	m.runs[run.ID] = &run
	return nil
}

func (m *MockRunDAO) RecordSegment(_ context.Context, record model.SegmentRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.ErrorMap["RecordSegment"]; err != nil {
		return err
	}
	if m.segments[record.RunID] == nil {
		m.segments[record.RunID] = make(map[int]model.SegmentRecord)
	}
	m.segments[record.RunID][record.SegmentIndex] = record
	return nil
}

func (m *MockRunDAO) FinishRun(_ context.Context, runID string, segmentCount, failedCount int, finishedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.ErrorMap["FinishRun"]; err != nil {
		return err
	}
	run, ok := m.runs[runID]
	if !ok {
		return fmt.Errorf("run not found: %s", runID)
	}
	run.SegmentCount = segmentCount
	run.FailedCount = failedCount
	run.FinishedAt = &finishedAt
	return nil
}

func (m *MockRunDAO) GetSegments(_ context.Context, runID string) ([]model.SegmentRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.ErrorMap["GetSegments"]; err != nil {
		return nil, err
	}
	records := make([]model.SegmentRecord, 0, len(m.segments[runID]))
	for _, record := range m.segments[runID] {
		records = append(records, record)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].SegmentIndex < records[j].SegmentIndex
	})
	return records, nil
}

// GetRun returns a copy of the stored run.
func (m *MockRunDAO) GetRun(runID string) (model.Run, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	run, ok := m.runs[runID]
	if !ok {
		return model.Run{}, false
	}
	return *run, true
}

var _ repository.RunDAO = (*MockRunDAO)(nil)
