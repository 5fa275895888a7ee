package testutil

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"long-whisper/internal/app/api"
)

// MockTranscriber is a configurable implementation of api.Transcriber.
// Responses are looked up by base file name, so tests do not depend on temp dirs.
type MockTranscriber struct {
	mock.Mock
	mu sync.Mutex

	DefaultLatency  time.Duration
	DefaultError    error
	DefaultResponse string
	// UseMock routes calls through testify's On/Return expectations.
	UseMock bool

	CallCount   int
	CallHistory []TranscriptionCall
	ErrorMap    map[string]error
	ResponseMap map[string]string
	LatencyMap  map[string]time.Duration

	inFlight      int
	MaxConcurrent int
}

type TranscriptionCall struct {
	InputFilePath string
	Timestamp     time.Time
	Duration      time.Duration
	Response      string
	Error         error
}

func NewMockTranscriber() *MockTranscriber {
	return &MockTranscriber{
		DefaultResponse: "This is a mock transcription result.",
		ErrorMap:        make(map[string]error),
		ResponseMap:     make(map[string]string),
		LatencyMap:      make(map[string]time.Duration),
		CallHistory:     make([]TranscriptionCall, 0),
	}
}

func (m *MockTranscriber) Transcript(ctx context.Context, inputFilePath string) (string, error) {
	if m.UseMock {
		args := m.Called(ctx, inputFilePath)
		return args.String(0), args.Error(1)
	}

	startTime := time.Now()
	name := filepath.Base(inputFilePath)

	m.mu.Lock()
	m.CallCount++
	m.inFlight++
	if m.inFlight > m.MaxConcurrent {
		m.MaxConcurrent = m.inFlight
	}
	latency := m.DefaultLatency
	if l, ok := m.LatencyMap[name]; ok {
		latency = l
	}
	m.mu.Unlock()

	var err error
	if latency > 0 {
		select {
		case <-time.After(latency):
		case <-ctx.Done():
			err = ctx.Err()
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.inFlight--

	response := ""
	if err == nil {
		if mapped, ok := m.ErrorMap[name]; ok {
			err = mapped
		} else if m.DefaultError != nil {
			err = m.DefaultError
		} else if mapped, ok := m.ResponseMap[name]; ok {
			response = mapped
		} else {
			response = m.DefaultResponse
		}
	}

	m.CallHistory = append(m.CallHistory, TranscriptionCall{
		InputFilePath: inputFilePath,
		Timestamp:     startTime,
		Duration:      time.Since(startTime),
		Response:      response,
		Error:         err,
	})
	return response, err
}

func (m *MockTranscriber) WithResponse(fileName, response string) *MockTranscriber {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ResponseMap[fileName] = response
	return m
}

func (m *MockTranscriber) WithError(fileName string, err error) *MockTranscriber {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ErrorMap[fileName] = err
	return m
}

func (m *MockTranscriber) WithLatency(fileName string, latency time.Duration) *MockTranscriber {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LatencyMap[fileName] = latency
	return m
}

func (m *MockTranscriber) GetCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.CallCount
}

// GetCallHistory returns a copy in call order.
func (m *MockTranscriber) GetCallHistory() []TranscriptionCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	history := make([]TranscriptionCall, len(m.CallHistory))
	copy(history, m.CallHistory)
	return history
}

func (m *MockTranscriber) WasCalledWith(fileName string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, call := range m.CallHistory {
		if filepath.Base(call.InputFilePath) == fileName {
			return true
		}
	}
	return false
}

func (m *MockTranscriber) GetMaxConcurrent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.MaxConcurrent
}

var _ api.Transcriber = (*MockTranscriber)(nil)
