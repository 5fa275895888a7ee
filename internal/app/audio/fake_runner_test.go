package audio

import (
	"context"
	"os"
	"sync"
)

type fakeCall struct {
	Name string
	Args []string
}

// fakeRunner records invocations instead of starting processes.
type fakeRunner struct {
	mu     sync.Mutex
	calls  []fakeCall
	output []byte
	err    error
	// write makes Run create the last argument as a file, like ffmpeg does.
	write bool
}

func (f *fakeRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	f.record(name, args)
	if f.err != nil {
		return nil, f.err
	}
	return f.output, nil
}

func (f *fakeRunner) Run(ctx context.Context, name string, args ...string) error {
	f.record(name, args)
	if f.err != nil {
		return f.err
	}
	if f.write && len(args) > 0 {
		return os.WriteFile(args[len(args)-1], []byte(name), 0644)
	}
	return nil
}

func (f *fakeRunner) record(name string, args []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, fakeCall{Name: name, Args: append([]string(nil), args...)})
}
