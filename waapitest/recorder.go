package waapitest

import (
	"context"
	"sync"
)

// RecordedCall is one call seen by a Recorder.
type RecordedCall struct {
	URI     string
	Args    map[string]any
	Options map[string]any
}

// Recorder is a fake client handle. It records every call and answers with
// Result and Err.
type Recorder struct {
	Result map[string]any // returned by every call
	Err    error          // returned by every call when non-nil

	mu     sync.Mutex
	calls  []RecordedCall
	closed int
}

func (r *Recorder) Call(ctx context.Context, uri string, args map[string]any, options map[string]any) (map[string]any, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, RecordedCall{URI: uri, Args: args, Options: options})
	if r.Err != nil {
		return nil, r.Err
	}
	return r.Result, nil
}

// Calls returns a copy of the recorded calls.
func (r *Recorder) Calls() []RecordedCall {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]RecordedCall(nil), r.calls...)
}

// Close counts how many times the handle was released.
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed++
	return nil
}

func (r *Recorder) Closed() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}
