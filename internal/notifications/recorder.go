package notifications

import (
	"context"
	"sync"
)

// Recorder is a Service for tests that remembers what was sent.
type Recorder struct {
	mu      sync.Mutex
	Changed []string
	Errors  []string
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) WallpaperChanged(_ context.Context, path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Changed = append(r.Changed, path)
	return nil
}

func (r *Recorder) Error(_ context.Context, summary, _ string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Errors = append(r.Errors, summary)
	return nil
}
