package delog

import (
	"strings"
	"sync"
)

// recordingFlusher keeps a private copy of everything it is handed.
type recordingFlusher struct {
	mu    sync.Mutex
	calls []string
}

func (f *recordingFlusher) Flush(logs string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, strings.Clone(logs))
}

func (f *recordingFlusher) all() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return strings.Join(f.calls, "")
}

func (f *recordingFlusher) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}
