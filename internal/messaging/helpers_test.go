package messaging

import (
	"context"
	"fmt"
	"sync"
)

// fakeSender records every send and fails for numbers listed in failFor.
type fakeSender struct {
	mu      sync.Mutex
	sent    []string
	failFor map[string]error
}

func (f *fakeSender) Name() string { return "fake" }

func (f *fakeSender) Send(_ context.Context, to, _ string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, to)
	if err, ok := f.failFor[to]; ok {
		return "", err
	}
	return fmt.Sprintf("SM%03d", len(f.sent)), nil
}

type recordingObserver struct {
	mu     sync.Mutex
	events []string
}

func (r *recordingObserver) ObserveSMS(provider, status string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, provider+":"+status)
}
