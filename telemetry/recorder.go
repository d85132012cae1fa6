package telemetry

import (
	"context"
	"errors"
	"sync"
)

// Recorder persists samples
type Recorder interface {
	Record(ctx context.Context, s Sample) error
	Close() error
}

// Memory keeps every sample in a slice
type Memory struct {
	mu      sync.Mutex
	samples []Sample
}

func NewMemory() *Memory { return &Memory{} }

func (m *Memory) Record(_ context.Context, s Sample) error {
	m.mu.Lock()
	m.samples = append(m.samples, s)
	m.mu.Unlock()
	return nil
}

// Samples returns a copy of everything recorded
func (m *Memory) Samples() []Sample {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Sample, len(m.samples))
	copy(out, m.samples)
	return out
}

func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.samples)
}

func (m *Memory) Close() error { return nil }

// Nop discards samples
type Nop struct{}

func (Nop) Record(context.Context, Sample) error { return nil }
func (Nop) Close() error                         { return nil }

type multi []Recorder

// Multi fans every sample out to all recorders
func Multi(recs ...Recorder) Recorder {
	return multi(recs)
}

func (m multi) Record(ctx context.Context, s Sample) error {
	var errs []error
	for _, r := range m {
		if err := r.Record(ctx, s); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m multi) Close() error {
	var errs []error
	for _, r := range m {
		if err := r.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
