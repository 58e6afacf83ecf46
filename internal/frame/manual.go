package frame

import (
	"context"
	"sync"
)

// Manual is a Scheduler that only runs frames when Step is called.
// Start records fn and returns immediately.
type Manual struct {
	mu      sync.Mutex
	fn      Func
	ctx     context.Context
	running bool
	steps   int
}

// Start implements Scheduler.
func (m *Manual) Start(ctx context.Context, fn Func) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fn = fn
	m.ctx = ctx
	m.running = true
	return nil
}

// Stop implements Scheduler.
func (m *Manual) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.running = false
}

// Running reports whether Start was called and Stop was not.
func (m *Manual) Running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running && m.ctx.Err() == nil
}

// Steps returns how many frames Step has run.
func (m *Manual) Steps() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.steps
}

// Step runs one frame.
func (m *Manual) Step() error {
	m.mu.Lock()
	fn := m.fn
	ok := m.running && m.ctx.Err() == nil
	m.mu.Unlock()

	if !ok {
		return ErrStopped
	}
	if err := fn(); err != nil {
		return err
	}

	m.mu.Lock()
	m.steps++
	m.mu.Unlock()
	return nil
}

// StepN runs n frames, stopping at the first error.
func (m *Manual) StepN(n int) error {
	for i := 0; i < n; i++ {
		if err := m.Step(); err != nil {
			return err
		}
	}
	return nil
}
