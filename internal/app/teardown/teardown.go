// Package teardown guarantees release of every acquired resource on every
// exit path. Each resource registers its release at acquisition time; the
// sequencer runs them all, last-in first-out, exactly once per process.
package teardown

import "sync"

// ReleaseFunc releases one resource. Its error is reported, never fatal.
type ReleaseFunc func() error

type step struct {
	name string
	fn   ReleaseFunc
}

// Sequencer collects release steps and runs them once.
type Sequencer struct {
	mu    sync.Mutex
	once  sync.Once
	steps []step
	// OnError receives the name and error of any failing step.
	OnError func(name string, err error)
}

// NewSequencer creates an empty sequencer.
func NewSequencer() *Sequencer {
	return &Sequencer{}
}

// Register adds a named release step. Safe to call until Run fires.
func (s *Sequencer) Register(name string, fn ReleaseFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.steps = append(s.steps, step{name: name, fn: fn})
}

// Run executes all registered steps in reverse registration order. Every
// step runs even if an earlier one fails. Subsequent calls are no-ops.
func (s *Sequencer) Run() {
	s.once.Do(func() {
		s.mu.Lock()
		steps := make([]step, len(s.steps))
		copy(steps, s.steps)
		s.mu.Unlock()

		for i := len(steps) - 1; i >= 0; i-- {
			if err := steps[i].fn(); err != nil && s.OnError != nil {
				s.OnError(steps[i].name, err)
			}
		}
	})
}
