// Package pause coordinates browsing workers with identity rotations: while
// the network identity is being swapped, every worker holds its next request.
package pause

import (
	"context"
	"sync"
)

// Signal is a level-triggered pause flag shared by many readers and one
// writer. Readers observe the latest value only; intermediate flips that
// happen while a reader is busy are intentionally lost, so a rotation that
// pauses and resumes between two reads is simply never seen.
type Signal struct {
	mu      sync.Mutex
	paused  bool
	changed chan struct{}
}

// NewSignal creates a signal in the running (unpaused) state
func NewSignal() *Signal {
	return &Signal{changed: make(chan struct{})}
}

// Set updates the pause state and wakes every waiter when it changes
func (s *Signal) Set(paused bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.paused == paused {
		return
	}
	s.paused = paused
	close(s.changed)
	s.changed = make(chan struct{})
}

// Paused reports the current state
func (s *Signal) Paused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paused
}

// Wait blocks until the signal is unpaused or the context ends. Returns the
// context error on cancellation, nil otherwise.
func (s *Signal) Wait(ctx context.Context) error {
	for {
		s.mu.Lock()
		if !s.paused {
			s.mu.Unlock()
			return nil
		}
		ch := s.changed
		s.mu.Unlock()

		select {
		case <-ch:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
