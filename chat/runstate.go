// Copyright 2016 Aleksandr Demakin. All rights reserved.

package chat

import "sync"

// RunState is a boolean shared by the goroutines of one session.
// It starts as true and can only be switched to false.
type RunState struct {
	mu      sync.Mutex
	running bool
	done    chan struct{}
}

// NewRunState returns a running state.
func NewRunState() *RunState {
	return &RunState{running: true, done: make(chan struct{})}
}

// Running returns the current value.
func (s *RunState) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Set sets the value. Setting true after false has no effect.
func (s *RunState) Set(value bool) {
	if !value {
		s.Stop()
	}
}

// Stop latches the state to false.
// It returns true, if this call was the one that changed it.
func (s *RunState) Stop() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return false
	}
	s.running = false
	close(s.done)
	return true
}

// Done returns a channel, which is closed when the state becomes false.
func (s *RunState) Done() <-chan struct{} {
	return s.done
}
