// Copyright 2016 Aleksandr Demakin. All rights reserved.

package chat

import (
	"sync"

	"github.com/nxgtw/duplexchat"

	log "github.com/sirupsen/logrus"
)

type ownedResource struct {
	name string
	d    duplexchat.Destroyer
}

// Shutdown tears a session down exactly once, whichever of the local quit,
// a signal, or a loop failure asks for it first. It destroys only the
// resources registered with Own, which must be the ones this process created.
type Shutdown struct {
	state  *RunState
	logger log.FieldLogger

	mu      sync.Mutex
	cancel  []func()
	owned   []ownedResource
	release []func() error

	once   sync.Once
	err    error
	reason string
}

// NewShutdown returns a coordinator for the given state.
func NewShutdown(state *RunState, logger log.FieldLogger) *Shutdown {
	return &Shutdown{state: state, logger: logger}
}

// OnCancel registers an advisory cancellation request, such as closing the console.
func (s *Shutdown) OnCancel(f func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancel = append(s.cancel, f)
}

// Own registers a resource to be destroyed on shutdown.
func (s *Shutdown) Own(name string, d duplexchat.Destroyer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.owned = append(s.owned, ownedResource{name: name, d: d})
}

// OnRelease registers a function called after the resources are destroyed.
func (s *Shutdown) OnRelease(f func() error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.release = append(s.release, f)
}

// Run latches the state, requests cancellation, destroys owned resources
// and calls release functions. Only the first call does the work,
// later calls return its result.
func (s *Shutdown) Run(reason string) error {
	s.once.Do(func() {
		s.err = s.run(reason)
	})
	return s.err
}

// Reason returns the reason passed to the first Run call.
func (s *Shutdown) Reason() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reason
}

func (s *Shutdown) run(reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reason = reason
	logger := s.logger.WithField("reason", s.reason)
	logger.Debug("shutting down")

	s.state.Stop()
	for _, f := range s.cancel {
		f()
	}
	var first error
	for _, r := range s.owned {
		if err := r.d.Destroy(); err != nil {
			logger.WithError(err).WithField("resource", r.name).Warn("failed to destroy")
			if first == nil {
				first = err
			}
			continue
		}
		logger.WithField("resource", r.name).Debug("destroyed")
	}
	for _, f := range s.release {
		if err := f(); err != nil {
			logger.WithError(err).Warn("failed to release")
			if first == nil {
				first = err
			}
		}
	}
	return first
}
