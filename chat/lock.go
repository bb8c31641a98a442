// Copyright 2016 Aleksandr Demakin. All rights reserved.

package chat

import (
	"fmt"
	"path/filepath"

	"github.com/nxgtw/duplexchat/internal/common"

	"github.com/gofrs/flock"
	"github.com/pkg/errors"
)

// ParticipantLock makes sure there is at most one process per role
// for a pair of queues. It is an advisory file lock.
type ParticipantLock struct {
	role Role
	path string
	lock *flock.Flock
}

// NewParticipantLock returns a lock for the role and its outbound queue key.
func NewParticipantLock(dir string, role Role, outbound common.Key) *ParticipantLock {
	path := filepath.Join(dir, fmt.Sprintf("duplexchat-%s-%s.lock", role, outbound))
	return &ParticipantLock{role: role, path: path, lock: flock.New(path)}
}

// Path returns the lock file path.
func (l *ParticipantLock) Path() string {
	return l.path
}

// Acquire takes the lock without waiting.
func (l *ParticipantLock) Acquire() error {
	ok, err := l.lock.TryLock()
	if err != nil {
		return &SetupError{Op: "lock " + l.path, Err: err}
	}
	if !ok {
		return &SetupError{Op: "lock " + l.path, Err: errors.Errorf("another %s is already running", l.role)}
	}
	return nil
}

// Release drops the lock. It is safe to call it more than once.
func (l *ParticipantLock) Release() error {
	return l.lock.Unlock()
}
