// Copyright 2016 Aleksandr Demakin. All rights reserved.

package chat

import (
	"fmt"
	"time"

	"github.com/nxgtw/duplexchat/internal/common"

	"github.com/pkg/errors"
)

// SetupError is returned, when the queues could not be created or opened.
// It is fatal: no goroutines have been started yet.
type SetupError struct {
	Op  string
	Err error
}

func (e *SetupError) Error() string {
	return fmt.Sprintf("setup: %s: %v", e.Op, e.Err)
}

func (e *SetupError) Unwrap() error { return e.Err }

// Cause satisfies errors.Cause from github.com/pkg/errors.
func (e *SetupError) Cause() error { return e.Err }

// TimeoutError is returned by the joiner, if the peer's queue
// did not appear within the allowed number of attempts.
type TimeoutError struct {
	Key    common.Key
	Waited time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("queue %v not found after %v", e.Key, e.Waited)
}

// FatalTransportError is an unrecoverable send or receive failure.
type FatalTransportError struct {
	Op  string
	Err error
}

func (e *FatalTransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *FatalTransportError) Unwrap() error { return e.Err }

// Cause satisfies errors.Cause from github.com/pkg/errors.
func (e *FatalTransportError) Cause() error { return e.Err }

// IsSetupError returns true, if err is, or wraps, a SetupError.
func IsSetupError(err error) bool {
	var target *SetupError
	return errors.As(err, &target)
}

// IsTimeoutError returns true, if err is, or wraps, a TimeoutError.
func IsTimeoutError(err error) bool {
	var target *TimeoutError
	return errors.As(err, &target)
}

// IsFatalTransportError returns true, if err is, or wraps, a FatalTransportError.
func IsFatalTransportError(err error) bool {
	var target *FatalTransportError
	return errors.As(err, &target)
}
