// Copyright 2016 Aleksandr Demakin. All rights reserved.

//go:build linux || freebsd
// +build linux freebsd

package mq

import (
	"github.com/nxgtw/duplexchat/internal/common"
)

// IsEmpty returns true, if a non-blocking receive found no message.
func IsEmpty(err error) bool {
	return common.IsNoMessageErr(err)
}

// IsFull returns true, if a non-blocking send found no space in the queue.
func IsFull(err error) bool {
	return common.IsTimeoutErr(err)
}

// IsInterrupted returns true, if a call was interrupted by a signal.
func IsInterrupted(err error) bool {
	return common.IsInterruptedSyscallErr(err)
}

// IsRemoved returns true, if the queue was removed from the system.
func IsRemoved(err error) bool {
	return common.IsRemovedErr(err)
}
