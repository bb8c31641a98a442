// Copyright 2016 Aleksandr Demakin. All rights reserved.

package common

import (
	"os"
	"syscall"

	"github.com/pkg/errors"
)

// OpenOrCreate calls creator(true) to create an object exclusively.
// If the object already exists, it tries to open it with creator(false).
// As the object can be removed between the two calls, it makes several attempts.
// It returns true, if the object was created by this call.
func OpenOrCreate(creator func(bool) error) (bool, error) {
	const attempts = 16
	var err error
	for attempt := 0; attempt < attempts; attempt++ {
		if err = creator(true); !os.IsExist(err) {
			return err == nil, err
		}
		if err = creator(false); !os.IsNotExist(err) {
			return false, err
		}
	}
	return false, err
}

// UninterruptedSyscall calls f until it returns an error, which is not EINTR.
func UninterruptedSyscall(f func() error) error {
	for {
		err := f()
		if !IsInterruptedSyscallErr(err) {
			return err
		}
	}
}

// SyscallErrHasCode returns true, if err is a syscall error with the given errno.
// os.SyscallError and os.PathError wrappers are looked through.
func SyscallErrHasCode(err error, code syscall.Errno) bool {
	if err == nil {
		return false
	}
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return errno == code
	}
	return false
}

func IsInterruptedSyscallErr(err error) bool {
	return SyscallErrHasCode(err, syscall.EINTR)
}

func IsTimeoutErr(err error) bool {
	return SyscallErrHasCode(err, syscall.EAGAIN)
}
