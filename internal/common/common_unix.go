// Copyright 2016 Aleksandr Demakin. All rights reserved.

//go:build linux || freebsd
// +build linux freebsd

package common

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

const (
	IpcCreate = 00001000 /* create if key is nonexistent */
	IpcExcl   = 00002000 /* fail if key exists */
	IpcNoWait = 00004000 /* return error on wait */

	IpcRmid = 0 /* remove resource */
	IpcStat = 2 /* get ipc_perm options */
)

// Key is a system v ipc key.
type Key uint64

func (k Key) String() string {
	return fmt.Sprintf("0x%x", uint64(k))
}

// ParseKey parses a key given as a decimal, hex (0x...) or octal (0...) number.
// IPC_PRIVATE (zero) is not a valid key for a named queue.
func ParseKey(s string) (Key, error) {
	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid ipc key %q", s)
	}
	if v == 0 {
		return 0, errors.New("ipc key must not be zero")
	}
	return Key(v), nil
}

// KeyForName returns a key for a name. It creates a file with
// the given name in the temp dir and calls Ftok on it.
func KeyForName(name string) (Key, error) {
	name = TmpFilename(name)
	file, err := os.Create(name)
	if err != nil {
		return 0, errors.Wrap(err, "invalid name for key")
	}
	file.Close()
	k, err := Ftok(name, 'q')
	if err != nil {
		os.Remove(name)
		return 0, errors.Wrap(err, "invalid name for key")
	}
	return k, nil
}

func TmpFilename(name string) string {
	return filepath.Join(os.TempDir(), name)
}

// Ftok mirrors the libc ftok(3) function.
func Ftok(name string, projID byte) (Key, error) {
	var statfs unix.Stat_t
	if err := unix.Stat(name, &statfs); err != nil {
		return Key(0), err
	}
	return Key(uint64(statfs.Ino)&0xFFFF | ((uint64(statfs.Dev) & 0xFF) << 16) | (uint64(projID) << 24)), nil
}

func IsNoMessageErr(err error) bool {
	return SyscallErrHasCode(err, syscall.ENOMSG)
}

// IsRemovedErr returns true, if the error means that the ipc object
// was removed. A queue removed while a process waits on it reports EIDRM,
// later calls on the stale id report EINVAL.
func IsRemovedErr(err error) bool {
	return SyscallErrHasCode(err, syscall.EIDRM) || SyscallErrHasCode(err, syscall.EINVAL)
}
