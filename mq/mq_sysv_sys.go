// Copyright 2016 Aleksandr Demakin. All rights reserved.

//go:build (linux && !386) || freebsd
// +build linux,!386 freebsd

package mq

import (
	"os"
	"syscall"
	"unsafe"

	"github.com/nxgtw/duplexchat/internal/common"

	"golang.org/x/sys/unix"
)

var (
	sysMsgGet uintptr
	sysMsgSnd uintptr
	sysMsgRcv uintptr
	sysMsgCtl uintptr
)

func msgget(k common.Key, flags int) (int, error) {
	id, _, err := unix.Syscall(sysMsgGet, uintptr(k), uintptr(flags), 0)
	if err != syscall.Errno(0) {
		if err == unix.EEXIST || err == unix.ENOENT {
			return 0, &os.PathError{Op: "MSGGET", Path: k.String(), Err: err}
		}
		return 0, os.NewSyscallError("MSGGET", err)
	}
	return int(id), nil
}

func msgsnd(id int, typ int, data []byte, flags int) error {
	message := make([]byte, typeDataSize+len(data))
	*(*int)(unsafe.Pointer(&message[0])) = typ
	copy(message[typeDataSize:], data)
	_, _, err := unix.Syscall6(sysMsgSnd,
		uintptr(id),
		uintptr(unsafe.Pointer(&message[0])),
		uintptr(len(data)),
		uintptr(flags),
		0,
		0)
	if err != syscall.Errno(0) {
		return os.NewSyscallError("MSGSND", err)
	}
	return nil
}

func msgrcv(id int, data []byte, typ int, flags int) (int, error) {
	message := make([]byte, typeDataSize+len(data))
	l, _, err := unix.Syscall6(sysMsgRcv,
		uintptr(id),
		uintptr(unsafe.Pointer(&message[0])),
		uintptr(len(data)),
		uintptr(typ),
		uintptr(flags),
		0)
	if err != syscall.Errno(0) {
		return 0, os.NewSyscallError("MSGRCV", err)
	}
	copy(data, message[typeDataSize:])
	return int(l), nil
}

func msgctl(id, cmd int, buf *msqidDs) error {
	_, _, err := unix.Syscall(sysMsgCtl, uintptr(id), uintptr(cmd), uintptr(unsafe.Pointer(buf)))
	if err != syscall.Errno(0) {
		return os.NewSyscallError("MSGCTL", err)
	}
	return nil
}
