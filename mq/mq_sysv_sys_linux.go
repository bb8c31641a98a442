// Copyright 2016 Aleksandr Demakin. All rights reserved.

//go:build linux && !386
// +build linux,!386

package mq

import "golang.org/x/sys/unix"

func init() {
	sysMsgCtl = unix.SYS_MSGCTL
	sysMsgGet = unix.SYS_MSGGET
	sysMsgRcv = unix.SYS_MSGRCV
	sysMsgSnd = unix.SYS_MSGSND
}
