// Copyright 2016 Aleksandr Demakin. All rights reserved.

//go:build (linux && !386 && !amd64 && !arm64) || freebsd
// +build linux,!386,!amd64,!arm64 freebsd

package mq

import "github.com/pkg/errors"

// msqidDs is only used for IPC_RMID here, its layout does not matter.
type msqidDs struct{}

func msgqnum(id int) (int, error) {
	return 0, errors.New("queue length is not supported on this platform")
}
