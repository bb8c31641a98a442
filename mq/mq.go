// Copyright 2016 Aleksandr Demakin. All rights reserved.

//go:build linux || freebsd
// +build linux freebsd

package mq

import (
	"io"
	"os"
)

// Messenger is an interface which must be satisfied by any
// message queue implementation.
type Messenger interface {
	Send(data []byte) error
	Receive(data []byte) (int, error)
	io.Closer
}

// NonBlockingSender can try to send a message without waiting for free space in the queue.
type NonBlockingSender interface {
	TrySend(data []byte) error
}

func checkMqPerm(perm os.FileMode) bool {
	return uint(perm)&0111 == 0
}
