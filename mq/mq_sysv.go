// Copyright 2016 Aleksandr Demakin. All rights reserved.

//go:build (linux && !386) || freebsd
// +build linux,!386 freebsd

package mq

import (
	"os"
	"sync/atomic"
	"unsafe"

	"github.com/nxgtw/duplexchat"
	"github.com/nxgtw/duplexchat/internal/common"

	"github.com/pkg/errors"
)

const (
	// DefaultMessageType is the type of every message sent by SystemVMessageQueue.
	DefaultMessageType = 1
	cSysVAnyMessage    = 0

	typeDataSize = int(unsafe.Sizeof(int(0)))
)

// SystemVMessageQueue is a System V ipc mechanism based on message passing.
type SystemVMessageQueue struct {
	flags     int
	id        int
	key       common.Key
	created   bool
	destroyed atomic.Bool
}

// this is to ensure, that system V implementation of ipc mq
// satisfies the minimal queue interface
var (
	_ Messenger            = (*SystemVMessageQueue)(nil)
	_ NonBlockingSender    = (*SystemVMessageQueue)(nil)
	_ duplexchat.Destroyer = (*SystemVMessageQueue)(nil)
)

// CreateSystemVMessageQueue creates new queue with the given key and permissions.
// It fails, if the queue already exists.
// 'execute' permission cannot be used.
func CreateSystemVMessageQueue(k common.Key, perm os.FileMode) (*SystemVMessageQueue, error) {
	if !checkMqPerm(perm) {
		return nil, errors.New("invalid mq permissions")
	}
	id, err := msgget(k, int(perm)|common.IpcCreate|common.IpcExcl)
	if err != nil {
		return nil, err
	}
	return &SystemVMessageQueue{id: id, key: k, created: true}, nil
}

// CreateOrOpenSystemVMessageQueue opens the queue with the given key,
// creating it first, if it does not exist. Created() reports which one has happened.
func CreateOrOpenSystemVMessageQueue(k common.Key, perm os.FileMode) (*SystemVMessageQueue, error) {
	if !checkMqPerm(perm) {
		return nil, errors.New("invalid mq permissions")
	}
	var id int
	creator := func(create bool) error {
		var err error
		if create {
			id, err = msgget(k, int(perm)|common.IpcCreate|common.IpcExcl)
		} else {
			id, err = msgget(k, 0)
		}
		return err
	}
	created, err := common.OpenOrCreate(creator)
	if err != nil {
		return nil, err
	}
	return &SystemVMessageQueue{id: id, key: k, created: created}, nil
}

// OpenSystemVMessageQueue opens existing message queue.
// If the queue does not exist, os.IsNotExist returns true for the error.
// flags may contain duplexchat.O_NONBLOCK.
func OpenSystemVMessageQueue(k common.Key, flags int) (*SystemVMessageQueue, error) {
	id, err := msgget(k, 0)
	if err != nil {
		return nil, err
	}
	result := &SystemVMessageQueue{id: id, key: k}
	if flags&duplexchat.O_NONBLOCK != 0 {
		result.flags |= common.IpcNoWait
	}
	return result, nil
}

// ID returns the system-wide identifier of the queue.
func (mq *SystemVMessageQueue) ID() int {
	return mq.id
}

// Key returns the key the queue was created or opened with.
func (mq *SystemVMessageQueue) Key() common.Key {
	return mq.key
}

// Created returns true, if the queue was created by this process.
func (mq *SystemVMessageQueue) Created() bool {
	return mq.created
}

// Send sends a message.
// It blocks if the queue is full, unless the queue is non-blocking.
// Calls interrupted by a signal are restarted.
func (mq *SystemVMessageQueue) Send(data []byte) error {
	return mq.send(data, mq.flags)
}

// TrySend sends a message without blocking.
// If the queue is full, it returns a temporary error.
func (mq *SystemVMessageQueue) TrySend(data []byte) error {
	return mq.send(data, mq.flags|common.IpcNoWait)
}

func (mq *SystemVMessageQueue) send(data []byte, flags int) error {
	f := func() error { return msgsnd(mq.id, DefaultMessageType, data, flags) }
	err := common.UninterruptedSyscall(f)
	if err != nil && flags&common.IpcNoWait != 0 && common.IsTimeoutErr(err) {
		err = newTemporaryError(err)
	}
	return err
}

// Receive receives a message and returns its length.
// It blocks if the queue is empty, unless the queue is non-blocking.
// For a non-blocking queue an empty queue results in a temporary error,
// for which IsEmpty returns true.
func (mq *SystemVMessageQueue) Receive(data []byte) (int, error) {
	var l int
	f := func() error {
		var err error
		l, err = msgrcv(mq.id, data, cSysVAnyMessage, mq.flags)
		return err
	}
	err := common.UninterruptedSyscall(f)
	if err != nil && mq.flags&common.IpcNoWait != 0 && common.IsNoMessageErr(err) {
		err = newTemporaryError(err)
	}
	return l, err
}

// Len returns the number of messages currently in the queue.
// It is not supported on every platform.
func (mq *SystemVMessageQueue) Len() (int, error) {
	return msgqnum(mq.id)
}

// Destroy closes the queue and removes it permanently.
// Destroying an already removed queue is not an error.
func (mq *SystemVMessageQueue) Destroy() error {
	if !mq.destroyed.CompareAndSwap(false, true) {
		return nil
	}
	mq.Close()
	err := msgctl(mq.id, common.IpcRmid, nil)
	if err != nil && (os.IsNotExist(err) || common.IsRemovedErr(err)) {
		err = nil
	}
	return err
}

// Close closes the queue.
// As there is no need to close SystemV mq, this function returns nil.
// It was added to satisfy io.Closer
func (mq *SystemVMessageQueue) Close() error {
	return nil
}

// SetBlocking sets whether the send/receive operations on the queue block.
func (mq *SystemVMessageQueue) SetBlocking(block bool) error {
	if block {
		mq.flags &= ^common.IpcNoWait
	} else {
		mq.flags |= common.IpcNoWait
	}
	return nil
}

// DestroySystemVMessageQueue permanently removes queue with a given key.
// It is not an error, if there is no such queue.
func DestroySystemVMessageQueue(k common.Key) error {
	mq, err := OpenSystemVMessageQueue(k, 0)
	if err != nil {
		if os.IsNotExist(err) {
			err = nil
		}
		return err
	}
	return mq.Destroy()
}
