// Copyright 2016 Aleksandr Demakin. All rights reserved.

package chat

import (
	"os"

	"github.com/nxgtw/duplexchat"
	"github.com/nxgtw/duplexchat/internal/common"
	"github.com/nxgtw/duplexchat/mq"
)

// Queue is a kernel queue handle as seen by a session.
type Queue interface {
	Outbound
	Inbound
	duplexchat.Destroyer
	ID() int
	Created() bool
	SetBlocking(block bool) error
}

// Provider acquires queue handles.
type Provider interface {
	// CreateOrOpen returns the queue with the given key, creating it if needed.
	CreateOrOpen(k common.Key) (Queue, error)
	// Open returns an existing queue. If there is no such queue,
	// os.IsNotExist returns true for the error.
	Open(k common.Key) (Queue, error)
}

// SysVProvider provides system v message queues.
type SysVProvider struct {
	Perm os.FileMode
}

var _ Provider = SysVProvider{}

// CreateOrOpen implements Provider.
func (p SysVProvider) CreateOrOpen(k common.Key) (Queue, error) {
	q, err := mq.CreateOrOpenSystemVMessageQueue(k, p.Perm)
	if err != nil {
		return nil, err
	}
	return q, nil
}

// Open implements Provider.
func (p SysVProvider) Open(k common.Key) (Queue, error) {
	q, err := mq.OpenSystemVMessageQueue(k, 0)
	if err != nil {
		return nil, err
	}
	return q, nil
}
