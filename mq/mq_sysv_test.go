// Copyright 2015 Aleksandr Demakin. All rights reserved.

//go:build (linux && !386) || freebsd
// +build linux,!386 freebsd

package mq

import (
	"os"
	"testing"

	"github.com/nxgtw/duplexchat"
	"github.com/nxgtw/duplexchat/internal/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMqName = "duplexchat.mq.test"

func testKey(t *testing.T) common.Key {
	k, err := common.KeyForName(testMqName)
	require.NoError(t, err)
	require.NoError(t, DestroySystemVMessageQueue(k))
	t.Cleanup(func() {
		DestroySystemVMessageQueue(k)
		os.Remove(common.TmpFilename(testMqName))
	})
	return k
}

func TestCreateSysVMq(t *testing.T) {
	a := assert.New(t)
	k := testKey(t)
	mq, err := CreateSystemVMessageQueue(k, 0666)
	if a.NoError(err) {
		a.True(mq.Created())
		a.Equal(k, mq.Key())
		a.NoError(mq.Close())
		a.NoError(mq.Destroy())
	}
}

func TestCreateSysVMqExcl(t *testing.T) {
	a := assert.New(t)
	k := testKey(t)
	mq, err := CreateSystemVMessageQueue(k, 0666)
	if !a.NoError(err) {
		return
	}
	defer mq.Destroy()
	_, err = CreateSystemVMessageQueue(k, 0666)
	a.True(os.IsExist(err))
}

func TestCreateSysVMqInvalidPerm(t *testing.T) {
	k := testKey(t)
	_, err := CreateSystemVMessageQueue(k, 0777)
	assert.Error(t, err)
	_, err = CreateOrOpenSystemVMessageQueue(k, 0755)
	assert.Error(t, err)
}

func TestCreateOrOpenSysVMq(t *testing.T) {
	a := assert.New(t)
	k := testKey(t)
	first, err := CreateOrOpenSystemVMessageQueue(k, 0644)
	if !a.NoError(err) {
		return
	}
	defer first.Destroy()
	a.True(first.Created())
	second, err := CreateOrOpenSystemVMessageQueue(k, 0644)
	if a.NoError(err) {
		a.False(second.Created())
		a.Equal(first.ID(), second.ID())
	}
}

func TestOpenSysVMq(t *testing.T) {
	a := assert.New(t)
	k := testKey(t)
	_, err := OpenSystemVMessageQueue(k, 0)
	a.True(os.IsNotExist(err))
	mq, err := CreateSystemVMessageQueue(k, 0666)
	if !a.NoError(err) {
		return
	}
	opened, err := OpenSystemVMessageQueue(k, 0)
	if a.NoError(err) {
		a.False(opened.Created())
		a.Equal(mq.ID(), opened.ID())
	}
	a.NoError(mq.Destroy())
	_, err = OpenSystemVMessageQueue(k, 0)
	a.True(os.IsNotExist(err))
}

func TestSysVMqSendReceiveSameProcess(t *testing.T) {
	a := assert.New(t)
	k := testKey(t)
	mq, err := CreateSystemVMessageQueue(k, 0666)
	if !a.NoError(err) {
		return
	}
	defer mq.Destroy()
	message := make([]byte, 306)
	for i := range message {
		message[i] = byte(i)
	}
	a.NoError(mq.Send(message))
	mqr, err := OpenSystemVMessageQueue(k, 0)
	if !a.NoError(err) {
		return
	}
	received := make([]byte, len(message))
	l, err := mqr.Receive(received)
	a.NoError(err)
	a.Equal(len(message), l)
	a.Equal(message, received)
}

func TestSysVMqSendMessageLessThenBuffer(t *testing.T) {
	a := assert.New(t)
	k := testKey(t)
	mq, err := CreateSystemVMessageQueue(k, 0666)
	if !a.NoError(err) {
		return
	}
	defer mq.Destroy()
	message := []byte{1, 2, 3, 4}
	a.NoError(mq.Send(message))
	received := make([]byte, 64)
	l, err := mq.Receive(received)
	a.NoError(err)
	a.Equal(len(message), l)
	a.Equal(message, received[:l])
}

func TestSysVMqFIFO(t *testing.T) {
	a := assert.New(t)
	k := testKey(t)
	mq, err := CreateSystemVMessageQueue(k, 0666)
	if !a.NoError(err) {
		return
	}
	defer mq.Destroy()
	for i := byte(0); i < 10; i++ {
		a.NoError(mq.Send([]byte{i}))
	}
	for i := byte(0); i < 10; i++ {
		data := make([]byte, 1)
		_, err := mq.Receive(data)
		a.NoError(err)
		a.Equal(i, data[0])
	}
}

func TestSysVMqReceiveNonBlock(t *testing.T) {
	a := assert.New(t)
	k := testKey(t)
	mq, err := CreateSystemVMessageQueue(k, 0666)
	if !a.NoError(err) {
		return
	}
	defer mq.Destroy()
	mqr, err := OpenSystemVMessageQueue(k, duplexchat.O_NONBLOCK)
	if !a.NoError(err) {
		return
	}
	_, err = mqr.Receive(make([]byte, 8))
	a.Error(err)
	a.True(IsTemporary(err))
	a.True(IsEmpty(err))
	a.False(IsRemoved(err))
}

func TestSysVMqReceiveAfterDestroy(t *testing.T) {
	a := assert.New(t)
	k := testKey(t)
	mq, err := CreateSystemVMessageQueue(k, 0666)
	if !a.NoError(err) {
		return
	}
	mqr, err := OpenSystemVMessageQueue(k, duplexchat.O_NONBLOCK)
	if !a.NoError(err) {
		return
	}
	a.NoError(mq.Destroy())
	_, err = mqr.Receive(make([]byte, 8))
	a.Error(err)
	a.False(IsTemporary(err))
	a.True(IsRemoved(err))
}

func TestSysVMqTrySendFull(t *testing.T) {
	a := assert.New(t)
	k := testKey(t)
	mq, err := CreateSystemVMessageQueue(k, 0666)
	if !a.NoError(err) {
		return
	}
	defer mq.Destroy()
	data := make([]byte, 1024)
	for i := 0; i < 1<<16; i++ {
		if err = mq.TrySend(data); err != nil {
			break
		}
	}
	if a.Error(err) {
		a.True(IsTemporary(err))
		a.True(IsFull(err))
	}
}

func TestSysVMqDestroyTwice(t *testing.T) {
	a := assert.New(t)
	k := testKey(t)
	mq, err := CreateSystemVMessageQueue(k, 0666)
	if !a.NoError(err) {
		return
	}
	a.NoError(mq.Destroy())
	a.NoError(mq.Destroy())
	a.NoError(DestroySystemVMessageQueue(k))
}

func TestSysVMqLen(t *testing.T) {
	a := assert.New(t)
	k := testKey(t)
	mq, err := CreateSystemVMessageQueue(k, 0666)
	if !a.NoError(err) {
		return
	}
	defer mq.Destroy()
	l, err := mq.Len()
	if err != nil {
		t.Skipf("queue length is not available: %v", err)
	}
	a.Equal(0, l)
	a.NoError(mq.Send([]byte{1}))
	a.NoError(mq.Send([]byte{2}))
	l, err = mq.Len()
	a.NoError(err)
	a.Equal(2, l)
	_, err = mq.Receive(make([]byte, 1))
	a.NoError(err)
	l, err = mq.Len()
	a.NoError(err)
	a.Equal(1, l)
}
