// Copyright 2016 Aleksandr Demakin. All rights reserved.

package chat

import (
	"bytes"
	"os"
	"sync"
	"syscall"

	"github.com/nxgtw/duplexchat/internal/common"
)

// memKernel imitates the system-wide queue namespace.
type memKernel struct {
	mu      sync.Mutex
	queues  map[common.Key]*memQueue
	nextID  int
	created int
	openErr error
}

func newMemKernel() *memKernel {
	return &memKernel{queues: make(map[common.Key]*memQueue)}
}

func (k *memKernel) CreateOrOpen(key common.Key) (Queue, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if q, ok := k.queues[key]; ok {
		return &memHandle{memQueue: q}, nil
	}
	k.nextID++
	k.created++
	q := &memQueue{id: k.nextID, key: key, kernel: k}
	k.queues[key] = q
	return &memHandle{memQueue: q, created: true}, nil
}

func (k *memKernel) Open(key common.Key) (Queue, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.openErr != nil {
		return nil, k.openErr
	}
	q, ok := k.queues[key]
	if !ok {
		return nil, &os.PathError{Op: "MSGGET", Path: key.String(), Err: syscall.ENOENT}
	}
	return &memHandle{memQueue: q}, nil
}

func (k *memKernel) createdCount() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.created
}

func (k *memKernel) queue(key common.Key) *memQueue {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.queues[key]
}

func (k *memKernel) exists(key common.Key) bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	_, ok := k.queues[key]
	return ok
}

func (k *memKernel) remove(key common.Key) {
	k.mu.Lock()
	q := k.queues[key]
	k.mu.Unlock()
	if q != nil {
		q.destroy()
	}
}

type memQueue struct {
	mu       sync.Mutex
	id       int
	key      common.Key
	kernel   *memKernel
	msgs     [][]byte
	removed  bool
	destroys int
}

func (q *memQueue) destroy() {
	q.mu.Lock()
	q.removed = true
	q.destroys++
	q.mu.Unlock()
	q.kernel.mu.Lock()
	if q.kernel.queues[q.key] == q {
		delete(q.kernel.queues, q.key)
	}
	q.kernel.mu.Unlock()
}

func (q *memQueue) destroyCount() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.destroys
}

// memHandle is a process-local handle to a memQueue.
type memHandle struct {
	*memQueue
	created bool
}

func (h *memHandle) ID() int        { return h.id }
func (h *memHandle) Created() bool  { return h.created }
func (h *memHandle) Destroy() error { h.destroy(); return nil }

func (h *memHandle) SetBlocking(bool) error { return nil }

func (h *memHandle) Send(data []byte) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.removed {
		return os.NewSyscallError("MSGSND", syscall.EIDRM)
	}
	h.msgs = append(h.msgs, append([]byte(nil), data...))
	return nil
}

func (h *memHandle) TrySend(data []byte) error {
	return h.Send(data)
}

func (h *memHandle) Receive(data []byte) (int, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.removed {
		return 0, os.NewSyscallError("MSGRCV", syscall.EINVAL)
	}
	if len(h.msgs) == 0 {
		return 0, os.NewSyscallError("MSGRCV", syscall.ENOMSG)
	}
	msg := h.msgs[0]
	h.msgs = h.msgs[1:]
	return copy(data, msg), nil
}

func (h *memHandle) Len() (int, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.removed {
		return 0, os.NewSyscallError("MSGCTL", syscall.EINVAL)
	}
	return len(h.msgs), nil
}

// scriptedQueue returns prepared results from Send and Receive.
type scriptedQueue struct {
	mu       sync.Mutex
	sendErrs []error
	recvErrs []error
	recvMsgs [][]byte
	sent     [][]byte
	trySent  [][]byte
	tryErr   error
}

func (q *scriptedQueue) Send(data []byte) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.sendErrs) > 0 {
		err := q.sendErrs[0]
		q.sendErrs = q.sendErrs[1:]
		if err != nil {
			return err
		}
	}
	q.sent = append(q.sent, append([]byte(nil), data...))
	return nil
}

func (q *scriptedQueue) TrySend(data []byte) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.tryErr != nil {
		return q.tryErr
	}
	q.trySent = append(q.trySent, append([]byte(nil), data...))
	return nil
}

func (q *scriptedQueue) Receive(data []byte) (int, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.recvErrs) > 0 {
		err := q.recvErrs[0]
		q.recvErrs = q.recvErrs[1:]
		if err != nil {
			return 0, err
		}
	}
	if len(q.recvMsgs) == 0 {
		return 0, os.NewSyscallError("MSGRCV", syscall.ENOMSG)
	}
	msg := q.recvMsgs[0]
	q.recvMsgs = q.recvMsgs[1:]
	return copy(data, msg), nil
}

func (q *scriptedQueue) sentMessages() []Message {
	q.mu.Lock()
	defer q.mu.Unlock()
	return decodeAll(q.sent)
}

func (q *scriptedQueue) farewells() []Message {
	q.mu.Lock()
	defer q.mu.Unlock()
	return decodeAll(q.trySent)
}

func decodeAll(raw [][]byte) []Message {
	result := make([]Message, 0, len(raw))
	for _, data := range raw {
		var m Message
		m.Unmarshal(data)
		result = append(result, m)
	}
	return result
}

// syncBuffer is a bytes.Buffer safe for concurrent use.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
