// Copyright 2016 Aleksandr Demakin. All rights reserved.

package chat

import (
	"time"

	"github.com/nxgtw/duplexchat/mq"

	log "github.com/sirupsen/logrus"
)

// DefaultPollInterval is the pause after an empty receive.
const DefaultPollInterval = 100 * time.Millisecond

// Receiver polls the inbound queue and prints incoming messages.
type Receiver struct {
	Queue        Inbound
	Console      *Console
	State        *RunState
	PeerLabel    string
	QuitToken    string
	PollInterval time.Duration
	Logger       log.FieldLogger
}

// Run runs the receive loop until the state is latched, the peer quits,
// the inbound queue disappears or a receive fails.
// A non-nil error is always a *FatalTransportError.
func (r *Receiver) Run() (StopReason, error) {
	interval := r.PollInterval
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	buf := make([]byte, WireSize)
	for r.State.Running() {
		n, err := r.Queue.Receive(buf)
		if err != nil {
			switch {
			case mq.IsEmpty(err):
				r.wait(interval)
				continue
			case mq.IsInterrupted(err):
				continue
			case mq.IsRemoved(err):
				r.Logger.WithError(err).Debug("inbound queue removed")
				r.Console.Notice("Message queue removed. %s terminated.", r.PeerLabel)
				r.State.Stop()
				return StopPeerGone, nil
			default:
				r.Console.Errorf("msgrcv error: %v", err)
				r.State.Stop()
				return StopError, &FatalTransportError{Op: "receive", Err: err}
			}
		}
		var m Message
		m.Unmarshal(buf[:n])
		if m.Body == r.QuitToken {
			r.Console.Notice("%s sent '%s'. Connection closed.", m.Sender, r.QuitToken)
			r.State.Stop()
			return StopPeerQuit, nil
		}
		r.Console.Message(m)
		r.Console.Prompt()
	}
	return StopStopped, nil
}

// wait sleeps for the poll interval, or less, if the state is latched meanwhile.
func (r *Receiver) wait(d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-r.State.Done():
	}
}
