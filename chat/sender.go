// Copyright 2016 Aleksandr Demakin. All rights reserved.

package chat

import (
	"io"

	"github.com/nxgtw/duplexchat/mq"

	log "github.com/sirupsen/logrus"
)

// Sender reads lines from the console and sends them to the peer.
type Sender struct {
	Queue     Outbound
	Console   *Console
	State     *RunState
	Label     string
	QuitToken string
	Logger    log.FieldLogger
}

// Run runs the send loop until the state is latched, the user quits,
// the input ends or a send fails. A non-nil error is always a *FatalTransportError.
func (s *Sender) Run() (StopReason, error) {
	for s.State.Running() {
		s.Console.Prompt()
		line, err := s.Console.ReadLine(s.State.Done())
		switch {
		case err == ErrStopped || !s.State.Running():
			return StopStopped, nil
		case err == io.EOF:
			s.Logger.Debug("console input closed")
			s.State.Stop()
			return StopEOF, nil
		case err != nil:
			s.State.Stop()
			return StopError, &FatalTransportError{Op: "read console", Err: err}
		}
		if line == s.QuitToken {
			s.State.Stop()
			s.farewell()
			return StopQuit, nil
		}
		if err := s.send(Message{Body: line, Sender: s.Label}); err != nil {
			if !s.State.Running() {
				// the queue was removed by a concurrent shutdown
				return StopStopped, nil
			}
			s.Console.Errorf("msgsnd error: %v", err)
			s.State.Stop()
			return StopError, &FatalTransportError{Op: "send", Err: err}
		}
	}
	return StopStopped, nil
}

func (s *Sender) send(m Message) error {
	data := m.Marshal()
	for {
		err := s.Queue.Send(data)
		if !mq.IsInterrupted(err) {
			return err
		}
	}
}

// farewell relays the quit token to the peer. It must not block,
// so that a full or vanished queue cannot delay the shutdown.
func (s *Sender) farewell() {
	m := Message{Body: s.QuitToken, Sender: s.Label}
	if err := s.Queue.TrySend(m.Marshal()); err != nil {
		s.Console.Errorf("msgsnd quit error: %v", err)
		s.Logger.WithError(err).Warn("farewell not delivered")
		return
	}
	s.Logger.Debug("farewell sent")
}
