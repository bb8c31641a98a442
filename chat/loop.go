// Copyright 2016 Aleksandr Demakin. All rights reserved.

package chat

// StopReason tells why a sender or receiver loop has finished.
type StopReason int

const (
	// StopStopped means the run state was latched by someone else.
	StopStopped StopReason = iota
	// StopQuit means the local user typed the quit token.
	StopQuit
	// StopEOF means the console input was exhausted.
	StopEOF
	// StopPeerQuit means the peer sent the quit token.
	StopPeerQuit
	// StopPeerGone means the inbound queue was removed.
	StopPeerGone
	// StopError means an unrecoverable transport or console error.
	StopError
)

func (r StopReason) String() string {
	switch r {
	case StopStopped:
		return "stopped"
	case StopQuit:
		return "quit"
	case StopEOF:
		return "end of input"
	case StopPeerQuit:
		return "peer quit"
	case StopPeerGone:
		return "peer gone"
	case StopError:
		return "error"
	default:
		return "unknown"
	}
}

// Outbound is the sending side of a queue.
type Outbound interface {
	Send(data []byte) error
	TrySend(data []byte) error
}

// Inbound is the receiving side of a queue.
// Receive must not block, an empty queue is reported as an error.
type Inbound interface {
	Receive(data []byte) (int, error)
}
