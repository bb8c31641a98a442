// Copyright 2016 Aleksandr Demakin. All rights reserved.

// Package chat implements a duplex console chat between two processes.
//
// Each direction has its own kernel queue. The initiator creates both queues
// at start, the joiner waits for the initiator's queue to appear and then
// attaches its reply queue. Every process destroys only its outbound queue.
//
// A session runs two goroutines: the Sender reads console lines and sends them,
// the Receiver polls the inbound queue and prints what arrives. Both share one
// RunState, which latches to false when any of them, or a signal, ends the session.
package chat
