// Copyright 2016 Aleksandr Demakin. All rights reserved.

// Package duplexchat is a two-peer console chat built on top of
// System V message queues.
// The repository is organised as follows:
//
//	mq - system v message queue access (create, open, send, receive, destroy)
//	chat - the messaging session: handshake, sender and receiver loops, shutdown
//	cmd/duplexchat - the command line program, which runs either role
//
// Two processes take part in a session: an initiator, which creates the queues,
// and a joiner, which waits for them to appear.
package duplexchat
