// Copyright 2016 Aleksandr Demakin. All rights reserved.

package chat

import (
	"bytes"
	"unicode/utf8"
)

// Wire layout of a message payload, which follows the message type
// (mq.DefaultMessageType) in the kernel queue:
//
//	text   [256]byte, nul-terminated
//	sender [50]byte, nul-terminated
const (
	BodySize   = 256
	SenderSize = 50
	WireSize   = BodySize + SenderSize

	MaxBodyLen   = BodySize - 1
	MaxSenderLen = SenderSize - 1
)

// Message is a chat line together with its sender's label.
type Message struct {
	Body   string
	Sender string
}

// Marshal encodes the message into a WireSize buffer.
// Body and sender are truncated to MaxBodyLen and MaxSenderLen bytes.
func (m Message) Marshal() []byte {
	data := make([]byte, WireSize)
	copy(data[:MaxBodyLen], truncate(m.Body, MaxBodyLen))
	copy(data[BodySize:BodySize+MaxSenderLen], truncate(m.Sender, MaxSenderLen))
	return data
}

// Unmarshal decodes a message from data. Short payloads are accepted,
// missing fields are empty.
func (m *Message) Unmarshal(data []byte) {
	m.Body = cString(field(data, 0, BodySize))
	m.Sender = cString(field(data, BodySize, WireSize))
}

func field(data []byte, from, to int) []byte {
	if from >= len(data) {
		return nil
	}
	if to > len(data) {
		to = len(data)
	}
	return data[from:to]
}

func cString(data []byte) string {
	if i := bytes.IndexByte(data, 0); i >= 0 {
		data = data[:i]
	}
	return string(data)
}

// truncate cuts s to at most n bytes without splitting a utf-8 sequence.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	s = s[:n]
	for i := 0; i < utf8.UTFMax && len(s) > 0; i++ {
		r, size := utf8.DecodeLastRuneInString(s)
		if r != utf8.RuneError || size != 1 {
			break
		}
		s = s[:len(s)-1]
	}
	return s
}
