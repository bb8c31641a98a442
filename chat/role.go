// Copyright 2016 Aleksandr Demakin. All rights reserved.

package chat

import (
	"strings"

	"github.com/nxgtw/duplexchat/internal/common"

	"github.com/pkg/errors"
)

// Role fixes which queue a process creates and which one it waits for.
type Role int

const (
	// Initiator creates both queues and does not wait for the peer.
	Initiator Role = iota + 1
	// Joiner waits for the initiator's queue, then attaches its own.
	Joiner
)

// ParseRole parses "initiator" ("a") or "joiner" ("b").
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "initiator", "a":
		return Initiator, nil
	case "joiner", "b":
		return Joiner, nil
	}
	return 0, errors.Errorf("unknown role %q", s)
}

func (r Role) String() string {
	switch r {
	case Initiator:
		return "initiator"
	case Joiner:
		return "joiner"
	}
	return "unknown"
}

// Peer returns the opposite role.
func (r Role) Peer() Role {
	if r == Initiator {
		return Joiner
	}
	return Initiator
}

// Keys returns the outbound and inbound queue keys of the role.
// The initiator sends on A->B, the joiner on B->A.
func (r Role) Keys(aToB, bToA common.Key) (out, in common.Key) {
	if r == Initiator {
		return aToB, bToA
	}
	return bToA, aToB
}
