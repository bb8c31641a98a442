// Copyright 2016 Aleksandr Demakin. All rights reserved.

package chat

import (
	"context"
	"os"
	"time"

	"github.com/nxgtw/duplexchat/internal/common"
	"github.com/nxgtw/duplexchat/internal/logging"

	log "github.com/sirupsen/logrus"
)

// Handshake defaults.
const (
	DefaultMaxWaitAttempts  = 30
	DefaultDiscoverInterval = time.Second
)

// HandshakeOptions configures queue setup.
type HandshakeOptions struct {
	AToB, BToA       common.Key
	MaxWaitAttempts  int
	DiscoverInterval time.Duration
	// OnRetry, if set, is called after each failed discovery attempt.
	OnRetry func(attempt int)
	Logger  log.FieldLogger
}

// Channels is the pair of queues of a running session.
// Outbound is owned by this process, Inbound by the peer.
type Channels struct {
	Outbound Queue
	Inbound  Queue
}

// Handshake acquires the queues for the role.
// The inbound queue is switched to non-blocking mode.
func Handshake(ctx context.Context, role Role, p Provider, opts HandshakeOptions) (*Channels, error) {
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	var ch *Channels
	var err error
	switch role {
	case Initiator:
		ch, err = initiate(p, opts)
	case Joiner:
		ch, err = join(ctx, p, opts)
	default:
		return nil, &SetupError{Op: "handshake", Err: os.ErrInvalid}
	}
	if err != nil {
		return nil, err
	}
	if err = ch.Inbound.SetBlocking(false); err != nil {
		if ch.Outbound.Created() {
			ch.Outbound.Destroy()
		}
		return nil, &SetupError{Op: "set inbound non-blocking", Err: err}
	}
	return ch, nil
}

func initiate(p Provider, opts HandshakeOptions) (*Channels, error) {
	out, err := p.CreateOrOpen(opts.AToB)
	if err != nil {
		return nil, &SetupError{Op: "msgget " + opts.AToB.String(), Err: err}
	}
	logQueue(opts.Logger, "outbound", opts.AToB, out)
	in, err := p.CreateOrOpen(opts.BToA)
	if err != nil {
		if out.Created() {
			if derr := out.Destroy(); derr != nil {
				opts.Logger.WithError(derr).Warn("failed to remove outbound queue")
			}
		}
		return nil, &SetupError{Op: "msgget " + opts.BToA.String(), Err: err}
	}
	logQueue(opts.Logger, "inbound", opts.BToA, in)
	return &Channels{Outbound: out, Inbound: in}, nil
}

func join(ctx context.Context, p Provider, opts HandshakeOptions) (*Channels, error) {
	in, err := Discover(ctx, p, opts.AToB, opts.MaxWaitAttempts, opts.DiscoverInterval, opts.OnRetry)
	if err != nil {
		return nil, err
	}
	logQueue(opts.Logger, "inbound", opts.AToB, in)
	out, err := p.CreateOrOpen(opts.BToA)
	if err != nil {
		return nil, &SetupError{Op: "msgget " + opts.BToA.String(), Err: err}
	}
	logQueue(opts.Logger, "outbound", opts.BToA, out)
	return &Channels{Outbound: out, Inbound: in}, nil
}

// Discover waits for the queue with the given key to appear.
// It makes one attempt immediately and up to maxWait more, one per interval.
// It never creates the queue. When the attempts are exhausted it returns
// a *TimeoutError, if ctx is done it returns ctx.Err().
func Discover(ctx context.Context, p Provider, k common.Key, maxWait int, interval time.Duration, onRetry func(int)) (Queue, error) {
	if interval <= 0 {
		interval = DefaultDiscoverInterval
	}
	start := time.Now()
	for waited := 0; ; waited++ {
		q, err := p.Open(k)
		if err == nil {
			return q, nil
		}
		if !os.IsNotExist(err) {
			return nil, &SetupError{Op: "msgget " + k.String(), Err: err}
		}
		if waited >= maxWait {
			return nil, &TimeoutError{Key: k, Waited: time.Since(start)}
		}
		if onRetry != nil {
			onRetry(waited + 1)
		}
		timer := time.NewTimer(interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}

func logQueue(logger log.FieldLogger, direction string, k common.Key, q Queue) {
	logger.WithFields(log.Fields{
		logging.FieldQueue: direction,
		logging.FieldKey:   k.String(),
		"id":               q.ID(),
		"created":          q.Created(),
	}).Info("queue ready")
}
