// Copyright 2016 Aleksandr Demakin. All rights reserved.

package chat

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/nxgtw/duplexchat/internal/common"
	"github.com/nxgtw/duplexchat/internal/logging"

	log "github.com/sirupsen/logrus"
)

// DefaultFarewellLinger bounds how long a quitting process waits
// for the peer to read the farewell before removing its queue.
const DefaultFarewellLinger = time.Second

// Options configures a session.
type Options struct {
	Role             Role
	AToB, BToA       common.Key
	MaxWaitAttempts  int
	DiscoverInterval time.Duration
	PollInterval     time.Duration
	FarewellLinger   time.Duration
	QuitToken        string
	Label            string
	PeerLabel        string
	// LockDir is where participant locks are kept. Empty disables locking.
	LockDir string
}

// Session is one process's side of a chat.
type Session struct {
	opts     Options
	provider Provider
	console  *Console
	logger   log.FieldLogger
	state    *RunState
	shutdown *Shutdown
}

type loopResult struct {
	name   string
	reason StopReason
	err    error
}

// NewSession returns a session, which is not started yet.
func NewSession(opts Options, provider Provider, console *Console, logger log.FieldLogger) *Session {
	if logger == nil {
		logger = logging.Discard()
	}
	state := NewRunState()
	return &Session{
		opts:     opts,
		provider: provider,
		console:  console,
		logger:   logger,
		state:    state,
		shutdown: NewShutdown(state, logger),
	}
}

// State returns the session's run state.
func (s *Session) State() *RunState {
	return s.state
}

// Stop shuts the session down. It is safe to call it several times,
// and concurrently with Run.
func (s *Session) Stop(reason string) error {
	return s.shutdown.Run(reason)
}

// Run performs the handshake, runs the sender and receiver loops until
// the session ends, and tears everything down.
// Cancelling ctx acts as an interrupt: the session ends and Run returns nil.
// Errors are *SetupError, *TimeoutError or *FatalTransportError.
func (s *Session) Run(ctx context.Context) error {
	if s.opts.LockDir != "" {
		out, _ := s.opts.Role.Keys(s.opts.AToB, s.opts.BToA)
		lock := NewParticipantLock(s.opts.LockDir, s.opts.Role, out)
		if err := lock.Acquire(); err != nil {
			return err
		}
		s.logger.WithField("path", lock.Path()).Debug("participant lock acquired")
		s.shutdown.OnRelease(lock.Release)
	}

	ch, err := s.handshake(ctx)
	if err != nil {
		s.shutdown.Run("setup failed")
		if ctxErr := ctx.Err(); ctxErr != nil && err == ctxErr {
			s.console.Println("\nInterrupted while waiting for the peer.")
			return nil
		}
		if IsTimeoutError(err) {
			s.console.Errorf("Timeout: %s not found. Please start %s first.", s.opts.PeerLabel, s.opts.PeerLabel)
		}
		return err
	}
	s.shutdown.Own("outbound queue", ch.Outbound)
	s.shutdown.OnCancel(func() { s.console.Close() })

	s.banner()
	go s.watch(ctx)

	sender := &Sender{
		Queue:     ch.Outbound,
		Console:   s.console,
		State:     s.state,
		Label:     s.opts.Label,
		QuitToken: s.opts.QuitToken,
		Logger:    s.logger.WithField("loop", "sender"),
	}
	receiver := &Receiver{
		Queue:        ch.Inbound,
		Console:      s.console,
		State:        s.state,
		PeerLabel:    s.opts.PeerLabel,
		QuitToken:    s.opts.QuitToken,
		PollInterval: s.opts.PollInterval,
		Logger:       s.logger.WithField("loop", "receiver"),
	}

	results := make([]loopResult, 2)
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		reason, err := receiver.Run()
		results[0] = loopResult{name: "receiver", reason: reason, err: err}
	}()
	go func() {
		defer wg.Done()
		reason, err := sender.Run()
		results[1] = loopResult{name: "sender", reason: reason, err: err}
	}()
	wg.Wait()

	var resultErr error
	reasons := make([]string, 0, len(results))
	for _, r := range results {
		s.logger.WithFields(log.Fields{"loop": r.name, "reason": r.reason.String()}).Debug("loop finished")
		reasons = append(reasons, r.name+": "+r.reason.String())
		if r.err != nil && resultErr == nil {
			resultErr = r.err
		}
	}
	if results[1].reason == StopQuit {
		s.drain(ch.Outbound)
	}
	if err := s.shutdown.Run(strings.Join(reasons, ", ")); err != nil {
		s.logger.WithError(err).Warn("shutdown finished with errors")
	}
	s.console.Printf("\n=== %s: Terminated ===\n", s.opts.Label)
	return resultErr
}

func (s *Session) handshake(ctx context.Context) (*Channels, error) {
	opts := HandshakeOptions{
		AToB:             s.opts.AToB,
		BToA:             s.opts.BToA,
		MaxWaitAttempts:  s.opts.MaxWaitAttempts,
		DiscoverInterval: s.opts.DiscoverInterval,
		Logger:           s.logger,
	}
	if s.opts.Role == Joiner {
		s.console.Printf("=== %s Starting ===\n", s.opts.Label)
		s.console.Printf("Waiting for %s to create queues", s.opts.PeerLabel)
		opts.OnRetry = func(int) { s.console.Printf(".") }
	}
	ch, err := Handshake(ctx, s.opts.Role, s.provider, opts)
	if err != nil {
		return nil, err
	}
	if s.opts.Role == Joiner {
		s.console.Printf(" Connected!\n")
		s.console.Printf("Found %s queue (ID: %d)\n", s.opts.PeerLabel, ch.Inbound.ID())
		s.console.Printf("Reply queue attached (ID: %d)\n", ch.Outbound.ID())
	}
	return ch, nil
}

// watch turns a cancelled context into a shutdown.
func (s *Session) watch(ctx context.Context) {
	select {
	case <-ctx.Done():
		if s.state.Running() {
			s.console.Notice("Received signal. Cleaning up...")
		}
		s.shutdown.Run("interrupted")
	case <-s.state.Done():
	}
}

// drain waits, within FarewellLinger, until the peer has read everything
// from the outbound queue, so that the farewell is not lost with the queue.
func (s *Session) drain(q Queue) {
	counter, ok := q.(interface{ Len() (int, error) })
	if !ok || s.opts.FarewellLinger <= 0 {
		return
	}
	deadline := time.Now().Add(s.opts.FarewellLinger)
	for time.Now().Before(deadline) {
		n, err := counter.Len()
		if err != nil || n == 0 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	s.logger.Debug("peer did not read the farewell in time")
}

func (s *Session) banner() {
	title := "Two-Way Chat - " + s.opts.Label
	rule := strings.Repeat("═", len([]rune(title))+4)
	s.console.Printf("\n╔%s╗\n║  %s  ║\n╚%s╝\n\n", rule, title, rule)
	s.console.Printf("=== %s: Ready to receive messages ===\n", s.opts.Label)
	s.console.Printf("=== %s: Ready to send messages ===\n", s.opts.Label)
	s.console.Printf("Type your messages (type '%s' to exit):\n", s.opts.QuitToken)
}
