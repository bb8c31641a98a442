// Copyright 2016 Aleksandr Demakin. All rights reserved.

package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/nxgtw/duplexchat/chat"
	"github.com/nxgtw/duplexchat/internal/config"
	"github.com/nxgtw/duplexchat/internal/logging"

	"github.com/spf13/cobra"
)

type chatFlags struct {
	aToBKey string
	bToAKey string
	maxWait int
	quit    string
	noLock  bool
}

func newInitiatorCommand(ctx *commandContext) *cobra.Command {
	return newChatCommand(ctx, chat.Initiator,
		"Create both queues and start chatting (process A)")
}

func newJoinerCommand(ctx *commandContext) *cobra.Command {
	return newChatCommand(ctx, chat.Joiner,
		"Wait for the initiator's queue, attach the reply queue and start chatting (process B)")
}

func newChatCommand(ctx *commandContext, role chat.Role, short string) *cobra.Command {
	var flags chatFlags
	cmd := &cobra.Command{
		Use:   role.String(),
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := applyChatFlags(cmd, cfg, flags); err != nil {
				return err
			}
			return runChat(cmd, ctx, cfg, role, !flags.noLock)
		},
	}
	cmd.Flags().StringVar(&flags.aToBKey, "a-to-b-key", "", "Key of the initiator-to-joiner queue")
	cmd.Flags().StringVar(&flags.bToAKey, "b-to-a-key", "", "Key of the joiner-to-initiator queue")
	cmd.Flags().StringVar(&flags.quit, "quit-token", "", "Line that ends the chat")
	cmd.Flags().BoolVar(&flags.noLock, "no-lock", false, "Do not take the participant lock")
	if role == chat.Joiner {
		cmd.Flags().IntVar(&flags.maxWait, "max-wait", 0, "Number of one-interval waits for the initiator")
	}
	return cmd
}

func applyChatFlags(cmd *cobra.Command, cfg *config.Config, flags chatFlags) error {
	changed := cmd.Flags().Changed
	if changed("a-to-b-key") {
		cfg.Queues.AToBKey = flags.aToBKey
	}
	if changed("b-to-a-key") {
		cfg.Queues.BToAKey = flags.bToAKey
	}
	if changed("quit-token") {
		cfg.Chat.QuitToken = flags.quit
	}
	if changed("max-wait") {
		cfg.Handshake.MaxWaitAttempts = flags.maxWait
	}
	return cfg.Validate()
}

func sessionOptions(cfg *config.Config, role chat.Role, lock bool) (chat.Options, error) {
	aToB, bToA, err := cfg.QueueKeys()
	if err != nil {
		return chat.Options{}, err
	}
	opts := chat.Options{
		Role:             role,
		AToB:             aToB,
		BToA:             bToA,
		MaxWaitAttempts:  cfg.Handshake.MaxWaitAttempts,
		DiscoverInterval: cfg.DiscoverInterval(),
		PollInterval:     cfg.PollInterval(),
		FarewellLinger:   cfg.FarewellLinger(),
		QuitToken:        cfg.Chat.QuitToken,
		Label:            cfg.Chat.InitiatorLabel,
		PeerLabel:        cfg.Chat.JoinerLabel,
	}
	if role == chat.Joiner {
		opts.Label, opts.PeerLabel = opts.PeerLabel, opts.Label
	}
	if lock {
		opts.LockDir = cfg.LockDir
		if opts.LockDir == "" {
			opts.LockDir = os.TempDir()
		}
	}
	return opts, nil
}

func runChat(cmd *cobra.Command, ctx *commandContext, cfg *config.Config, role chat.Role, lock bool) error {
	opts, err := sessionOptions(cfg, role, lock)
	if err != nil {
		return err
	}
	perm, err := cfg.Permissions()
	if err != nil {
		return err
	}
	logger, closer, err := ctx.newLogger()
	if err != nil {
		return err
	}
	defer closer.Close()

	prompt := cfg.Chat.InitiatorPrompt
	if role == chat.Joiner {
		prompt = cfg.Chat.JoinerPrompt
	}
	console := chat.NewConsole(ctx.stdin, ctx.stdout, chat.ConsoleOptions{
		Prompt:     prompt,
		ShowPrompt: enabled(cfg.Chat.Prompt, ctx.stdin),
		Colorize:   enabled(cfg.Chat.Color, ctx.stdout),
	})

	signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	sessionLogger := logging.ForSession(logger, role.String())
	sessionLogger.WithField("config", ctx.configPath).Debug("starting session")
	session := chat.NewSession(opts, chat.SysVProvider{Perm: perm}, console, sessionLogger)
	return session.Run(signalCtx)
}
