// Copyright 2016 Aleksandr Demakin. All rights reserved.

package config

const (
	defaultAToBKey          = "0x123"
	defaultBToAKey          = "0x456"
	defaultPerm             = "0644"
	defaultMaxWaitAttempts  = 30
	defaultDiscoverInterval = "1s"
	defaultPollInterval     = "100ms"
	defaultFarewellLinger   = "1s"
	defaultQuitToken        = "quit"
)

// Prompt and color modes.
const (
	ModeAuto   = "auto"
	ModeAlways = "always"
	ModeNever  = "never"
)

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Queues: Queues{
			AToBKey: defaultAToBKey,
			BToAKey: defaultBToAKey,
			Perm:    defaultPerm,
		},
		Handshake: Handshake{
			MaxWaitAttempts:  defaultMaxWaitAttempts,
			DiscoverInterval: defaultDiscoverInterval,
		},
		Chat: Chat{
			PollInterval:    defaultPollInterval,
			FarewellLinger:  defaultFarewellLinger,
			QuitToken:       defaultQuitToken,
			InitiatorLabel:  "Process A",
			JoinerLabel:     "Process B",
			InitiatorPrompt: "A> ",
			JoinerPrompt:    "B> ",
			Prompt:          ModeAuto,
			Color:           ModeAuto,
		},
		Logging: Logging{
			Level: "warning",
		},
	}
}
