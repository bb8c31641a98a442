// Copyright 2016 Aleksandr Demakin. All rights reserved.

package config

import (
	"os"
	"strings"
)

func (c *Config) normalize() {
	d := Default()
	c.Queues.AToBKey = strings.TrimSpace(c.Queues.AToBKey)
	c.Queues.BToAKey = strings.TrimSpace(c.Queues.BToAKey)
	c.Queues.Perm = strings.TrimSpace(c.Queues.Perm)
	if c.Queues.Perm == "" {
		c.Queues.Perm = d.Queues.Perm
	}
	if strings.TrimSpace(c.Handshake.DiscoverInterval) == "" {
		c.Handshake.DiscoverInterval = d.Handshake.DiscoverInterval
	}
	if strings.TrimSpace(c.Chat.PollInterval) == "" {
		c.Chat.PollInterval = d.Chat.PollInterval
	}
	if strings.TrimSpace(c.Chat.FarewellLinger) == "" {
		c.Chat.FarewellLinger = d.Chat.FarewellLinger
	}
	c.Chat.Prompt = normalizeMode(c.Chat.Prompt)
	c.Chat.Color = normalizeMode(c.Chat.Color)
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = d.Logging.Level
	}
	if c.LockDir == "" {
		c.LockDir = os.TempDir()
	}
}

func normalizeMode(mode string) string {
	mode = strings.ToLower(strings.TrimSpace(mode))
	if mode == "" {
		return ModeAuto
	}
	return mode
}
