// Copyright 2016 Aleksandr Demakin. All rights reserved.

package config

import (
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateQueues(); err != nil {
		return err
	}
	if err := c.validateHandshake(); err != nil {
		return err
	}
	if err := c.validateChat(); err != nil {
		return err
	}
	if _, err := log.ParseLevel(c.Logging.Level); err != nil {
		return errors.Wrap(err, "logging.level")
	}
	return nil
}

func (c *Config) validateQueues() error {
	aToB, bToA, err := c.QueueKeys()
	if err != nil {
		return err
	}
	if aToB == bToA {
		return errors.New("queues.a_to_b_key and queues.b_to_a_key must differ")
	}
	perm, err := c.Permissions()
	if err != nil {
		return err
	}
	if perm&0111 != 0 || perm&^0777 != 0 {
		return errors.Errorf("queues.perm %s: only read/write bits are allowed", c.Queues.Perm)
	}
	return nil
}

func (c *Config) validateHandshake() error {
	if c.Handshake.MaxWaitAttempts < 0 {
		return errors.New("handshake.max_wait_attempts must not be negative")
	}
	return validatePositiveDuration("handshake.discover_interval", c.Handshake.DiscoverInterval)
}

func (c *Config) validateChat() error {
	if err := validatePositiveDuration("chat.poll_interval", c.Chat.PollInterval); err != nil {
		return err
	}
	if d, err := time.ParseDuration(c.Chat.FarewellLinger); err != nil || d < 0 {
		return errors.Errorf("chat.farewell_linger %q must be a non-negative duration", c.Chat.FarewellLinger)
	}
	if c.Chat.QuitToken == "" {
		return errors.New("chat.quit_token must not be empty")
	}
	if c.Chat.InitiatorLabel == "" || c.Chat.JoinerLabel == "" {
		return errors.New("chat labels must not be empty")
	}
	for name, mode := range map[string]string{"chat.prompt": c.Chat.Prompt, "chat.color": c.Chat.Color} {
		switch mode {
		case ModeAuto, ModeAlways, ModeNever:
		default:
			return errors.Errorf("%s: unknown mode %q", name, mode)
		}
	}
	return nil
}

func validatePositiveDuration(name, value string) error {
	d, err := time.ParseDuration(value)
	if err != nil {
		return errors.Wrap(err, name)
	}
	if d <= 0 {
		return errors.Errorf("%s must be positive", name)
	}
	return nil
}
