// Copyright 2016 Aleksandr Demakin. All rights reserved.

package config

import (
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/nxgtw/duplexchat/internal/common"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
)

// Queues contains the keys and permissions of the two kernel queues.
type Queues struct {
	AToBKey string `toml:"a_to_b_key"`
	BToAKey string `toml:"b_to_a_key"`
	Perm    string `toml:"perm"`
}

// Handshake contains the joiner's discovery settings.
type Handshake struct {
	MaxWaitAttempts  int    `toml:"max_wait_attempts"`
	DiscoverInterval string `toml:"discover_interval"`
}

// Chat contains the console and messaging settings.
type Chat struct {
	PollInterval    string `toml:"poll_interval"`
	FarewellLinger  string `toml:"farewell_linger"`
	QuitToken       string `toml:"quit_token"`
	InitiatorLabel  string `toml:"initiator_label"`
	JoinerLabel     string `toml:"joiner_label"`
	InitiatorPrompt string `toml:"initiator_prompt"`
	JoinerPrompt    string `toml:"joiner_prompt"`
	Prompt          string `toml:"prompt"`
	Color           string `toml:"color"`
}

// Logging contains diagnostic log settings.
type Logging struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// Config is the full duplexchat configuration.
type Config struct {
	Queues    Queues    `toml:"queues"`
	Handshake Handshake `toml:"handshake"`
	Chat      Chat      `toml:"chat"`
	Logging   Logging   `toml:"logging"`
	LockDir   string    `toml:"lock_dir"`
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/duplexchat/config.toml.
func DefaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Wrap(err, "resolve config dir")
	}
	return filepath.Join(dir, "duplexchat", "config.toml"), nil
}

// Load reads the configuration from path, or from the default location if path is empty.
// It returns the config, the resolved path and whether the file existed.
// A missing file at the default location is not an error.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, errors.Wrap(err, "open config")
		}
		defer file.Close()

		decoder := toml.NewDecoder(file).DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, errors.Wrap(err, "parse config")
		}
	}

	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	explicit := path != ""
	if !explicit {
		var err error
		if path, err = DefaultConfigPath(); err != nil {
			return "", false, err
		}
	}
	_, err := os.Stat(path)
	switch {
	case err == nil:
		return path, true, nil
	case os.IsNotExist(err) && !explicit:
		return path, false, nil
	case os.IsNotExist(err):
		return "", false, errors.Errorf("config file %s does not exist", path)
	default:
		return "", false, errors.Wrap(err, "stat config")
	}
}

// Encode writes the configuration as TOML.
func (c *Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// QueueKeys returns the parsed keys of the A->B and B->A queues.
func (c *Config) QueueKeys() (aToB, bToA common.Key, err error) {
	if aToB, err = common.ParseKey(c.Queues.AToBKey); err != nil {
		return 0, 0, errors.Wrap(err, "queues.a_to_b_key")
	}
	if bToA, err = common.ParseKey(c.Queues.BToAKey); err != nil {
		return 0, 0, errors.Wrap(err, "queues.b_to_a_key")
	}
	return aToB, bToA, nil
}

// Permissions returns queue permissions.
func (c *Config) Permissions() (os.FileMode, error) {
	v, err := strconv.ParseUint(c.Queues.Perm, 8, 32)
	if err != nil {
		return 0, errors.Wrapf(err, "queues.perm %q", c.Queues.Perm)
	}
	return os.FileMode(v), nil
}

// DiscoverInterval returns the delay between two discovery attempts.
func (c *Config) DiscoverInterval() time.Duration {
	d, _ := time.ParseDuration(c.Handshake.DiscoverInterval)
	return d
}

// FarewellLinger returns how long a quitting process waits for the peer
// to read the farewell before removing its queue.
func (c *Config) FarewellLinger() time.Duration {
	d, _ := time.ParseDuration(c.Chat.FarewellLinger)
	return d
}

// PollInterval returns the delay between two receive attempts on an empty queue.
func (c *Config) PollInterval() time.Duration {
	d, _ := time.ParseDuration(c.Chat.PollInterval)
	return d
}
