// Copyright 2016 Aleksandr Demakin. All rights reserved.

package main

import (
	"io"
	"os"

	"github.com/nxgtw/duplexchat/internal/config"
	"github.com/nxgtw/duplexchat/internal/logging"

	"github.com/mattn/go-isatty"
	log "github.com/sirupsen/logrus"
)

type commandContext struct {
	configFlag  *string
	debugFlag   *bool
	logFileFlag *string

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	config     *config.Config
	configPath string
}

func newCommandContext(configFlag *string, debugFlag *bool, logFileFlag *string, stdin io.Reader, stdout, stderr io.Writer) *commandContext {
	return &commandContext{
		configFlag:  configFlag,
		debugFlag:   debugFlag,
		logFileFlag: logFileFlag,
		stdin:       stdin,
		stdout:      stdout,
		stderr:      stderr,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	if c.config != nil {
		return c.config, nil
	}
	cfg, path, _, err := config.Load(*c.configFlag)
	if err != nil {
		return nil, err
	}
	c.config = cfg
	c.configPath = path
	return cfg, nil
}

func (c *commandContext) newLogger() (*log.Logger, io.Closer, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, err
	}
	opts := logging.Options{Level: cfg.Logging.Level, File: cfg.Logging.File, Stderr: c.stderr}
	if *c.debugFlag {
		opts.Level = log.DebugLevel.String()
	}
	if *c.logFileFlag != "" {
		opts.File = *c.logFileFlag
	}
	return logging.New(opts)
}

// enabled resolves an auto/always/never mode against whether stream is a terminal.
func enabled(mode string, stream interface{}) bool {
	switch mode {
	case config.ModeAlways:
		return true
	case config.ModeNever:
		return false
	}
	return isTerminal(stream)
}

func isTerminal(stream interface{}) bool {
	file, ok := stream.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
