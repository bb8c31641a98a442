// Copyright 2016 Aleksandr Demakin. All rights reserved.

// Package logging configures the diagnostic logger.
// Chat transcript goes to the console, diagnostics go through logrus.
package logging

import (
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Field names shared by all log entries.
const (
	FieldRole    = "role"
	FieldSession = "session"
	FieldQueue   = "queue"
	FieldKey     = "key"
)

// Options controls logger construction.
type Options struct {
	Level string
	File  string
	// Stderr is used when File is empty.
	Stderr io.Writer
}

// New returns a logger writing to File, or to Stderr.
// The returned closer releases the log file, if one was opened.
func New(opts Options) (*log.Logger, io.Closer, error) {
	level, err := log.ParseLevel(opts.Level)
	if err != nil {
		return nil, nil, errors.Wrap(err, "parse log level")
	}
	logger := log.New()
	logger.SetLevel(level)
	logger.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	var closer io.Closer = nopCloser{}
	switch {
	case opts.File != "":
		file, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, errors.Wrap(err, "open log file")
		}
		logger.SetOutput(file)
		closer = file
	case opts.Stderr != nil:
		logger.SetOutput(opts.Stderr)
	default:
		logger.SetOutput(os.Stderr)
	}
	return logger, closer, nil
}

// ForSession returns an entry tagged with the role and a fresh session id.
func ForSession(logger log.FieldLogger, role string) *log.Entry {
	return logger.WithFields(log.Fields{
		FieldRole:    role,
		FieldSession: uuid.NewString(),
	})
}

// Discard returns a logger which drops everything.
func Discard() *log.Logger {
	logger := log.New()
	logger.SetOutput(io.Discard)
	return logger
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
