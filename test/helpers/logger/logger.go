// Package logger creates loggers for tests.
package logger

import (
	"bytes"
	"io"

	"github.com/keyboardio/testplan/pkg/log"
)

// CreateLogger returns a debug level logger that discards its output.
func CreateLogger() log.Logger {
	return log.New(
		log.WithOutput(io.Discard),
		log.WithLevel(log.DebugLevel),
		log.WithFormatter(log.NewTextFormatter().DisableColors()),
	)
}

// CreateRecordingLogger returns a debug level logger writing uncolored text to the returned buffer.
func CreateRecordingLogger() (log.Logger, *bytes.Buffer) {
	buf := new(bytes.Buffer)

	return log.New(
		log.WithOutput(buf),
		log.WithLevel(log.DebugLevel),
		log.WithFormatter(log.NewTextFormatter().DisableColors()),
	), buf
}
