// Package logging builds the application logger.
package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"
)

// Options selects the logger's level and destination.
type Options struct {
	Level string // debug, info, warn or error; empty means info
	File  string // empty writes to stderr
}

// New creates a logger with timestamps. When opts.File is set, the file is
// opened for appending and must be released with the returned closer.
func New(opts Options) (*log.Logger, io.Closer, error) {
	var (
		w      io.Writer = os.Stderr
		closer io.Closer = nopCloser{}
	)
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return nil, nil, errors.Wrap(err, "create log directory")
		}
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "open log file %s", opts.File)
		}
		w, closer = f, f
	}

	level := log.InfoLevel
	if opts.Level != "" {
		l, err := log.ParseLevel(opts.Level)
		if err != nil {
			_ = closer.Close()
			return nil, nil, errors.Wrapf(err, "log level %q", opts.Level)
		}
		level = l
	}

	logger := NewWriter(w)
	logger.SetLevel(level)
	return logger, closer, nil
}

// NewWriter creates a logger writing to w, with timestamps enabled.
// The writer defaults to os.Stderr.
func NewWriter(w io.Writer) *log.Logger {
	if w == nil {
		w = os.Stderr
	}
	return log.NewWithOptions(w, log.Options{ReportTimestamp: true})
}

// Discard returns a logger that drops everything, for tests.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
