// Package logger builds the structured logger shared by every component.
package logger

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/natefinch/lumberjack"
)

// Options configures the root logger
type Options struct {
	Level   string
	File    string
	MaxSize int // megabytes
	MaxAge  int // days
}

// New returns a leveled logger writing to stderr and, when opts.File is set,
// to a rotating log file. The returned closer releases the file.
func New(opts Options) (*log.Logger, io.Closer, error) {
	return newWithWriter(os.Stderr, opts)
}

func newWithWriter(console io.Writer, opts Options) (*log.Logger, io.Closer, error) {
	level := log.InfoLevel
	if opts.Level != "" {
		parsed, err := log.ParseLevel(opts.Level)
		if err != nil {
			return nil, nil, fmt.Errorf("log level: %w", err)
		}
		level = parsed
	}

	var out io.Writer = console
	var closer io.Closer = nopCloser{}
	if opts.File != "" {
		file := &lumberjack.Logger{
			Filename: opts.File,
			MaxSize:  opts.MaxSize,
			MaxAge:   opts.MaxAge,
		}
		out = io.MultiWriter(console, file)
		closer = file
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Level:           level,
	})
	return logger, closer, nil
}

// Discard returns a logger that drops everything, for tests
func Discard() *log.Logger {
	return log.New(io.Discard)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
