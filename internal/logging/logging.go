// Package logging provides Focus's logging infrastructure built on charmbracelet/log.
//
// It wraps charmbracelet/log to provide a centralized logger factory with
// component prefixes and level configuration. Log output goes to stderr;
// stdout is reserved for script snapshots and other structured output. While
// the full-screen UI owns the terminal, Redirect moves log output to a file
// or discards it.
//
// Usage:
//
//	// During CLI initialization (PersistentPreRun):
//	logging.Setup(logging.Options{Level: cfg.Log.Level, Verbose: verbose})
//
//	// In each package:
//	logger := logging.New("store")
//	logger.Debug("task added", "id", id)
//
// Setup (and Redirect) must be called before New. The charmbracelet/log
// library creates child loggers by copying state at creation time; later
// changes to the default logger do not propagate to existing children.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// Level aliases for charmbracelet/log levels.
// Re-exported so consumers do not need to import charmbracelet/log directly.
const (
	LevelDebug = log.DebugLevel
	LevelInfo  = log.InfoLevel
	LevelWarn  = log.WarnLevel
	LevelError = log.ErrorLevel
)

// Options configures the global logger.
type Options struct {
	// Level is a level name from configuration (debug, info, warn, error).
	// Empty means info.
	Level string
	// Verbose forces the debug level.
	Verbose bool
	// Quiet forces the error level. Quiet wins over Verbose and Level.
	Quiet bool
	// JSON switches to the JSON formatter.
	JSON bool
}

// Setup configures the global logging defaults. Call once during CLI
// initialization. An unrecognized Level name is reported as an error and
// the info level is used instead; the flags still apply.
func Setup(opts Options) error {
	level, err := ParseLevel(opts.Level)
	if opts.Verbose {
		level = log.DebugLevel
	}
	if opts.Quiet {
		level = log.ErrorLevel
	}

	log.SetLevel(level)
	log.SetOutput(os.Stderr)

	if opts.JSON {
		log.SetFormatter(log.JSONFormatter)
	} else {
		log.SetFormatter(log.TextFormatter)
	}
	return err
}

// ParseLevel converts a level name into a log.Level. The empty string maps
// to info.
func ParseLevel(name string) (log.Level, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return log.InfoLevel, nil
	}
	level, err := log.ParseLevel(name)
	if err != nil || level == log.FatalLevel {
		return log.InfoLevel, fmt.Errorf("unknown log level %q", name)
	}
	return level, nil
}

// New creates a logger with the given component prefix.
//
// The returned logger inherits global level and output settings from the
// default logger at creation time. An empty component string produces a
// logger without a prefix.
func New(component string) *log.Logger {
	return log.WithPrefix(component)
}

// SetOutput overrides the output writer for the default logger.
//
// This is primarily useful for testing, where output can be captured
// with a bytes.Buffer. Remember to restore the original output using
// t.Cleanup.
func SetOutput(w io.Writer) {
	log.SetOutput(w)
}

// Redirect sends default logger output to the file at path (appending), or
// discards it when path is empty. The returned restore function points the
// logger back at stderr and closes the file.
func Redirect(path string) (restore func(), err error) {
	if path == "" {
		log.SetOutput(io.Discard)
		return func() { log.SetOutput(os.Stderr) }, nil
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("opening log file %s: %w", path, err)
	}
	log.SetOutput(f)
	return func() {
		log.SetOutput(os.Stderr)
		_ = f.Close()
	}, nil
}
