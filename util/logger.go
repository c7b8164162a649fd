// Package util provides low-level helpers shared by all other packages.
package util

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// LogLevel controls diagnostic verbosity.  Diagnostics always go to the
// logger's own writer (stderr), never to the operator's chat display.
type LogLevel int

const (
	LogQuiet   LogLevel = 0
	LogNormal  LogLevel = 1
	LogVerbose LogLevel = 2
	LogDebug   LogLevel = 3
)

var levelTags = map[LogLevel]string{
	LogQuiet:   "ERR",
	LogNormal:  "INF",
	LogVerbose: "VRB",
	LogDebug:   "DBG",
}

// Logger writes levelled messages with optional timestamps.
// It is safe for concurrent use by the relay goroutines.
type Logger struct {
	mu         sync.Mutex
	level      LogLevel
	output     io.Writer
	timestamps bool
}

// NewLogger returns a Logger that prints messages at or below the given
// verbosity (0 = errors only, 1 = normal, 2 = verbose, 3 = debug).
func NewLogger(verbosity int) *Logger {
	if verbosity > int(LogDebug) {
		verbosity = int(LogDebug)
	}
	return &Logger{
		level:      LogLevel(verbosity),
		output:     os.Stderr,
		timestamps: verbosity >= int(LogDebug),
	}
}

// SetTimestamps enables or disables timestamp prefixes.
func (l *Logger) SetTimestamps(on bool) {
	l.mu.Lock()
	l.timestamps = on
	l.mu.Unlock()
}

// SetOutput overrides the output writer (default: os.Stderr).
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	l.output = w
	l.mu.Unlock()
}

// Level returns the current log level.
func (l *Logger) Level() LogLevel { return l.level }

// Enabled reports whether messages at lvl would be printed.
func (l *Logger) Enabled(lvl LogLevel) bool { return l.level >= lvl }

// Info prints at verbosity ≥ 1.
func (l *Logger) Info(format string, args ...interface{}) {
	l.logf(LogNormal, "", format, args...)
}

// Warn prints at verbosity ≥ 1 with a [WRN] tag.
func (l *Logger) Warn(format string, args ...interface{}) {
	l.logf(LogNormal, "WRN", format, args...)
}

// Verbose prints at verbosity ≥ 2.
func (l *Logger) Verbose(format string, args ...interface{}) {
	l.logf(LogVerbose, "", format, args...)
}

// Debug prints at verbosity ≥ 3.
func (l *Logger) Debug(format string, args ...interface{}) {
	l.logf(LogDebug, "", format, args...)
}

// Error always prints.
func (l *Logger) Error(format string, args ...interface{}) {
	l.logf(LogQuiet, "", format, args...)
}

func (l *Logger) logf(lvl LogLevel, tag, format string, args ...interface{}) {
	if l == nil || l.level < lvl {
		return
	}
	if tag == "" {
		tag = levelTags[lvl]
	}
	msg := fmt.Sprintf(format, args...)

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.timestamps {
		fmt.Fprintf(l.output, "%s [%s] %s\n", time.Now().Format("15:04:05.000"), tag, msg)
		return
	}
	fmt.Fprintf(l.output, "[%s] %s\n", tag, msg)
}
