// internal/cmdutil/log.go
package cmdutil

import (
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"
)

// Logger is the per-run log sink handed to every stage. It never touches
// process-wide state; the zero value discards everything.
type Logger struct {
	mu      sync.Mutex
	dst     io.Writer
	quiet   bool
	verbose bool
	runID   string
}

// NewLogger returns a Logger writing to dst. quiet silences INFO and WARN;
// verbose enables DEBUG.
func NewLogger(dst io.Writer, quiet, verbose bool) *Logger {
	return &Logger{dst: dst, quiet: quiet, verbose: verbose, runID: uuid.NewString()}
}

// Discard returns a Logger that drops all output.
func Discard() *Logger { return &Logger{dst: io.Discard, quiet: true} }

// RunID identifies this run in logs and reports.
func (l *Logger) RunID() string { return l.runID }

// Writer exposes the sink for progress bars; it returns io.Discard when quiet.
func (l *Logger) Writer() io.Writer {
	if l == nil || l.quiet || l.dst == nil {
		return io.Discard
	}
	return l.dst
}

// Quiet reports whether non-essential output is suppressed.
func (l *Logger) Quiet() bool { return l == nil || l.quiet }

// Verbose reports whether DEBUG lines are written.
func (l *Logger) Verbose() bool { return l != nil && l.verbose }

func (l *Logger) Infof(format string, a ...any) {
	if l.Quiet() {
		return
	}
	l.printf("INFO", format, a...)
}

func (l *Logger) Warnf(format string, a ...any) {
	if l.Quiet() {
		return
	}
	l.printf("WARN", format, a...)
}

func (l *Logger) Debugf(format string, a ...any) {
	if !l.Verbose() {
		return
	}
	l.printf("DEBUG", format, a...)
}

func (l *Logger) printf(level, format string, a ...any) {
	if l.dst == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = fmt.Fprintf(l.dst, level+": "+format+"\n", a...)
}
