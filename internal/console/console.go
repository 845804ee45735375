package console

import (
	"fmt"
	"io"
)

// Logger writes leveled, human-readable messages to a single writer.
// The zero value discards everything.
type Logger struct {
	w io.Writer
}

// New returns a Logger writing to w.
func New(w io.Writer) Logger {
	return Logger{w: w}
}

// Info reports normal progress.
func (l Logger) Info(message string) {
	l.write("info", message)
}

// Warn reports a problem that does not stop the operation.
func (l Logger) Warn(message string) {
	l.write("warn", message)
}

// Error reports a fatal problem.
func (l Logger) Error(message string) {
	l.write("error", message)
}

func (l Logger) write(level, message string) {
	if l.w == nil {
		return
	}
	_, _ = fmt.Fprintf(l.w, "[%s] %s\n", level, message)
}
