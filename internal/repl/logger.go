package repl

import (
	"fmt"
	"io"
	"os"
)

// ANSI color codes
const (
	colorReset = "\033[0m"
	colorRed   = "\033[31m"
	colorGreen = "\033[32m"
	colorGray  = "\033[90m"
)

// Logger writes command output and status messages of a REPL session.
type Logger struct {
	useColor bool
	out      io.Writer
	status   io.Writer
}

// NewLogger creates a logger writing command output to stdout and status
// messages to stderr.
func NewLogger(useColor bool) *Logger {
	return NewLoggerWithWriter(useColor, os.Stdout, os.Stderr)
}

// NewLoggerWithWriter creates a logger with custom writers.
func NewLoggerWithWriter(useColor bool, out, status io.Writer) *Logger {
	return &Logger{useColor: useColor, out: out, status: status}
}

// SetWriter redirects both output streams.
func (l *Logger) SetWriter(w io.Writer) {
	l.out = w
	l.status = w
}

// Output writes user-facing output without a trailing newline.
func (l *Logger) Output(format string, args ...interface{}) {
	fmt.Fprintf(l.out, format, args...)
}

// OutputLine writes user-facing output with a newline.
func (l *Logger) OutputLine(format string, args ...interface{}) {
	fmt.Fprintf(l.out, format+"\n", args...)
}

// colorize applies color to text if colors are enabled
func (l *Logger) colorize(text, colorCode string) string {
	if !l.useColor {
		return text
	}
	return fmt.Sprintf("%s%s%s", colorCode, text, colorReset)
}

// Info logs an informational message
func (l *Logger) Info(format string, args ...interface{}) {
	fmt.Fprintln(l.status, l.colorize(fmt.Sprintf(format, args...), colorGray))
}

// Error logs an error message
func (l *Logger) Error(format string, args ...interface{}) {
	fmt.Fprintln(l.status, l.colorize(fmt.Sprintf(format, args...), colorRed))
}

// Success logs a success message
func (l *Logger) Success(format string, args ...interface{}) {
	fmt.Fprintln(l.status, l.colorize(fmt.Sprintf(format, args...), colorGreen))
}

// Colored reports whether ANSI styling is enabled.
func (l *Logger) Colored() bool {
	return l.useColor
}
