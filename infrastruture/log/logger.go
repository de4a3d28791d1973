// Package logger provides colored, prefixed loggers for the application's components.
package logger

import (
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/beka-birhanu/circuit-maze/interfaces/general"
)

const (
	errorColor   = "\033[31m"
	warningColor = "\033[33m"
	infoColor    = "\033[32m"
	colorReset   = "\033[0m"
)

var _ general.Logger = &Logger{}

// Logger prefixes every line with a colored component name and a colored level tag.
type Logger struct {
	out *log.Logger
}

// New creates a Logger for the component named prefix.
// color is an ANSI escape sequence used for the prefix; it may be empty.
func New(prefix, color string, w io.Writer) (*Logger, error) {
	if prefix == "" {
		return nil, errors.New("logger prefix is required")
	}
	if w == nil {
		return nil, errors.New("logger writer is required")
	}

	tag := fmt.Sprintf("[%s] ", prefix)
	if color != "" {
		tag = fmt.Sprintf("%s[%s]%s ", color, prefix, colorReset)
	}
	return &Logger{out: log.New(w, tag, log.LstdFlags)}, nil
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.out.Printf("%s[INFO]%s %s", infoColor, colorReset, msg)
}

// Warning logs a recoverable problem.
func (l *Logger) Warning(msg string) {
	l.out.Printf("%s[WARNING]%s %s", warningColor, colorReset, msg)
}

// Error logs a failure.
func (l *Logger) Error(msg string) {
	l.out.Printf("%s[ERROR]%s %s", errorColor, colorReset, msg)
}
