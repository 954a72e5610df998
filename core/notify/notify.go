// Package notify delivers short user-facing notices, the toasts a dashboard
// shows when a call fails or a save succeeds.
package notify

import (
	"github.com/kochabx/dashkit/log"
)

// Level of a notification
type Level string

const (
	LevelError Level = "error"
	LevelInfo  Level = "info"
)

// Notifier receives transient user-facing notices. Implementations must be
// safe for concurrent use.
type Notifier interface {
	Error(msg string)
	Info(msg string)
}

// Nop discards every notice
var Nop Notifier = nop{}

type nop struct{}

func (nop) Error(string) {}
func (nop) Info(string)  {}

// Func adapts a single function to Notifier
type Func func(level Level, msg string)

func (f Func) Error(msg string) { f(LevelError, msg) }
func (f Func) Info(msg string)  { f(LevelInfo, msg) }

// Multi fans a notice out to every notifier
func Multi(notifiers ...Notifier) Notifier {
	out := make(multi, 0, len(notifiers))
	for _, n := range notifiers {
		if n != nil {
			out = append(out, n)
		}
	}
	return out
}

type multi []Notifier

func (m multi) Error(msg string) {
	for _, n := range m {
		n.Error(msg)
	}
}

func (m multi) Info(msg string) {
	for _, n := range m {
		n.Info(msg)
	}
}

// Logger writes notices to a structured logger
type Logger struct {
	logger *log.Logger
}

// NewLogger uses log.G when logger is nil
func NewLogger(logger *log.Logger) *Logger {
	if logger == nil {
		logger = log.G
	}
	return &Logger{logger: logger}
}

func (l *Logger) Error(msg string) {
	l.logger.Error().Str("notice", string(LevelError)).Msg(msg)
}

func (l *Logger) Info(msg string) {
	l.logger.Info().Str("notice", string(LevelInfo)).Msg(msg)
}
