package log

import (
	"github.com/rs/zerolog"

	"github.com/kochabx/dashkit/log/desensitize"
)

// Option adjusts a Logger while it is built. Options may run twice when
// masking is on, so they must not accumulate state.
type Option func(*Logger)

func WithLevel(level zerolog.Level) Option {
	return func(l *Logger) { l.Logger = l.Logger.Level(level) }
}

func WithCaller() Option {
	return func(l *Logger) { l.Logger = l.Logger.With().Caller().Logger() }
}

// WithField stamps every line with key=value, e.g. app=dashkit
func WithField(key, value string) Option {
	return func(l *Logger) { l.Logger = l.Logger.With().Str(key, value).Logger() }
}

// WithDesensitize routes output through hook's rules
func WithDesensitize(hook *desensitize.Hook) Option {
	return func(l *Logger) { l.desensitizeHook = hook }
}
