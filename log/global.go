package log

import (
	"github.com/rs/zerolog"
)

// G is the process-wide logger used by packages that are not handed one.
var G = New()

// SetGlobalLogger replaces G
func SetGlobalLogger(logger *Logger) {
	if logger != nil {
		G = logger
	}
}

// SetGlobalLevel changes the level of G
func SetGlobalLevel(level zerolog.Level) {
	G.Logger = G.Logger.Level(level)
}

func Debug() *zerolog.Event {
	return G.Debug()
}

func Info() *zerolog.Event {
	return G.Info()
}

func Warn() *zerolog.Event {
	return G.Warn()
}

// Error returns an error event with the stack attached
func Error() *zerolog.Event {
	return G.Error().Stack()
}

// Fatal returns a fatal event with the stack attached
func Fatal() *zerolog.Event {
	return G.Fatal().Stack()
}
