package log

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"

	"github.com/kochabx/dashkit/core/tag"
	"github.com/kochabx/dashkit/log/desensitize"
	"github.com/kochabx/dashkit/log/writer"
)

// Logger wraps zerolog with optional PII masking and an owned file writer.
type Logger struct {
	zerolog.Logger
	desensitizeHook *desensitize.Hook
	closer          io.Closer
}

// Close releases the file writer, if any.
func (l *Logger) Close() error {
	if l.closer != nil {
		return l.closer.Close()
	}
	return nil
}

func init() {
	zerolog.TimeFieldFormat = time.DateTime
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
}

func newLogger(w io.Writer, opts ...Option) *Logger {
	logger := &Logger{
		Logger: zerolog.New(w).With().Timestamp().Logger(),
	}
	for _, opt := range opts {
		opt(logger)
	}

	// the masking writer has to sit under the logger, so rebuild and replay
	if logger.desensitizeHook != nil {
		dw := desensitize.NewWriter(w, logger.desensitizeHook)
		logger.Logger = zerolog.New(dw).With().Timestamp().Logger()
		for _, opt := range opts {
			opt(logger)
		}
	}

	return logger
}

// New creates a console logger.
func New(opts ...Option) *Logger {
	return newLogger(writer.Console(), opts...)
}

// NewWriter creates a logger on an arbitrary writer; tests use it with a buffer.
func NewWriter(w io.Writer, opts ...Option) *Logger {
	return newLogger(w, opts...)
}

// NewFile creates a logger writing to a rotated file.
func NewFile(c FileConfig, opts ...Option) (*Logger, error) {
	if err := tag.ApplyDefaults(&c); err != nil {
		return nil, fmt.Errorf("failed to apply defaults: %w", err)
	}

	w, err := writer.File(c.toWriterConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create file writer: %w", err)
	}

	logger := newLogger(w, opts...)
	if closer, ok := w.(io.Closer); ok {
		logger.closer = closer
	}
	return logger, nil
}

// NewMulti creates a logger writing to both a rotated file and the console.
func NewMulti(c FileConfig, opts ...Option) (*Logger, error) {
	if err := tag.ApplyDefaults(&c); err != nil {
		return nil, fmt.Errorf("failed to apply defaults: %w", err)
	}

	fw, err := writer.File(c.toWriterConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create file writer: %w", err)
	}

	logger := newLogger(zerolog.MultiLevelWriter(fw, writer.Console()), opts...)
	if closer, ok := fw.(io.Closer); ok {
		logger.closer = closer
	}
	return logger, nil
}

// FromConfig builds the logger described by c: console only unless a file
// output is enabled, with contact data masking when requested. extra is
// applied after the options c implies.
func FromConfig(c Config, extra ...Option) (*Logger, error) {
	if c.Level == "" {
		c.Level = zerolog.InfoLevel.String()
	}
	level, err := zerolog.ParseLevel(strings.ToLower(c.Level))
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", c.Level, err)
	}

	opts := []Option{WithLevel(level)}
	if c.Caller {
		opts = append(opts, WithCaller())
	}
	if c.Desensitize {
		hook := desensitize.NewHook()
		hook.AddBuiltin(desensitize.BuiltinRules()...)
		opts = append(opts, WithDesensitize(hook))
	}
	opts = append(opts, extra...)

	switch c.Output {
	case OutputFile:
		return NewFile(c.File, opts...)
	case OutputBoth:
		return NewMulti(c.File, opts...)
	default:
		return New(opts...), nil
	}
}
