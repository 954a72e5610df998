// Package errors is the error type every dashkit failure is reported as: an
// HTTP-style code, a message, a Kind saying where the call broke, string
// metadata such as the backend path, and an optional cause.
package errors

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// UnknownCode is used for errors that did not originate as *Error
const UnknownCode = 500

// Status is the serializable part of an Error
type Status struct {
	Code     int               `json:"code,omitempty"`
	Message  string            `json:"message,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Error values are immutable: the With* methods return copies.
type Error struct {
	Status
	kind  Kind
	cause error
}

// Error renders "code=.., kind=.., message=.., metadata={k=v}, cause=..",
// metadata keys sorted.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("code=")
	b.WriteString(strconv.Itoa(e.Code))
	if e.kind != KindUnknown {
		b.WriteString(", kind=")
		b.WriteString(string(e.kind))
	}
	b.WriteString(", message=")
	b.WriteString(e.Message)

	if len(e.Metadata) > 0 {
		b.WriteString(", metadata={")
		for i, k := range slices.Sorted(maps.Keys(e.Metadata)) {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(k)
			b.WriteByte('=')
			b.WriteString(e.Metadata[k])
		}
		b.WriteByte('}')
	}

	if e.cause != nil {
		b.WriteString(", cause=")
		b.WriteString(e.cause.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.cause
}

// WithMetadata returns a copy with m merged into the metadata
func (e *Error) WithMetadata(m map[string]string) *Error {
	if len(m) == 0 {
		return e
	}
	err := e.clone()
	if err.Metadata == nil {
		err.Metadata = make(map[string]string, len(m))
	}
	maps.Copy(err.Metadata, m)
	return err
}

// WithCause returns a copy wrapping cause
func (e *Error) WithCause(cause error) *Error {
	if cause == nil {
		return e
	}
	err := e.clone()
	err.cause = cause
	return err
}

// WithKind returns a copy classified as kind
func (e *Error) WithKind(kind Kind) *Error {
	if e.kind == kind {
		return e
	}
	err := e.clone()
	err.kind = kind
	return err
}

func (e *Error) clone() *Error {
	c := *e
	c.Metadata = maps.Clone(e.Metadata)
	return &c
}

// Is matches any *Error with the same code and message, so sentinel values
// built with New work with errors.Is
func (e *Error) Is(err error) bool {
	var ge *Error
	if !errors.As(err, &ge) {
		return false
	}
	return e.Code == ge.Code && e.Message == ge.Message
}

func (e *Error) GetCode() int       { return e.Code }
func (e *Error) GetMessage() string { return e.Message }
func (e *Error) GetKind() Kind      { return e.kind }
func (e *Error) GetCause() error    { return e.cause }

// GetMetadata returns a copy, nil when there is none
func (e *Error) GetMetadata() map[string]string {
	if len(e.Metadata) == 0 {
		return nil
	}
	return maps.Clone(e.Metadata)
}

// New formats the message only when args are given, so a literal % is safe
// without them
func New(code int, format string, args ...any) *Error {
	message := format
	if len(args) > 0 {
		message = fmt.Sprintf(format, args...)
	}
	return &Error{Status: Status{Code: code, Message: message}}
}

// FromError returns the first *Error in err's chain, or wraps err with
// UnknownCode. It returns nil for nil.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var ge *Error
	if errors.As(err, &ge) {
		return ge
	}
	return New(UnknownCode, "%v", err).WithCause(err)
}

// Wrap returns nil for a nil err
func Wrap(err error, code int, format string, args ...any) *Error {
	if err == nil {
		return nil
	}
	return New(code, format, args...).WithCause(err)
}
