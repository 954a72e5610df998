package validator

import (
	"errors"
	"strings"
)

type validationErrors struct {
	fields []FieldError
}

func (ve *validationErrors) Error() string {
	msgs := make([]string, 0, len(ve.fields))
	for _, f := range ve.fields {
		msgs = append(msgs, f.Message())
	}
	return strings.Join(msgs, "; ")
}

func (ve *validationErrors) Errors() []FieldError {
	return ve.fields
}

type fieldError struct {
	field   string
	tag     string
	value   any
	message string
}

func (fe *fieldError) Field() string   { return fe.field }
func (fe *fieldError) Tag() string     { return fe.tag }
func (fe *fieldError) Value() any      { return fe.value }
func (fe *fieldError) Message() string { return fe.message }

// HasFieldError reports whether err, or an error it wraps, contains a
// failure for field
func HasFieldError(err error, field string) bool {
	var ve ValidationErrors
	if !errors.As(err, &ve) {
		return false
	}
	for _, fe := range ve.Errors() {
		if fe.Field() == field {
			return true
		}
	}
	return false
}
