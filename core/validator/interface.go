package validator

import (
	"context"

	"github.com/go-playground/validator/v10"
)

// Validator validates structs against their `validate` tags
type Validator interface {
	Struct(s any) error
	StructCtx(ctx context.Context, s any) error
	// Engine exposes the underlying go-playground instance for custom rules
	Engine() *validator.Validate
}

// ValidationErrors is returned when one or more fields fail validation
type ValidationErrors interface {
	error
	Errors() []FieldError
}

// FieldError describes a single failed rule
type FieldError interface {
	Field() string
	Tag() string
	Value() any
	Message() string
}

// Option configures a validator
type Option func(*validatorImpl)

// WithTagName sets the struct tag the validator reads
func WithTagName(tagName string) Option {
	return func(v *validatorImpl) {
		v.validate.SetTagName(tagName)
	}
}
