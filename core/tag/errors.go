package tag

import (
	"fmt"
	"reflect"
)

var (
	ErrTargetMustBePointer = fmt.Errorf("target must be a pointer to struct")
	ErrUnsupportedType     = fmt.Errorf("unsupported type")
	ErrMaxDepthExceeded    = fmt.Errorf("max recursion depth exceeded")
)

// FieldError wraps an error with field path context
type FieldError struct {
	Path  string
	Kind  reflect.Kind
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %q (type: %s, default: %q): %v", e.Path, e.Kind, e.Value, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
