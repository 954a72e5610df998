package errors

import (
	goerrors "errors"
)

// MetadataPath is the metadata key holding the backend path a failure came from
const MetadataPath = "path"

// Unwrap, Is, As and Join forward to the standard library so callers need
// only this package.
func Unwrap(err error) error { return goerrors.Unwrap(err) }

func Is(err, target error) bool { return goerrors.Is(err, target) }

func As(err error, target any) bool { return goerrors.As(err, target) }

func Join(errs ...error) error { return goerrors.Join(errs...) }

// Path returns the backend path recorded on the first *Error in err's chain,
// or "" when there is none.
func Path(err error) string {
	var e *Error
	if !As(err, &e) {
		return ""
	}
	return e.Metadata[MetadataPath]
}
