package errors

import "net/http"

// Kind classifies how a backend call failed.
type Kind string

const (
	KindUnknown Kind = ""
	// KindTransport means no response was obtained.
	KindTransport Kind = "transport"
	// KindApplication means a response arrived but reported failure.
	KindApplication Kind = "application"
	// KindDecode means a response body arrived that could not be read.
	KindDecode Kind = "decode"
)

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if As(err, &e) {
		return e.kind
	}
	return KindUnknown
}

// IsTransport reports whether err is a transport failure.
func IsTransport(err error) bool { return KindOf(err) == KindTransport }

// IsApplication reports whether err is an application-level failure.
func IsApplication(err error) bool { return KindOf(err) == KindApplication }

// IsDecode reports whether err is a decode failure.
func IsDecode(err error) bool { return KindOf(err) == KindDecode }

// Transport builds a transport failure
func Transport(cause error, format string, args ...any) *Error {
	return New(http.StatusServiceUnavailable, format, args...).
		WithKind(KindTransport).
		WithCause(cause)
}

// Application builds an application failure with the status reported by the backend
func Application(code int, format string, args ...any) *Error {
	return New(code, format, args...).WithKind(KindApplication)
}

// Decode builds a decode failure
func Decode(cause error, format string, args ...any) *Error {
	return New(http.StatusBadGateway, format, args...).
		WithKind(KindDecode).
		WithCause(cause)
}

func BadRequest(format string, args ...any) *Error {
	return New(http.StatusBadRequest, format, args...)
}

func NotFound(format string, args ...any) *Error {
	return New(http.StatusNotFound, format, args...)
}

func UnprocessableEntity(format string, args ...any) *Error {
	return New(http.StatusUnprocessableEntity, format, args...)
}

func Internal(format string, args ...any) *Error {
	return New(http.StatusInternalServerError, format, args...)
}
