package http

import (
	"context"
	"net/http"
)

// Clienter defines the interface for HTTP client operations
type Clienter interface {
	Request(ctx context.Context, method, url string, body any, opts ...RequestOptionFunc) (*http.Response, error)
}
