package fetch

import (
	"bytes"
	"net/http"
	"net/url"
	"time"

	khttp "github.com/kochabx/dashkit/core/net/http"
	"github.com/kochabx/dashkit/log"
)

// Outcome classifies a finished call for observers
type Outcome string

const (
	OutcomeOK          Outcome = "ok"
	OutcomeEmpty       Outcome = "empty"
	OutcomeTransport   Outcome = "transport"
	OutcomeApplication Outcome = "application"
	OutcomeDecode      Outcome = "decode"
)

// Observer is told about every finished call; the metrics package implements it
type Observer interface {
	Observe(route string, outcome Outcome, status int, elapsed time.Duration)
}

// ObserverFunc adapts a function to Observer
type ObserverFunc func(route string, outcome Outcome, status int, elapsed time.Duration)

func (f ObserverFunc) Observe(route string, outcome Outcome, status int, elapsed time.Duration) {
	f(route, outcome, status, elapsed)
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.transportOpts = append(c.transportOpts, khttp.WithClient(client))
	}
}

// WithObserver reports every call outcome to o
func WithObserver(o Observer) Option {
	return func(c *Client) {
		c.observer = o
	}
}

// WithLogger sets the logger failures are written to; log.G by default
func WithLogger(logger *log.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithDefaultHeaders sends header on every request
func WithDefaultHeaders(header map[string]string) Option {
	return func(c *Client) {
		c.transportOpts = append(c.transportOpts, khttp.WithDefaultHeaders(header))
	}
}

// WithBasicAuth authenticates every request
func WithBasicAuth(username, password string) Option {
	return func(c *Client) {
		c.transportOpts = append(c.transportOpts, khttp.WithBasicAuth(username, password))
	}
}

type request struct {
	method string
	body   any
	header map[string]string
	query  url.Values
	route  string
}

// RequestOption configures a single call
type RequestOption func(*request)

// WithMethod sets the HTTP method. Without it a call is a GET, or a POST when
// it has a body.
func WithMethod(method string) RequestOption {
	return func(r *request) {
		r.method = method
	}
}

// WithBody sets the request body. Readers and byte slices are sent as is,
// anything else is encoded as JSON.
func WithBody(body any) RequestOption {
	return func(r *request) {
		if b, ok := body.([]byte); ok {
			body = bytes.NewReader(b)
		}
		r.body = body
	}
}

// WithHeader adds headers; they win over the JSON content type and client defaults
func WithHeader(header map[string]string) RequestOption {
	return func(r *request) {
		if r.header == nil {
			r.header = make(map[string]string, len(header))
		}
		for k, v := range header {
			r.header[k] = v
		}
	}
}

// WithQuery adds query parameters
func WithQuery(query url.Values) RequestOption {
	return func(r *request) {
		if r.query == nil {
			r.query = make(url.Values, len(query))
		}
		for k, vs := range query {
			r.query[k] = append(r.query[k], vs...)
		}
	}
}

// WithRoute labels the call for observers, e.g. "/settings/locations/:id".
// The path is used when unset.
func WithRoute(route string) RequestOption {
	return func(r *request) {
		r.route = route
	}
}

func (r *request) transportOptions() []khttp.RequestOptionFunc {
	var opts []khttp.RequestOptionFunc
	if len(r.header) > 0 {
		opts = append(opts, khttp.WithHeader(r.header))
	}
	if len(r.query) > 0 {
		opts = append(opts, khttp.WithQuery(r.query))
	}
	return opts
}
