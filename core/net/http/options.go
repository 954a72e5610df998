package http

import (
	"maps"
	"net/http"
	"net/url"
)

// Option configures the HTTP client
type Option func(*Client)

// WithClient sets a custom HTTP client
func WithClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.client = client
		}
	}
}

// WithDefaultHeaders sets headers sent on every request. They override the
// JSON content type and are overridden by per-request headers.
func WithDefaultHeaders(header map[string]string) Option {
	return func(c *Client) {
		for k, v := range header {
			c.header[http.CanonicalHeaderKey(k)] = v
		}
	}
}

// WithBasicAuth authenticates every request
func WithBasicAuth(username, password string) Option {
	return func(c *Client) {
		c.auth = &basicAuth{username: username, password: password}
	}
}

// WithRequestID toggles the generated X-Request-Id header. Enabled by default.
func WithRequestID(enabled bool) Option {
	return func(c *Client) {
		c.requestID = enabled
	}
}

// RequestOption holds options for individual HTTP requests
type RequestOption struct {
	header map[string]string
	query  url.Values
}

// RequestOptionFunc configures a single request
type RequestOptionFunc func(*RequestOption)

// WithHeader sets multiple headers for the request
func WithHeader(header map[string]string) RequestOptionFunc {
	return func(opt *RequestOption) {
		for k, v := range header {
			opt.header[http.CanonicalHeaderKey(k)] = v
		}
	}
}

// WithQuery adds query parameters to the request URL
func WithQuery(query url.Values) RequestOptionFunc {
	return func(opt *RequestOption) {
		for k, vs := range query {
			opt.query[k] = append(opt.query[k], vs...)
		}
	}
}

// reset clears the option for reuse and restores the JSON content type
func (opt *RequestOption) reset(defaults map[string]string) {
	clear(opt.header)
	clear(opt.query)
	opt.header[HeaderContentType] = ContentTypeJSON
	maps.Copy(opt.header, defaults)
}
