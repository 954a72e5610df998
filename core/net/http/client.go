package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"sync"

	"github.com/google/uuid"
)

const (
	defaultBufferSize = 4096
	maxBufferSize     = 1024 * 1024 // 1MB
)

type basicAuth struct {
	username string
	password string
}

// Client sends JSON requests with pooled request options and body buffers
type Client struct {
	client         *http.Client
	header         map[string]string
	auth           *basicAuth
	requestID      bool
	requestOptPool sync.Pool
	bufferPool     sync.Pool
}

// New creates a new HTTP client
func New(opts ...Option) *Client {
	c := &Client{
		client:    &http.Client{},
		header:    make(map[string]string),
		requestID: true,
		requestOptPool: sync.Pool{
			New: func() any {
				return &RequestOption{
					header: make(map[string]string, 8),
					query:  make(url.Values),
				}
			},
		},
		bufferPool: sync.Pool{
			New: func() any {
				return bytes.NewBuffer(make([]byte, 0, defaultBufferSize))
			},
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Request sends an HTTP request. A non-reader body is encoded as JSON. The
// caller owns the response body.
func (cli *Client) Request(ctx context.Context, method, rawURL string, body any, opts ...RequestOptionFunc) (*http.Response, error) {
	opt := cli.getRequestOption()
	defer cli.putRequestOption(opt)

	for _, o := range opts {
		o(opt)
	}

	target, err := withQuery(rawURL, opt.query)
	if err != nil {
		return nil, err
	}

	req, err := cli.createRequest(ctx, method, target, body)
	if err != nil {
		return nil, err
	}

	for k, v := range opt.header {
		req.Header.Set(k, v)
	}
	if cli.requestID && req.Header.Get(HeaderRequestID) == "" {
		req.Header.Set(HeaderRequestID, uuid.NewString())
	}
	if cli.auth != nil {
		req.SetBasicAuth(cli.auth.username, cli.auth.password)
	}

	return cli.client.Do(req)
}

// ReadBody drains and closes the response body
func ReadBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

func withQuery(rawURL string, query url.Values) (string, error) {
	if len(query) == 0 {
		return rawURL, nil
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	q := u.Query()
	for k, vs := range query {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (cli *Client) getRequestOption() *RequestOption {
	opt := cli.requestOptPool.Get().(*RequestOption)
	opt.reset(cli.header)
	return opt
}

func (cli *Client) putRequestOption(opt *RequestOption) {
	cli.requestOptPool.Put(opt)
}

func (cli *Client) createRequest(ctx context.Context, method, url string, body any) (*http.Request, error) {
	switch v := body.(type) {
	case nil:
		return http.NewRequestWithContext(ctx, method, url, nil)
	case io.Reader:
		return http.NewRequestWithContext(ctx, method, url, v)
	default:
		return cli.createJSONRequest(ctx, method, url, v)
	}
}

func (cli *Client) createJSONRequest(ctx context.Context, method, url string, body any) (*http.Request, error) {
	buf := cli.getBuffer()
	defer cli.putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(body); err != nil {
		return nil, err
	}

	// the buffer goes back to the pool, so the request gets its own copy
	return http.NewRequestWithContext(ctx, method, url, bytes.NewReader(bytes.Clone(buf.Bytes())))
}

func (cli *Client) getBuffer() *bytes.Buffer {
	buf := cli.bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

// putBuffer drops oversized buffers instead of pooling them
func (cli *Client) putBuffer(buf *bytes.Buffer) {
	if buf.Cap() <= maxBufferSize {
		cli.bufferPool.Put(buf)
	}
}

// Get performs a GET request
func (cli *Client) Get(ctx context.Context, url string, opts ...RequestOptionFunc) (*http.Response, error) {
	return cli.Request(ctx, MethodGet, url, nil, opts...)
}

// Post performs a POST request with JSON body
func (cli *Client) Post(ctx context.Context, url string, body any, opts ...RequestOptionFunc) (*http.Response, error) {
	return cli.Request(ctx, MethodPost, url, body, opts...)
}
