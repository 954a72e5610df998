// Package fetch calls the dashboard backend: it prefixes paths with the
// resolved host, sends JSON, unwraps the response envelope and turns every
// failure into exactly one user notification plus a classified error.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/kochabx/dashkit/core/host"
	khttp "github.com/kochabx/dashkit/core/net/http"
	"github.com/kochabx/dashkit/core/notify"
	"github.com/kochabx/dashkit/errors"
	"github.com/kochabx/dashkit/log"
)

const msgRequestFailed = "Request failed"

// Client is safe for concurrent use and keeps no per-call state
type Client struct {
	host          host.Host
	notifier      notify.Notifier
	transport     khttp.Clienter
	transportOpts []khttp.Option
	observer      Observer
	logger        *log.Logger
}

// New creates a Client for h. A nil notifier discards notifications.
func New(h host.Host, n notify.Notifier, opts ...Option) *Client {
	if n == nil {
		n = notify.Nop
	}
	c := &Client{
		host:     h,
		notifier: n,
		logger:   log.G,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.transport = khttp.New(c.transportOpts...)
	c.transportOpts = nil
	return c
}

// Host returns the host every path is prefixed with
func (c *Client) Host() host.Host {
	return c.host
}

// Notifier returns the notifier failures are reported to
func (c *Client) Notifier() notify.Notifier {
	return c.notifier
}

// Fetch calls an enveloped endpoint and returns its data. A 2xx with an empty
// body, or with null data, yields nil and no error.
func Fetch[T any](ctx context.Context, c *Client, path string, opts ...RequestOption) (*T, error) {
	call := c.newCall(path, opts)
	body, err := call.roundTrip(ctx)
	if err != nil || body == nil {
		return nil, err
	}

	var env Envelope[T]
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, call.decodeFailure(err)
	}
	if env.rejected() {
		return nil, call.applicationFailure(http.StatusUnprocessableEntity, env.Message)
	}

	call.finish(OutcomeOK)
	return env.Data, nil
}

// Raw is Fetch for endpoints that answer with a bare JSON value instead of
// an envelope.
func Raw[T any](ctx context.Context, c *Client, path string, opts ...RequestOption) (*T, error) {
	call := c.newCall(path, opts)
	body, err := call.roundTrip(ctx)
	if err != nil || body == nil {
		return nil, err
	}

	out := new(T)
	if err := json.Unmarshal(body, out); err != nil {
		return nil, call.decodeFailure(err)
	}

	call.finish(OutcomeOK)
	return out, nil
}

// call tracks one request from send to outcome
type call struct {
	c      *Client
	path   string
	req    request
	start  time.Time
	status int
}

func (c *Client) newCall(path string, opts []RequestOption) *call {
	cl := &call{c: c, path: path, start: time.Now()}
	for _, opt := range opts {
		opt(&cl.req)
	}
	if cl.req.method == "" {
		cl.req.method = http.MethodGet
		if cl.req.body != nil {
			cl.req.method = http.MethodPost
		}
	}
	if cl.req.route == "" {
		cl.req.route = path
	}
	return cl
}

// roundTrip sends the request and settles every outcome that does not depend
// on the payload type. It returns the body only for a non-empty 2xx.
func (cl *call) roundTrip(ctx context.Context) ([]byte, error) {
	resp, err := cl.c.transport.Request(ctx, cl.req.method, string(cl.c.host)+cl.path, cl.req.body, cl.req.transportOptions()...)
	if err != nil {
		return nil, cl.transportFailure(err)
	}
	cl.status = resp.StatusCode

	body, err := khttp.ReadBody(resp)
	if err != nil {
		return nil, cl.transportFailure(err)
	}

	ok := resp.StatusCode >= 200 && resp.StatusCode < 300
	switch {
	case ok && len(body) == 0:
		cl.finish(OutcomeEmpty)
		return nil, nil
	case ok:
		return body, nil
	case len(body) == 0:
		return nil, cl.applicationFailure(resp.StatusCode, "")
	case !json.Valid(body):
		return nil, cl.decodeFailure(fmt.Errorf("invalid JSON body with status %d", resp.StatusCode))
	default:
		var f failure
		_ = json.Unmarshal(body, &f)
		return nil, cl.applicationFailure(resp.StatusCode, f.Message)
	}
}

func (cl *call) transportFailure(cause error) error {
	err := errors.Transport(cause, "request %s %s failed", cl.req.method, cl.path)
	return cl.fail(OutcomeTransport, err, msgRequestFailed)
}

func (cl *call) decodeFailure(cause error) error {
	err := errors.Decode(cause, "unable to read result of %s", cl.path)
	return cl.fail(OutcomeDecode, err, "Unable to read result of "+cl.path)
}

func (cl *call) applicationFailure(code int, message string) error {
	notice := "Unable to fetch " + cl.path
	if message != "" {
		notice += ": " + message
	} else {
		message = http.StatusText(code)
	}
	return cl.fail(OutcomeApplication, errors.Application(code, "%s", message), notice)
}

func (cl *call) fail(outcome Outcome, err *errors.Error, notice string) error {
	err = err.WithMetadata(map[string]string{errors.MetadataPath: cl.path})

	cl.c.logger.Warn().
		Err(err).
		Str("method", cl.req.method).
		Str("path", cl.path).
		Int("status", cl.status).
		Str("kind", string(err.GetKind())).
		Msg("fetch failed")

	cl.c.notifier.Error(notice)
	cl.finish(outcome)
	return err
}

func (cl *call) finish(outcome Outcome) {
	if cl.c.observer != nil {
		cl.c.observer.Observe(cl.req.route, outcome, cl.status, time.Since(cl.start))
	}
}
