package response

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/kochabx/dashkit/errors"
)

const (
	defaultErrorMessage = "service temporarily unavailable"
	defaultErrorCode    = http.StatusServiceUnavailable
)

// Envelope is the {data, message, isOk} wrapper every backend route answers with
type Envelope struct {
	Data    any    `json:"data"`
	Message string `json:"message"`
	IsOk    bool   `json:"isOk"`
}

func (e *Envelope) reset() {
	e.Data = nil
	e.Message = ""
	e.IsOk = false
}

var envelopePool = sync.Pool{
	New: func() any {
		return &Envelope{}
	},
}

func acquire() *Envelope {
	return envelopePool.Get().(*Envelope)
}

func release(e *Envelope) {
	if e != nil {
		e.reset()
		envelopePool.Put(e)
	}
}

// OK writes a successful envelope with status 200
func OK(c *gin.Context, data any) {
	OKMessage(c, data, "")
}

// OKMessage writes a successful envelope carrying a message
func OKMessage(c *gin.Context, data any, message string) {
	if c == nil {
		return
	}

	env := acquire()
	defer release(env)

	env.Data = data
	env.Message = message
	env.IsOk = true
	c.JSON(http.StatusOK, env)
}

// Empty answers 200 with no body, as write-only routes do
func Empty(c *gin.Context) {
	if c == nil {
		return
	}
	c.Status(http.StatusOK)
}

// Fail writes a failed envelope. The HTTP status is the error code when it is
// a valid status, 500 otherwise.
func Fail(c *gin.Context, err error) {
	if c == nil {
		return
	}
	defer c.Abort()

	env := acquire()
	defer release(env)

	if err == nil {
		env.Message = defaultErrorMessage
		c.JSON(defaultErrorCode, env)
		return
	}

	e := errors.FromError(err)
	env.Message = e.Message
	c.JSON(statusOf(e.Code), env)
}

// Rejected writes isOk:false with status 200, for routes that report
// failure only inside the envelope
func Rejected(c *gin.Context, message string) {
	if c == nil {
		return
	}
	defer c.Abort()

	env := acquire()
	defer release(env)

	env.Message = message
	c.JSON(http.StatusOK, env)
}

func statusOf(code int) int {
	if code < 100 || code > 599 {
		return http.StatusInternalServerError
	}
	return code
}
