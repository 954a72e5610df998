package survey

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kochabx/dashkit/core/fetch"
	"github.com/kochabx/dashkit/core/host"
	"github.com/kochabx/dashkit/core/notify"
	"github.com/kochabx/dashkit/core/validator"
	"github.com/kochabx/dashkit/errors"
	"github.com/kochabx/dashkit/log"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func validForm() Form {
	f := Form{Name: "Jane Roe", Phone: "+1 555 010 2030", Email: "jane@example.com"}
	f.SetAnswer("Which area bothers you most?", "Stomach")
	f.SetAnswer("How soon do you want results?", "1 month")
	f.SetAnswer("Which area bothers you most?", "Back")
	return f
}

func TestSetAnswer(t *testing.T) {
	f := validForm()
	require.Len(t, f.Answers, 2)
	assert.Equal(t, Answer{Question: "Which area bothers you most?", Answer: "Back"}, f.Answers[1])
}

func TestSubmit(t *testing.T) {
	var got Form
	var path string
	r := gin.New()
	r.POST("/survey/:locationId/:workflowId", func(c *gin.Context) {
		path = c.Request.URL.Path
		if err := c.ShouldBindJSON(&got); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		if c.Param("workflowId") == "gone" {
			c.JSON(http.StatusNotFound, gin.H{"message": "workflow not found"})
			return
		}
		c.Status(http.StatusOK)
	})
	server := httptest.NewServer(r)
	defer server.Close()

	rec := notify.NewRecorder(8)
	s := New(fetch.New(host.Host(server.URL), rec, fetch.WithLogger(log.NewWriter(io.Discard))))

	require.NoError(t, s.Submit(context.Background(), "loc-1", "wf-1", validForm()))
	assert.Equal(t, "/survey/loc-1/wf-1", path)
	assert.Equal(t, "Jane Roe", got.Name)
	assert.Len(t, got.Answers, 2)
	assert.Empty(t, rec.Entries())

	err := s.Submit(context.Background(), "loc-1", "gone", validForm())
	require.Error(t, err)
	assert.True(t, errors.IsApplication(err))
	assert.Equal(t, []string{"Unable to fetch /survey/loc-1/gone: workflow not found"}, rec.Messages(notify.LevelError))
}

func TestSubmitInvalid(t *testing.T) {
	s := New(fetch.New("http://backend.invalid", nil, fetch.WithLogger(log.NewWriter(io.Discard))))

	f := validForm()
	f.Phone = "call me"
	f.Email = ""
	err := s.Submit(context.Background(), "loc-1", "wf-1", f)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, errors.FromError(err).GetCode())
	assert.True(t, validator.HasFieldError(err, "phone"))
	assert.True(t, validator.HasFieldError(err, "email"))
	assert.False(t, validator.HasFieldError(err, "name"))

	err = s.Submit(context.Background(), "", "wf-1", validForm())
	assert.Error(t, err)
}
