package response

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/kochabx/dashkit/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestOK(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	OK(c, map[string]int{"a": 1})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":{"a":1},"message":"","isOk":true}`, w.Body.String())
}

func TestOKMessage(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	OKMessage(c, nil, "saved")

	assert.JSONEq(t, `{"data":null,"message":"saved","isOk":true}`, w.Body.String())
}

func TestFail(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{"structured", errors.NotFound("not found"), http.StatusNotFound, `{"data":null,"message":"not found","isOk":false}`},
		{"business code", errors.New(10001, "duplicate"), http.StatusInternalServerError, `{"data":null,"message":"duplicate","isOk":false}`},
		{"plain error", fmt.Errorf("boom"), http.StatusInternalServerError, `{"data":null,"message":"boom","isOk":false}`},
		{"nil", nil, http.StatusServiceUnavailable, `{"data":null,"message":"service temporarily unavailable","isOk":false}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			Fail(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
			assert.True(t, c.IsAborted())
		})
	}
}

func TestRejected(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Rejected(c, "location is not integrated")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":null,"message":"location is not integrated","isOk":false}`, w.Body.String())
}

func TestEmpty(t *testing.T) {
	r := gin.New()
	r.POST("/reports/setExpense", Empty)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/reports/setExpense", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
}
