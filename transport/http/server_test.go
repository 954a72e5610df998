package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kochabx/dashkit/core/notify"
	"github.com/kochabx/dashkit/transport/http/metrics"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestServerRoutes(t *testing.T) {
	rec := notify.NewRecorder(10)
	rec.Error("Request failed")

	s := NewServer(":0", gin.New(),
		WithRegistry(metrics.New()),
		WithMetricsOptions(MetricsOption{Enabled: true, EnabledBuildInfoCollector: true}),
		WithHealthOptions(HealthOption{Enabled: true}),
		WithNotifications(NotificationsOption{Enabled: true}, rec),
	)

	w := get(t, s.Handler(), "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = get(t, s.Handler(), "/metrics")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_build_info")

	w = get(t, s.Handler(), "/notifications")
	require.Equal(t, http.StatusOK, w.Code)
	var env struct {
		Data []notify.Notification `json:"data"`
		IsOk bool                  `json:"isOk"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.True(t, env.IsOk)
	require.Len(t, env.Data, 1)
	assert.Equal(t, "Request failed", env.Data[0].Message)
}

func TestNotificationsLevelFilter(t *testing.T) {
	rec := notify.NewRecorder(10)
	rec.Error("Request failed")
	rec.Info("Settings are saved")

	s := NewServer(":0", gin.New(), WithNotifications(NotificationsOption{Enabled: true}, rec))

	w := get(t, s.Handler(), "/notifications?level=info")
	require.Equal(t, http.StatusOK, w.Code)
	var env struct {
		Data []notify.Notification `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.Len(t, env.Data, 1)
	assert.Equal(t, "Settings are saved", env.Data[0].Message)
	assert.Len(t, rec.Entries(), 2)
}

func TestHealthChecks(t *testing.T) {
	healthy := true
	s := NewServer(":0", gin.New(),
		WithHealthOptions(HealthOption{Enabled: true}),
		WithHealthCheck("chat_backend", func(context.Context) error {
			if healthy {
				return nil
			}
			return errors.New("breaker open")
		}),
	)

	assert.Equal(t, http.StatusOK, get(t, s.Handler(), "/health").Code)

	healthy = false
	w := get(t, s.Handler(), "/health")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"status":"degraded","checks":{"chat_backend":"breaker open"}}`, w.Body.String())
}

func TestServerDisabledRoutes(t *testing.T) {
	s := NewServer(":0", gin.New())

	assert.Equal(t, http.StatusNotFound, get(t, s.Handler(), "/health").Code)
	assert.Equal(t, http.StatusNotFound, get(t, s.Handler(), "/metrics").Code)
	assert.Equal(t, http.StatusNotFound, get(t, s.Handler(), "/notifications").Code)
}

func TestServerRunShutdown(t *testing.T) {
	s := NewServer("127.0.0.1:0", gin.New(), WithMeta(Meta{Name: "test"}))

	done := make(chan error, 1)
	go func() { done <- s.Run() }()
	time.Sleep(50 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, s.Shutdown(ctx))
	assert.NoError(t, <-done)
}
