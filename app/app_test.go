package app

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// blockingServer runs until shut down
type blockingServer struct {
	stop     chan struct{}
	once     sync.Once
	runErr   error
	shutdown bool
	mu       sync.Mutex
}

func newBlockingServer() *blockingServer {
	return &blockingServer{stop: make(chan struct{})}
}

func (s *blockingServer) Run() error {
	if s.runErr != nil {
		return s.runErr
	}
	<-s.stop
	return nil
}

func (s *blockingServer) Shutdown(context.Context) error {
	s.mu.Lock()
	s.shutdown = true
	s.mu.Unlock()
	s.once.Do(func() { close(s.stop) })
	return nil
}

func (s *blockingServer) wasShutdown() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shutdown
}

func TestInfo(t *testing.T) {
	app := New(
		WithName("chat-watch"),
		WithServers(newBlockingServer(), nil, newBlockingServer()),
		WithClose("logger", func(context.Context) error { return nil }, 0),
		WithClose("nil", nil, 0),
	)

	info := app.Info()
	assert.Equal(t, "chat-watch", info.Name)
	assert.Equal(t, 2, info.ServerCount)
	assert.Equal(t, 1, info.CloseCount)
	assert.False(t, info.Started)
}

func TestStartStop(t *testing.T) {
	a, b := newBlockingServer(), newBlockingServer()

	var mu sync.Mutex
	var order []string
	record := func(name string) func(context.Context) error {
		return func(context.Context) error {
			mu.Lock()
			defer mu.Unlock()
			order = append(order, name)
			return nil
		}
	}

	app := New(
		WithServers(a, b),
		WithClose("logger", record("logger"), time.Second),
		WithClose("recorder", record("recorder"), time.Second),
	)
	require.NoError(t, app.RegisterClose("late", record("late"), 0))

	go func() {
		time.Sleep(50 * time.Millisecond)
		app.Stop()
	}()

	require.NoError(t, app.Start())
	assert.True(t, a.wasShutdown())
	assert.True(t, b.wasShutdown())
	assert.Equal(t, []string{"late", "recorder", "logger"}, order)
	assert.ErrorIs(t, app.Start(), ErrAlreadyStarted)
}

func TestStartContextDone(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	s := newBlockingServer()
	app := New(WithContext(ctx), WithServers(s))
	require.NoError(t, app.Start())
	assert.True(t, s.wasShutdown())
}

func TestStartServerError(t *testing.T) {
	failing := newBlockingServer()
	failing.runErr = errors.New("listen tcp: address already in use")
	other := newBlockingServer()

	closed := false
	app := New(
		WithServers(failing, other),
		WithClose("logger", func(context.Context) error { closed = true; return nil }, time.Second),
	)

	err := app.Start()
	assert.EqualError(t, err, "listen tcp: address already in use")
	assert.True(t, other.wasShutdown())
	assert.True(t, closed)
}

func TestNoServers(t *testing.T) {
	app := New()
	go func() {
		time.Sleep(20 * time.Millisecond)
		app.Stop()
	}()
	assert.NoError(t, app.Start())
}

func TestAddServer(t *testing.T) {
	app := New()
	require.NoError(t, app.AddServer(newBlockingServer()))
	assert.Error(t, app.AddServer(nil))
	assert.Equal(t, 1, app.Info().ServerCount)

	app.started = true
	assert.ErrorIs(t, app.AddServer(newBlockingServer()), ErrAlreadyStarted)
}

func TestCloseTask(t *testing.T) {
	app := New(WithCloseTimeout(20 * time.Millisecond))

	err := app.runCloseTask(CloseFunc{Name: "panics", Fn: func(context.Context) error { panic("boom") }})
	assert.ErrorIs(t, err, ErrClosePanic)

	err = app.runCloseTask(CloseFunc{Name: "slow", Fn: func(ctx context.Context) error {
		<-ctx.Done()
		time.Sleep(10 * time.Millisecond)
		return nil
	}})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
