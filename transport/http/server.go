// Package http serves the daemon's own endpoints: Prometheus metrics, a
// health probe and the notifications recorded from backend calls.
package http

import (
	"context"
	"errors"
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kochabx/dashkit/core/notify"
	"github.com/kochabx/dashkit/log"
	"github.com/kochabx/dashkit/transport"
	"github.com/kochabx/dashkit/transport/http/metrics"
	"github.com/kochabx/dashkit/transport/http/response"
)

var _ transport.Server = (*Server)(nil)

const (
	defaultName = "http"
	defaultAddr = ":8080"
)

type Meta struct {
	Name string
}

// HealthCheck reports why the component named name is unhealthy, or nil
type HealthCheck struct {
	Name  string
	Check func(context.Context) error
}

type Server struct {
	meta     Meta
	options  Options
	registry *metrics.Prometheus
	recorder *notify.Recorder
	checks   []HealthCheck
	server   *http.Server
}

type Option func(*Server)

func WithMeta(meta Meta) Option {
	return func(s *Server) {
		s.meta = meta
	}
}

// WithRegistry serves p at the metrics path instead of metrics.Prom
func WithRegistry(p *metrics.Prometheus) Option {
	return func(s *Server) {
		if p != nil {
			s.registry = p
		}
	}
}

func WithMetricsOptions(opt MetricsOption) Option {
	return func(s *Server) {
		if err := opt.init(); err != nil {
			log.Error().Err(err).Msg("metrics options ignored")
			return
		}
		s.options.Metrics = opt
	}
}

func WithHealthOptions(opt HealthOption) Option {
	return func(s *Server) {
		if err := opt.init(); err != nil {
			log.Error().Err(err).Msg("health options ignored")
			return
		}
		s.options.Health = opt
	}
}

// WithHealthCheck makes the health endpoint answer 503 while check fails
func WithHealthCheck(name string, check func(context.Context) error) Option {
	return func(s *Server) {
		if check != nil {
			s.checks = append(s.checks, HealthCheck{Name: name, Check: check})
		}
	}
}

// WithNotifications serves the contents of recorder
func WithNotifications(opt NotificationsOption, recorder *notify.Recorder) Option {
	return func(s *Server) {
		if err := opt.init(); err != nil {
			log.Error().Err(err).Msg("notifications options ignored")
			return
		}
		s.options.Notifications = opt
		s.recorder = recorder
	}
}

// NewServer mounts the enabled endpoints on handler when it is a gin engine
func NewServer(addr string, handler http.Handler, opts ...Option) *Server {
	s := &Server{
		registry: metrics.Prom,
		server:   &http.Server{Addr: addr, Handler: handler},
	}
	for _, opt := range opts {
		opt(s)
	}

	if r, ok := handler.(*gin.Engine); ok {
		s.mountMetrics(r)
		s.mountHealth(r)
		s.mountNotifications(r)
	}
	return s
}

// Handler returns the root handler, routes included
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Run listens until Shutdown. An invalid address falls back to :8080.
func (s *Server) Run() error {
	if s.meta.Name == "" {
		s.meta.Name = defaultName
	}
	if !transport.ValidateAddress(s.server.Addr) {
		log.Warn().Str("addr", s.server.Addr).Str("default", defaultAddr).Msg("invalid listen address, using default")
		s.server.Addr = defaultAddr
	}
	log.Info().Str("server", s.meta.Name).Str("addr", s.server.Addr).Msg("listening")

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) mountMetrics(r *gin.Engine) {
	opt := s.options.Metrics
	if !opt.Enabled {
		return
	}
	if opt.EnabledGoCollector {
		s.registry.WithGoCollectorRuntimeMetrics()
	}
	if opt.EnabledBuildInfoCollector {
		s.registry.WithBuildInfoCollector()
	}
	r.GET(opt.Path, gin.WrapH(promhttp.HandlerFor(s.registry.Registry(), promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})))
}

func (s *Server) mountHealth(r *gin.Engine) {
	if !s.options.Health.Enabled {
		return
	}
	r.GET(s.options.Health.Path, func(c *gin.Context) {
		failing := make(map[string]string)
		for _, hc := range s.checks {
			if err := hc.Check(c.Request.Context()); err != nil {
				failing[hc.Name] = err.Error()
			}
		}
		if len(failing) > 0 {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "checks": failing})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// mountNotifications serves the recorder, optionally filtered by ?level=
func (s *Server) mountNotifications(r *gin.Engine) {
	if !s.options.Notifications.Enabled || s.recorder == nil {
		return
	}
	r.GET(s.options.Notifications.Path, func(c *gin.Context) {
		entries := s.recorder.Entries()
		if level := notify.Level(c.Query("level")); level != "" {
			entries = slices.DeleteFunc(entries, func(n notify.Notification) bool {
				return n.Level != level
			})
		}
		response.OK(c, entries)
	})
}
