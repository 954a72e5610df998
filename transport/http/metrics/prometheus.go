package metrics

import (
	"regexp"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics owns the registry collectors join and /metrics serves
type Metrics interface {
	Registry() *prometheus.Registry
}

// Prom is the registry the HTTP server exposes when none is configured
var Prom = New()

var _ Metrics = (*Prometheus)(nil)

// Prometheus is a private registry; the Go and build-info collectors are
// opt-in and register once
type Prometheus struct {
	registry *prometheus.Registry
	goOnce   sync.Once
	infoOnce sync.Once
}

func New() *Prometheus {
	return &Prometheus{
		registry: prometheus.NewRegistry(),
	}
}

func (p *Prometheus) WithGoCollectorRuntimeMetrics() {
	p.goOnce.Do(func() {
		p.registry.MustRegister(collectors.NewGoCollector(
			collectors.WithGoCollectorRuntimeMetrics(collectors.GoRuntimeMetricsRule{Matcher: regexp.MustCompile("/.*")}),
		))
	})
}

func (p *Prometheus) WithBuildInfoCollector() {
	p.infoOnce.Do(func() {
		p.registry.MustRegister(collectors.NewBuildInfoCollector())
	})
}

func (p *Prometheus) Registry() *prometheus.Registry {
	return p.registry
}
