package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kochabx/dashkit/core/fetch"
)

const namespace = "dashkit"

var _ fetch.Observer = (*FetchObserver)(nil)

// FetchObserver counts backend calls by route and outcome and times them
type FetchObserver struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	statuses *prometheus.CounterVec
}

// NewFetchObserver registers the fetch collectors on m's registry
func NewFetchObserver(m Metrics) (*FetchObserver, error) {
	o := &FetchObserver{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "fetch",
			Name:      "requests_total",
			Help:      "Backend calls by route and outcome.",
		}, []string{"route", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "fetch",
			Name:      "duration_seconds",
			Help:      "Backend call latency, including body read.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		statuses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "fetch",
			Name:      "responses_total",
			Help:      "Backend responses by route and HTTP status.",
		}, []string{"route", "status"}),
	}

	for _, c := range []prometheus.Collector{o.requests, o.duration, o.statuses} {
		if err := m.Registry().Register(c); err != nil {
			return nil, err
		}
	}
	return o, nil
}

func (o *FetchObserver) Observe(route string, outcome fetch.Outcome, status int, elapsed time.Duration) {
	o.requests.WithLabelValues(route, string(outcome)).Inc()
	o.duration.WithLabelValues(route).Observe(elapsed.Seconds())
	// transport failures never got a status
	if status > 0 {
		o.statuses.WithLabelValues(route, strconv.Itoa(status)).Inc()
	}
}
