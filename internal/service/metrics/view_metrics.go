package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	ViewLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "inflation",
			Subsystem: "api",
			Name:      "latency_seconds",
			Help:      "Latency of dashboard view endpoints",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	ViewErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "inflation",
			Subsystem: "api",
			Name:      "errors_total",
			Help:      "Errors by dashboard view endpoint",
		},
		[]string{"endpoint", "code"},
	)

	RateLimited = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "inflation",
			Subsystem: "api",
			Name:      "rate_limited_total",
			Help:      "Requests rejected by the per-client limiter",
		},
		[]string{"endpoint"},
	)
)

func Register() {
	once.Do(func() {
		prometheus.MustRegister(ViewLatency, ViewErrors, RateLimited)
	})
}
