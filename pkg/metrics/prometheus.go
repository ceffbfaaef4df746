package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	loadsTotal   *prometheus.CounterVec
	errorsTotal  *prometheus.CounterVec
	unrecognized *prometheus.CounterVec
	seriesLength prometheus.Gauge
	latency      *prometheus.HistogramVec
}

// New creates a recorder registered on reg; nil means the default registry.
func New(reg prometheus.Registerer) *Recorder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Recorder{
		loadsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "inflation_source_loads_total",
				Help: "Document loads by source and outcome",
			},
			[]string{"source", "status"},
		),
		errorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "inflation_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		unrecognized: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "inflation_unrecognized_months_total",
				Help: "Month names that fell back to January during alignment",
			},
			[]string{"source"},
		),
		seriesLength: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "inflation_aligned_records",
				Help: "Number of records in the current aligned series",
			},
		),
		latency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "inflation_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordLoad records one document fetch.
func (r *Recorder) RecordLoad(source string, ok bool) {
	status := "ok"
	if !ok {
		status = "error"
	}
	r.loadsTotal.WithLabelValues(source, status).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordUnrecognized adds n unrecognized month names for source.
func (r *Recorder) RecordUnrecognized(source string, n int) {
	r.unrecognized.WithLabelValues(source).Add(float64(n))
}

// RecordSeriesLength sets the aligned series length.
func (r *Recorder) RecordSeriesLength(n int) {
	r.seriesLength.Set(float64(n))
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
