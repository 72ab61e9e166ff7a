// Package metrics provides Prometheus metrics for conversion runs.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Status label values.
const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

// Recorder owns a private registry so concurrent runs and tests never share
// counters.
type Recorder struct {
	registry *prometheus.Registry

	conversions *prometheus.CounterVec
	failures    *prometheus.CounterVec
	duration    prometheus.Histogram
	links       prometheus.Counter
	connectors  prometheus.Counter
}

// New registers the conversion metrics on a fresh registry.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Recorder{
		registry: reg,
		conversions: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mobility_conversions_total",
				Help: "Total number of assets processed",
			},
			[]string{"status"},
		),
		failures: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mobility_conversion_failures_total",
				Help: "Failed conversions by failure kind",
			},
			[]string{"kind"},
		),
		duration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "mobility_conversion_duration_seconds",
			Help:    "Time taken to convert one asset",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}),
		links: f.NewCounter(prometheus.CounterOpts{
			Name: "mobility_links_emitted_total",
			Help: "Links written to robot descriptions, base and connectors included",
		}),
		connectors: f.NewCounter(prometheus.CounterOpts{
			Name: "mobility_connectors_emitted_total",
			Help: "Connector links inserted for rotating sliders",
		}),
	}
}

// RecordSuccess records a converted asset.
func (r *Recorder) RecordSuccess(links, connectors int, d time.Duration) {
	r.conversions.WithLabelValues(StatusOK).Inc()
	r.links.Add(float64(links))
	r.connectors.Add(float64(connectors))
	r.duration.Observe(d.Seconds())
}

// RecordFailure records a failed asset. kind is the failure kind, or
// "internal" for untyped errors.
func (r *Recorder) RecordFailure(kind string, d time.Duration) {
	r.conversions.WithLabelValues(StatusFailed).Inc()
	r.failures.WithLabelValues(kind).Inc()
	r.duration.Observe(d.Seconds())
}

// WriteTextfile writes all metrics in the text exposition format, for the
// node exporter's textfile collector.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("metrics: write %s: %w", path, err)
	}
	return nil
}

// Timer measures one conversion.
type Timer struct {
	start time.Time
}

// NewTimer starts a timer.
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// Duration returns the elapsed time since the timer was created.
func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}
