// Package metric exposes Prometheus metrics for call number construction.
package metric

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lehigh-university-libraries/callno/internal/callno"
)

// Outcomes recorded in the outcome label.
const (
	OutcomeAssembled = "assembled"
	OutcomeFailed    = "failed"
	OutcomeError     = "error"
)

// Metrics holds the construction metrics and the registry they live in.
type Metrics struct {
	registry *prometheus.Registry

	Constructions *prometheus.CounterVec
	Duration      *prometheus.HistogramVec
}

// NewMetrics creates the metrics in a fresh registry, along with the Go
// runtime and process collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		Constructions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "callno",
				Name:      "constructions_total",
				Help:      "Call number constructions by library, resolved call type and outcome",
			},
			[]string{"library", "call_type", "outcome"},
		),

		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "callno",
				Name:      "construction_duration_seconds",
				Help:      "Call number construction duration in seconds",
				Buckets:   []float64{.00001, .00005, .0001, .0005, .001, .005, .01},
			},
			[]string{"library"},
		),
	}

	m.registry.MustRegister(
		m.Constructions,
		m.Duration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Observe records one construction.
func (m *Metrics) Observe(lib callno.Library, res *callno.Result, err error, elapsed time.Duration) {
	outcome := OutcomeFailed
	callType := ""
	switch {
	case err != nil:
		outcome = OutcomeError
	case res.OK():
		outcome = OutcomeAssembled
	}
	if res != nil {
		callType = string(res.CallType)
		if callType == "" {
			callType = string(res.Request.CallType)
		}
	}

	m.Constructions.WithLabelValues(string(lib), callType, outcome).Inc()
	m.Duration.WithLabelValues(string(lib)).Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}
