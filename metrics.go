// SPDX-License-Identifier: MIT

package speigh

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Solve outcomes used as the "outcome" label.
const (
	outcomeConverged     = "converged"
	outcomeMaxIter       = "max_iter"
	outcomeConfiguration = "configuration_error"
	outcomeOptimization  = "optimization_error"
)

// Metrics holds the Prometheus collectors of the solver. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	solves     *prometheus.CounterVec
	iterations *prometheus.HistogramVec
	duration   *prometheus.HistogramVec
	support    *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg. A nil reg
// creates unregistered collectors (useful in tests).
// Panics if reg already holds collectors with the same names.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		// solves counts finished and failed solves
		solves: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "speigh_solves_total",
				Help: "The total number of sparse eigen solves",
			},
			[]string{"path", "outcome"},
		),
		iterations: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "speigh_iterations",
				Help:    "The number of MM updates per solve",
				Buckets: prometheus.ExponentialBuckets(1, 2, 15), // 1 to ~16k
			},
			[]string{"path"},
		),
		duration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "speigh_solve_duration_seconds",
				Help:    "The duration of sparse eigen solves in seconds",
				Buckets: prometheus.ExponentialBuckets(0.0001, 2, 20), // 100µs to ~52s
			},
			[]string{"path"},
		),
		support: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "speigh_support_size",
				Help:    "The number of nonzero entries of the returned eigenvector",
				Buckets: []float64{0, 1, 2, 4, 8, 16, 32, 64, 128, 256},
			},
			[]string{"path"},
		),
	}
}

// observe records a successful solve.
func (m *Metrics) observe(res Result) {
	if m == nil {
		return
	}
	path := res.Stats.Path.String()
	outcome := outcomeConverged
	if !res.Stats.Converged {
		outcome = outcomeMaxIter
	}
	m.solves.WithLabelValues(path, outcome).Inc()
	m.iterations.WithLabelValues(path).Observe(float64(res.Stats.Iterations))
	m.duration.WithLabelValues(path).Observe(res.Stats.Runtime.Seconds())
	m.support.WithLabelValues(path).Observe(float64(len(res.Support)))
}

// observeFailure records a solve that returned an error.
func (m *Metrics) observeFailure(path Path, outcome string) {
	if m == nil {
		return
	}
	m.solves.WithLabelValues(path.String(), outcome).Inc()
}
