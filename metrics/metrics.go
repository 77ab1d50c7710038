// Package metrics holds the Prometheus collectors for the payment lifecycle.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for payments
type Metrics struct {
	Transitions        *prometheus.CounterVec
	ReconcileRuns      prometheus.Counter
	ReconcileMarked    prometheus.Counter
	ReconcileFailures  prometheus.Counter
	ReconcileDurations prometheus.Histogram
}

// New creates the collectors and registers them on reg
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Transitions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "league_payment_transitions_total",
			Help: "Payment status transitions by target status",
		}, []string{"to"}),
		ReconcileRuns: factory.NewCounter(prometheus.CounterOpts{
			Name: "league_payment_reconcile_runs_total",
			Help: "Completed overdue reconciliation sweeps",
		}),
		ReconcileMarked: factory.NewCounter(prometheus.CounterOpts{
			Name: "league_payment_reconcile_marked_total",
			Help: "Payments moved to OVERDUE by reconciliation",
		}),
		ReconcileFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "league_payment_reconcile_failures_total",
			Help: "Payments the reconciliation sweep failed to persist",
		}),
		ReconcileDurations: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "league_payment_reconcile_duration_seconds",
			Help:    "Duration of overdue reconciliation sweeps",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// ObserveTransition records a status change. Safe on a nil receiver.
func (m *Metrics) ObserveTransition(to string) {
	if m == nil {
		return
	}
	m.Transitions.WithLabelValues(to).Inc()
}

// ObserveReconcile records the outcome of one sweep. Safe on a nil receiver.
func (m *Metrics) ObserveReconcile(marked, failed int, seconds float64) {
	if m == nil {
		return
	}
	m.ReconcileRuns.Inc()
	m.ReconcileMarked.Add(float64(marked))
	m.ReconcileFailures.Add(float64(failed))
	m.ReconcileDurations.Observe(seconds)
}
