package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveTransition(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveTransition("PAID")
	m.ObserveTransition("PAID")
	m.ObserveTransition("OVERDUE")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Transitions.WithLabelValues("PAID")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Transitions.WithLabelValues("OVERDUE")))
}

func TestObserveReconcile(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveReconcile(3, 1, 0.25)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.ReconcileRuns))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.ReconcileMarked))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ReconcileFailures))
}

func TestNilMetricsAreNoops(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveTransition("PAID")
		m.ObserveReconcile(1, 0, 1)
	})
}
