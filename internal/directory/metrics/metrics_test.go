package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveOperation(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveOperation("person", "create", "success", time.Now())
	m.ObserveOperation("person", "create", "success", time.Now())
	m.ObserveOperation("person", "create", "conflict", time.Now())

	assert.InDelta(t, 2, testutil.ToFloat64(m.Operations.WithLabelValues("person", "create", "success")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.Operations.WithLabelValues("person", "create", "conflict")), 0)
	assert.Equal(t, 1, testutil.CollectAndCount(m.OperationDuration))
}

func TestIncReconciliation(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.IncReconciliation("skill", "update", "conflict")
	assert.InDelta(t, 1, testutil.ToFloat64(m.Reconciliations.WithLabelValues("skill", "update", "conflict")), 0)
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveOperation("person", "delete", "success", time.Now())
		m.IncReconciliation("person", "delete", "not_found")
	})
}
