package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the directory managers.
// All methods are safe to call on a nil *Metrics.
type Metrics struct {
	Operations        *prometheus.CounterVec
	OperationDuration *prometheus.HistogramVec
	Reconciliations   *prometheus.CounterVec
}

// New registers the directory metrics with reg. A nil reg uses the default registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		Operations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "skillset_directory_operations_total",
			Help: "Directory manager operations by outcome",
		}, []string{"entity", "operation", "outcome"}),
		OperationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "skillset_directory_operation_duration_seconds",
			Help:    "Duration of directory manager operations, including reconciliation probes",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"entity", "operation"}),
		Reconciliations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "skillset_directory_reconciliations_total",
			Help: "Write failures reclassified by probing the store, by resulting outcome",
		}, []string{"entity", "operation", "outcome"}),
	}
}

// ObserveOperation records one finished operation.
// Call with time.Now() taken at the start of the operation.
func (m *Metrics) ObserveOperation(entity, operation, outcome string, start time.Time) {
	if m == nil {
		return
	}
	m.Operations.WithLabelValues(entity, operation, outcome).Inc()
	m.OperationDuration.WithLabelValues(entity, operation).Observe(time.Since(start).Seconds())
}

// IncReconciliation records that a failed write was reconciled into outcome.
func (m *Metrics) IncReconciliation(entity, operation, outcome string) {
	if m == nil {
		return
	}
	m.Reconciliations.WithLabelValues(entity, operation, outcome).Inc()
}
