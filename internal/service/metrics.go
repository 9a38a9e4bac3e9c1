package service

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts capacity-manager outcomes.  Outcome labels are "ok" or
// the error kind.
type Metrics struct {
	Operations *prometheus.CounterVec
	Repaired   prometheus.Counter
}

// NewMetrics registers the collectors with reg.  Tests pass a fresh
// prometheus.NewRegistry() so repeated construction does not panic.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Operations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "scheduler",
			Name:      "session_operations_total",
			Help:      "Capacity manager operations by operation and outcome.",
		}, []string{"operation", "outcome"}),
		Repaired: f.NewCounter(prometheus.CounterOpts{
			Namespace: "scheduler",
			Name:      "session_counters_repaired_total",
			Help:      "Sessions whose participant counter was repaired by the reconciler.",
		}),
	}
}

func (m *Metrics) observe(op string, err error) {
	if m == nil {
		return
	}
	m.Operations.WithLabelValues(op, outcome(err)).Inc()
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrInvalidOperation):
		return "invalid"
	case errors.Is(err, ErrCapacityExceeded):
		return "full"
	case errors.Is(err, ErrDuplicateMembership):
		return "duplicate"
	case errors.Is(err, ErrNotAuthorized):
		return "forbidden"
	default:
		return "error"
	}
}
