// Package metrics provides observability for the registry module.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks registry mutation counts and read path durations.
type Metrics struct {
	StudentsRegistered prometheus.Counter
	StudentsUpdated    prometheus.Counter
	OwnerTransfers     prometheus.Counter
	CallsDenied        prometheus.Counter
	LookupDuration     prometheus.Histogram
}

// New creates a Metrics instance with all registry metrics registered.
func New() *Metrics {
	return &Metrics{
		StudentsRegistered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "registry_students_registered_total",
			Help: "Total number of students registered",
		}),
		StudentsUpdated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "registry_students_updated_total",
			Help: "Total number of student name updates",
		}),
		OwnerTransfers: promauto.NewCounter(prometheus.CounterOpts{
			Name: "registry_owner_transfers_total",
			Help: "Total number of ownership transfers",
		}),
		CallsDenied: promauto.NewCounter(prometheus.CounterOpts{
			Name: "registry_calls_denied_total",
			Help: "Total number of mutating calls rejected for a non-owner caller",
		}),
		LookupDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "registry_lookup_duration_seconds",
			Help:    "Duration of student name lookups",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

// IncrementRegistered records a successful registration.
func (m *Metrics) IncrementRegistered() {
	if m == nil {
		return
	}
	m.StudentsRegistered.Inc()
}

// IncrementUpdated records a successful name update.
func (m *Metrics) IncrementUpdated() {
	if m == nil {
		return
	}
	m.StudentsUpdated.Inc()
}

// IncrementOwnerTransfers records a successful ownership transfer.
func (m *Metrics) IncrementOwnerTransfers() {
	if m == nil {
		return
	}
	m.OwnerTransfers.Inc()
}

// IncrementDenied records a mutating call rejected for a non-owner caller.
func (m *Metrics) IncrementDenied() {
	if m == nil {
		return
	}
	m.CallsDenied.Inc()
}

// ObserveLookup records the duration of a lookup.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveLookup(start time.Time) {
	if m == nil {
		return
	}
	m.LookupDuration.Observe(time.Since(start).Seconds())
}
