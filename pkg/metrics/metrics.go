package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics
type Metrics struct {
	BookingsConfirmed   prometheus.Counter
	BookingConflicts    prometheus.Counter
	BookingFailures     *prometheus.CounterVec
	WizardSessions      prometheus.Counter
	PersistenceWrites   *prometheus.CounterVec
	PersistenceFailures *prometheus.CounterVec
}

// NewMetrics creates and registers all application metrics
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		BookingsConfirmed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookings_confirmed_total",
			Help:      "Total number of confirmed bookings",
		}),
		BookingConflicts: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_conflicts_total",
			Help:      "Total number of bookings rejected because the slot was taken",
		}),
		BookingFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_failures_total",
			Help:      "Total number of failed booking commits by reason",
		}, []string{"reason"}),
		WizardSessions: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "wizard_sessions_started_total",
			Help:      "Total number of booking wizard sessions started",
		}),
		PersistenceWrites: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "persistence_writes_total",
			Help:      "Total number of collection writes by collection",
		}, []string{"collection"}),
		PersistenceFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "persistence_failures_total",
			Help:      "Total number of failed collection writes by collection",
		}, []string{"collection"}),
	}
}
