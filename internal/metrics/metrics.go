package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	bookingCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "drivehub",
			Name:      "booking_created_total",
			Help:      "Count of bookings created by status.",
		},
		[]string{"status"},
	)

	bookingRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "drivehub",
			Name:      "booking_rejected_total",
			Help:      "Count of booking requests rejected by reason.",
		},
		[]string{"reason"},
	)

	bookingCancelled = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "drivehub",
			Name:      "booking_cancelled_total",
			Help:      "Count of bookings cancelled.",
		},
	)

	bookingDatesChanged = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "drivehub",
			Name:      "booking_dates_changed_total",
			Help:      "Count of booking date changes committed.",
		},
	)

	reconciliationRepairs = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "drivehub",
			Name:      "reconciliation_repairs_total",
			Help:      "Count of ledger inconsistencies repaired by the reconciliation job.",
		},
		[]string{"kind"},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(bookingCreated, bookingRejected, bookingCancelled, bookingDatesChanged, reconciliationRepairs)
	})
}

func IncBookingCreated(status string) {
	bookingCreated.WithLabelValues(status).Inc()
}

func IncBookingRejected(reason string) {
	bookingRejected.WithLabelValues(reason).Inc()
}

func IncBookingCancelled() {
	bookingCancelled.Inc()
}

func IncBookingDatesChanged() {
	bookingDatesChanged.Inc()
}

func IncReconciliationRepair(kind string) {
	reconciliationRepairs.WithLabelValues(kind).Inc()
}
