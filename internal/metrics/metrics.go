package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
var (
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "cinebook",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by method, path and status.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})
)

// Reservation metrics
var (
	BookingsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "cinebook",
		Subsystem: "reservations",
		Name:      "bookings_created_total",
		Help:      "Bookings that fully committed.",
	})

	BookingsCancelled = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "cinebook",
		Subsystem: "reservations",
		Name:      "bookings_cancelled_total",
		Help:      "Bookings cancelled by users or admins.",
	})

	SeatConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "cinebook",
		Subsystem: "reservations",
		Name:      "seat_conflicts_total",
		Help:      "Reservation attempts rejected because a requested seat was taken.",
	})

	Compensations = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "cinebook",
		Subsystem: "reservations",
		Name:      "compensations_total",
		Help:      "Ledger append failures that were rolled back by releasing seats.",
	})

	IntegrityErrors = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "cinebook",
		Subsystem: "reservations",
		Name:      "integrity_errors_total",
		Help:      "Compensation failures leaving inventory and ledger inconsistent.",
	})

	ReleaseRetries = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "cinebook",
		Subsystem: "reconciler",
		Name:      "release_retries_total",
		Help:      "Asynchronous seat release attempts by the reconciliation worker.",
	})
)
