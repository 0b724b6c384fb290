package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics
type Metrics struct {
	// HTTP metrics
	HTTPRequests        *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Booking metrics
	BookingsCreated      *prometheus.CounterVec
	BookingConflicts     *prometheus.CounterVec
	BookingStatusChanges *prometheus.CounterVec
	SlotQueries          *prometheus.CounterVec

	// Slot cache metrics
	SlotCacheHits   prometheus.Counter
	SlotCacheMisses prometheus.Counter
	SlotCacheErrors *prometheus.CounterVec
}

// NewMetrics creates all application metrics and registers them on reg.
// Pass prometheus.DefaultRegisterer in production and a fresh registry in tests.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}, []string{"method", "route"}),

		BookingsCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "booking",
			Name:      "created_total",
			Help:      "Total number of bookings created",
		}, []string{"assignment"}),
		BookingConflicts: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "booking",
			Name:      "conflicts_total",
			Help:      "Total number of booking attempts refused for lack of a free slot",
		}, []string{"reason"}),
		BookingStatusChanges: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "booking",
			Name:      "status_changes_total",
			Help:      "Total number of booking status transitions",
		}, []string{"status"}),
		SlotQueries: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "slots",
			Name:      "queries_total",
			Help:      "Total number of slot availability queries",
		}, []string{"scope"}),

		SlotCacheHits: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "slot_cache",
			Name:      "hits_total",
			Help:      "Slot availability answers served from Redis",
		}),
		SlotCacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "slot_cache",
			Name:      "misses_total",
			Help:      "Slot availability answers loaded from the database",
		}),
		SlotCacheErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "slot_cache",
			Name:      "errors_total",
			Help:      "Redis failures in the slot cache",
		}, []string{"operation"}),
	}
}
