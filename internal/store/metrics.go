package store

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	storeOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "roulette_store_operations_total",
			Help: "Total number of document store operations by backend, operation and status.",
		},
		[]string{"backend", "operation", "status"},
	)
	storeOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "roulette_store_operation_duration_seconds",
			Help:    "Histogram of document store operation durations.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"backend", "operation"},
	)
)

// observe records one store call. Usage: defer observe(backend, "load", time.Now(), &err).
func observe(backend, operation string, start time.Time, err *error) {
	status := "success"
	if err != nil && *err != nil {
		status = "error"
	}
	storeOperationsTotal.WithLabelValues(backend, operation, status).Inc()
	storeOperationDuration.WithLabelValues(backend, operation).Observe(time.Since(start).Seconds())
}
