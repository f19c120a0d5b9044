package stores

import (
	"traffic-analytics/internal/shared/metrics"
)

const (
	outcomeSaved     = "saved"
	outcomeDuplicate = "duplicate"
	outcomeError     = "error"
)

var (
	// metricMeasurementSavedTotal counts Save calls by storage driver and outcome
	// (saved, duplicate, error).
	metricMeasurementSavedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubStorage,
			Name:      "measurement_saved_total",
		},
		[]string{"driver", "outcome"},
	)

	metricQueryDuration = metrics.NewHistogramVec(
		metrics.HistogramOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubStorage,
			Name:      "list_latency",
			Buckets:   metrics.DefBuckets,
		},
		[]string{"driver"},
	)
)
