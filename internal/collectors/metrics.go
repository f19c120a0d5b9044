package collectors

import (
	"traffic-analytics/internal/shared/metrics"
)

var (
	// metricPollsTotal counts detector polls by status
	// (saved, skipped_exists, failed_to_fetch, failed_to_save).
	metricPollsTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubCollection,
			Name:      "polls_total",
		},
		[]string{"status"},
	)

	metricRunsTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubCollection,
			Name:      "runs_total",
		},
		[]string{"trigger", metrics.FieldErrorCode},
	)

	metricUpstreamRequestDuration = metrics.NewHistogramVec(
		metrics.HistogramOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubCollection,
			Name:      "upstream_request_latency",
			Buckets:   metrics.DefBuckets,
		},
		[]string{"outcome"},
	)
)

const (
	outcomeOK    = "ok"
	outcomeError = "error"

	TriggerSchedule = "schedule"
	TriggerManual   = "manual"
)
