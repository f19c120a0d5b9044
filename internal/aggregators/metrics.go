package aggregators

import (
	"traffic-analytics/internal/shared/metrics"
)

// metricAggregationQueriesTotal counts aggregation view requests.
//
// The view label is "aggregates", "summaries" or "measurements". The
// granularity label is empty when the request failed before the granularity
// was parsed, and for the measurements view.
var (
	metricAggregationQueriesTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAggregation,
			Name:      "queries_total",
		},
		[]string{"view", "granularity", metrics.FieldErrorCode},
	)

	// metricUnmatchedRecordsTotal counts records dropped because no monitored
	// entity owns their (device, detector) pair.
	metricUnmatchedRecordsTotal = metrics.NewCounter(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAggregation,
			Name:      "unmatched_records_total",
		},
	)
)

const (
	viewAggregates   = "aggregates"
	viewSummaries    = "summaries"
	viewMeasurements = "measurements"
)
