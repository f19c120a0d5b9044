package models

import "time"

// TimeRange bounds a query. Nil ends are open. A range with both ends nil is
// unset, which lets the aggregator fall back to the most recent window.
type TimeRange struct {
	Start *time.Time
	End   *time.Time
}

func (r TimeRange) IsSet() bool {
	return r.Start != nil || r.End != nil
}

// Contains reports whether t falls inside the range (inclusive on both ends).
func (r TimeRange) Contains(t time.Time) bool {
	if r.Start != nil && t.Before(*r.Start) {
		return false
	}
	if r.End != nil && t.After(*r.End) {
		return false
	}
	return true
}

// AggregationQuery carries the parameters of one aggregation view request.
type AggregationQuery struct {
	Granularity   Granularity
	Range         TimeRange
	Keywords      []string
	SortKey       SortKey
	SortDirection SortDirection
}

// AggregationResult is the chart-facing output of an aggregation query.
//
// Example JSON:
//
//	{
//	  "granularity": "hour",
//	  "start": "2025-12-28T17:05:00Z",
//	  "end": "2025-12-28T18:05:00Z",
//	  "implicitWindow": true,
//	  "rows": [{"timestamp": "2025-12-28T18:00:00Z", "OULU002_IN": 12, "total_IN": 12, ...}],
//	  "totals": {"total_IN": 12, "total_OUT": 7, "total_ALL": 19}
//	}
type AggregationResult struct {
	Granularity    Granularity        `json:"granularity"`
	Start          *time.Time         `json:"start,omitempty"`
	End            *time.Time         `json:"end,omitempty"`
	ImplicitWindow bool               `json:"implicitWindow"`
	Rows           []*AggregatedRow   `json:"rows"`
	Totals         map[string]float64 `json:"totals"`
}
