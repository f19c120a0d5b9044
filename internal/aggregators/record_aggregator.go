package aggregators

import (
	"sort"
	"time"

	"traffic-analytics/internal/models"
)

//go:generate mockgen -source=record_aggregator.go -destination=./mocks/record_aggregator_mock.go -package=mocks
type RecordAggregator interface {
	// Aggregate buckets records by granularity and sums them per series key.
	// Rows are sparse and sorted ascending by bucket start. When rng is unset,
	// only the most recent granularity-sized window ending at the latest
	// matched record is aggregated and the result is flagged ImplicitWindow.
	Aggregate(records []*models.MeasurementRecord, catalog *models.EntityCatalog, granularity models.Granularity, rng models.TimeRange) *models.AggregationResult
}

type recordAggregator struct {
	location *time.Location
}

// NewRecordAggregator returns an aggregator that evaluates calendar buckets in
// location. A nil location means UTC.
func NewRecordAggregator(location *time.Location) RecordAggregator {
	if location == nil {
		location = time.UTC
	}
	return &recordAggregator{location: location}
}

type matchedRecord struct {
	record *models.MeasurementRecord
	entity *models.MonitoredEntity
}

func (a *recordAggregator) Aggregate(records []*models.MeasurementRecord, catalog *models.EntityCatalog, granularity models.Granularity, rng models.TimeRange) *models.AggregationResult {
	result := &models.AggregationResult{
		Granularity: granularity,
		Rows:        make([]*models.AggregatedRow, 0),
	}

	matched := a.match(records, catalog)

	if rng.IsSet() {
		result.Start = rng.Start
		result.End = rng.End
		matched = filterMatched(matched, rng)
	} else {
		result.ImplicitWindow = true
		if len(matched) == 0 {
			return result
		}
		latest := latestMeasuredTime(matched)
		windowStart := granularity.WindowStart(latest, a.location)
		result.Start = &windowStart
		result.End = &latest
		matched = filterMatched(matched, models.TimeRange{Start: &windowStart})
	}

	buckets := make(map[time.Time]*models.AggregatedRow)
	for _, m := range matched {
		bucketStart := granularity.BucketStart(m.record.MeasuredTime, a.location)
		row, ok := buckets[bucketStart]
		if !ok {
			row = models.NewAggregatedRow(bucketStart)
			buckets[bucketStart] = row
		}
		row.Values[m.entity.DirectionKey()] += m.record.Value
		row.Values[models.DeviceSeriesKey(m.entity.DeviceID)] += m.record.Value
	}

	for _, row := range buckets {
		result.Rows = append(result.Rows, row)
	}
	sort.SliceStable(result.Rows, func(i, j int) bool {
		return result.Rows[i].Timestamp.Before(result.Rows[j].Timestamp)
	})

	return result
}

// match pairs every record with its configured entity. Unmatched records and
// records without a timestamp are dropped.
func (a *recordAggregator) match(records []*models.MeasurementRecord, catalog *models.EntityCatalog) []matchedRecord {
	matched := make([]matchedRecord, 0, len(records))
	if catalog == nil {
		return matched
	}

	unmatched := 0
	for _, record := range records {
		if record == nil || record.MeasuredTime.IsZero() {
			continue
		}
		entity := catalog.Match(record.DeviceID, record.DetectorID)
		if entity == nil {
			unmatched++
			continue
		}
		matched = append(matched, matchedRecord{record: record, entity: entity})
	}

	if unmatched > 0 {
		metricUnmatchedRecordsTotal.Add(float64(unmatched))
	}
	return matched
}

func filterMatched(matched []matchedRecord, rng models.TimeRange) []matchedRecord {
	filtered := make([]matchedRecord, 0, len(matched))
	for _, m := range matched {
		if rng.Contains(m.record.MeasuredTime) {
			filtered = append(filtered, m)
		}
	}
	return filtered
}

func latestMeasuredTime(matched []matchedRecord) time.Time {
	var latest time.Time
	for _, m := range matched {
		if m.record.MeasuredTime.After(latest) {
			latest = m.record.MeasuredTime
		}
	}
	return latest
}
