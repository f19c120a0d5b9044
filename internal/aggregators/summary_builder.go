package aggregators

import (
	"time"

	"traffic-analytics/internal/models"
)

//go:generate mockgen -source=summary_builder.go -destination=./mocks/summary_builder_mock.go -package=mocks
type SummaryBuilder interface {
	// Summarize merges the IN and OUT series of each (deviceId, description)
	// site into one IntersectionSummary. latestTime is taken from the raw
	// records, not from the buckets. Summaries without traffic are omitted and
	// a non-empty keywordFilter keeps only summaries sharing a keyword with it.
	Summarize(rows []*models.AggregatedRow, records []*models.MeasurementRecord, catalog *models.EntityCatalog, keywordFilter []string) []*models.IntersectionSummary
}

type summaryBuilder struct{}

func NewSummaryBuilder() SummaryBuilder {
	return &summaryBuilder{}
}

type siteKey struct {
	deviceID    string
	description string
}

func (b *summaryBuilder) Summarize(rows []*models.AggregatedRow, records []*models.MeasurementRecord, catalog *models.EntityCatalog, keywordFilter []string) []*models.IntersectionSummary {
	summaries := make([]*models.IntersectionSummary, 0)
	if catalog == nil {
		return summaries
	}

	latestByDevice := latestTimeByDevice(records, catalog)

	bySite := make(map[siteKey]*models.IntersectionSummary)
	order := make([]siteKey, 0)
	for _, entity := range catalog.Entities() {
		if entity.Direction != models.DirectionIn && entity.Direction != models.DirectionOut {
			continue
		}

		key := siteKey{deviceID: entity.DeviceID, description: entity.Description}
		summary, ok := bySite[key]
		if !ok {
			summary = &models.IntersectionSummary{
				DeviceID:    entity.DeviceID,
				Description: entity.Description,
				LatestTime:  latestByDevice[entity.DeviceID],
				Keywords:    catalog.DeviceKeywords(entity.DeviceID),
			}
			bySite[key] = summary
			order = append(order, key)
		}

		switch entity.Direction {
		case models.DirectionIn:
			if summary.InDetectorCount == 0 {
				summary.InCount = sumSeries(rows, entity.DirectionKey())
			}
			summary.InDetectorCount += len(entity.Detectors)
		case models.DirectionOut:
			if summary.OutDetectorCount == 0 {
				summary.OutCount = sumSeries(rows, entity.DirectionKey())
			}
			summary.OutDetectorCount += len(entity.Detectors)
		}
	}

	for _, key := range order {
		summary := bySite[key]
		summary.TotalCount = summary.InCount + summary.OutCount
		summary.TotalDetectorCount = summary.InDetectorCount + summary.OutDetectorCount
		if summary.TotalCount == 0 {
			continue
		}
		summaries = append(summaries, summary)
	}

	return FilterSummariesByKeywords(summaries, keywordFilter)
}

// sumSeries adds up the value of key across rows.
func sumSeries(rows []*models.AggregatedRow, key string) float64 {
	var total float64
	for _, row := range rows {
		total += row.Value(key)
	}
	return total
}

// latestTimeByDevice returns the newest measuredTime per device over the
// records that belong to a configured entity.
func latestTimeByDevice(records []*models.MeasurementRecord, catalog *models.EntityCatalog) map[string]time.Time {
	latest := make(map[string]time.Time)
	for _, record := range records {
		if record == nil || record.MeasuredTime.IsZero() {
			continue
		}
		if catalog.Match(record.DeviceID, record.DetectorID) == nil {
			continue
		}
		if record.MeasuredTime.After(latest[record.DeviceID]) {
			latest[record.DeviceID] = record.MeasuredTime
		}
	}
	return latest
}
