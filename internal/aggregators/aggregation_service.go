package aggregators

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"traffic-analytics/internal/models"
	"traffic-analytics/internal/shared/loggers"
	"traffic-analytics/internal/shared/metrics"
	"traffic-analytics/internal/shared/svcerrors"
	"traffic-analytics/internal/stores"
)

const (
	defaultMaxRecords = 50000
	defaultSortKey    = models.SortByName
	defaultSortOrder  = models.SortAsc
)

// localTimeLayouts are accepted for start/end in addition to RFC 3339. They are
// interpreted in the service location, matching what a datetime-local input sends.
var localTimeLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// QueryParams are the raw view parameters as received from a client.
// Empty strings select defaults.
type QueryParams struct {
	Granularity string
	Start       string
	End         string
	Keywords    []string
	Sort        string
	Order       string
}

// MeasurementParams are the raw parameters of a measurement listing.
type MeasurementParams struct {
	DeviceID   string
	DetectorID string
	Start      string
	End        string
	Limit      string
}

// AggregationServiceConfig carries the settings of the aggregation section.
type AggregationServiceConfig struct {
	Location           *time.Location
	DefaultGranularity models.Granularity
	MaxRecords         int
}

//go:generate mockgen -source=aggregation_service.go -destination=./mocks/aggregation_service_mock.go -package=mocks
type AggregationService interface {
	// Aggregate returns the chart rows and totals for params.
	Aggregate(ctx context.Context, params QueryParams) (*models.AggregationResult, error)
	// Summaries returns the sorted per-site summaries for params.
	Summaries(ctx context.Context, params QueryParams) ([]*models.IntersectionSummary, error)
	// Measurements returns raw records, newest first.
	Measurements(ctx context.Context, params MeasurementParams) ([]*models.MeasurementRecord, error)
	Entities() []*models.MonitoredEntity
	Keywords() []string
}

type aggregationService struct {
	catalog           *models.EntityCatalog
	measurementStore  stores.MeasurementStore
	recordAggregator  RecordAggregator
	directionRolluper DirectionRolluper
	summaryBuilder    SummaryBuilder
	summarySorter     SummarySorter
	cfg               AggregationServiceConfig
}

func NewAggregationService(
	catalog *models.EntityCatalog,
	measurementStore stores.MeasurementStore,
	recordAggregator RecordAggregator,
	directionRolluper DirectionRolluper,
	summaryBuilder SummaryBuilder,
	summarySorter SummarySorter,
	cfg AggregationServiceConfig,
) AggregationService {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if !cfg.DefaultGranularity.IsValid() {
		cfg.DefaultGranularity = models.GranularityHour
	}
	if cfg.MaxRecords <= 0 {
		cfg.MaxRecords = defaultMaxRecords
	}
	return &aggregationService{
		catalog:           catalog,
		measurementStore:  measurementStore,
		recordAggregator:  recordAggregator,
		directionRolluper: directionRolluper,
		summaryBuilder:    summaryBuilder,
		summarySorter:     summarySorter,
		cfg:               cfg,
	}
}

func (s *aggregationService) Aggregate(ctx context.Context, params QueryParams) (*models.AggregationResult, error) {
	query, err := s.parseQuery(params, false)
	if err != nil {
		s.observe(viewAggregates, "", err)
		return nil, err
	}

	result, _, _, err := s.run(ctx, query)
	s.observe(viewAggregates, string(query.Granularity), err)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *aggregationService) Summaries(ctx context.Context, params QueryParams) ([]*models.IntersectionSummary, error) {
	query, err := s.parseQuery(params, true)
	if err != nil {
		s.observe(viewSummaries, "", err)
		return nil, err
	}

	result, records, catalog, err := s.run(ctx, query)
	s.observe(viewSummaries, string(query.Granularity), err)
	if err != nil {
		return nil, err
	}

	summaries := s.summaryBuilder.Summarize(result.Rows, records, catalog, query.Keywords)
	return s.summarySorter.Sort(summaries, query.SortKey, query.SortDirection), nil
}

func (s *aggregationService) Measurements(ctx context.Context, params MeasurementParams) ([]*models.MeasurementRecord, error) {
	filter, err := s.parseMeasurementFilter(params)
	if err != nil {
		s.observe(viewMeasurements, "", err)
		return nil, err
	}

	records, err := s.measurementStore.List(ctx, filter)
	if err != nil {
		svcErr := errInternalMeasurementStoreFailed(err)
		s.observe(viewMeasurements, "", svcErr)
		return nil, svcErr
	}
	s.observe(viewMeasurements, "", nil)
	return records, nil
}

func (s *aggregationService) Entities() []*models.MonitoredEntity {
	return s.catalog.Entities()
}

func (s *aggregationService) Keywords() []string {
	return s.catalog.Keywords()
}

// run loads the records for query and executes aggregation and rollup against
// the keyword-filtered catalog.
func (s *aggregationService) run(ctx context.Context, query *models.AggregationQuery) (*models.AggregationResult, []*models.MeasurementRecord, *models.EntityCatalog, error) {
	logger := loggers.Ctx(ctx)
	logger.Debug().Msgf("started aggregation with granularity: %s, keywords: %v", query.Granularity, query.Keywords)

	records, err := s.loadRecords(ctx, query.Range)
	if err != nil {
		return nil, nil, nil, err
	}

	catalog := s.catalog.FilterByKeywords(query.Keywords)
	result := s.recordAggregator.Aggregate(records, catalog, query.Granularity, query.Range)
	s.directionRolluper.Rollup(result, catalog)

	logger.Debug().Msgf("aggregated %d records into %d rows", len(records), len(result.Rows))
	return result, records, catalog, nil
}

// loadRecords reads the records of an explicit range, or the newest MaxRecords
// when no range is given so the aggregator can pick the latest window.
func (s *aggregationService) loadRecords(ctx context.Context, rng models.TimeRange) ([]*models.MeasurementRecord, error) {
	if rng.Start != nil && rng.End != nil && rng.Start.After(*rng.End) {
		return nil, nil
	}

	filter := models.MeasurementFilter{Start: rng.Start, End: rng.End}
	if !rng.IsSet() {
		filter.Limit = s.cfg.MaxRecords
	}

	records, err := s.measurementStore.List(ctx, filter)
	if err != nil {
		return nil, errInternalMeasurementStoreFailed(err)
	}
	return records, nil
}

func (s *aggregationService) parseQuery(params QueryParams, withSort bool) (*models.AggregationQuery, error) {
	query := &models.AggregationQuery{
		Granularity:   s.cfg.DefaultGranularity,
		SortKey:       defaultSortKey,
		SortDirection: defaultSortOrder,
		Keywords:      normalizeKeywords(params.Keywords),
	}

	if strings.TrimSpace(params.Granularity) != "" {
		granularity, err := models.ParseGranularity(params.Granularity)
		if err != nil {
			return nil, errInvalidGranularity(err)
		}
		query.Granularity = granularity
	}

	rng, err := s.parseRange(params.Start, params.End)
	if err != nil {
		return nil, err
	}
	query.Range = rng

	if !withSort {
		return query, nil
	}
	if strings.TrimSpace(params.Sort) != "" {
		key, err := models.ParseSortKey(params.Sort)
		if err != nil {
			return nil, errInvalidSortKey(err)
		}
		query.SortKey = key
	}
	if strings.TrimSpace(params.Order) != "" {
		direction, err := models.ParseSortDirection(params.Order)
		if err != nil {
			return nil, errInvalidSortDirection(err)
		}
		query.SortDirection = direction
	}
	return query, nil
}

func (s *aggregationService) parseMeasurementFilter(params MeasurementParams) (models.MeasurementFilter, error) {
	filter := models.MeasurementFilter{
		DeviceID:   strings.TrimSpace(params.DeviceID),
		DetectorID: strings.TrimSpace(params.DetectorID),
		Limit:      s.cfg.MaxRecords,
	}

	rng, err := s.parseRange(params.Start, params.End)
	if err != nil {
		return filter, err
	}
	filter.Start = rng.Start
	filter.End = rng.End

	if limitStr := strings.TrimSpace(params.Limit); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			return filter, errInvalidLimit("limit must be an integer", err)
		}
		if limit <= 0 || limit > s.cfg.MaxRecords {
			return filter, errInvalidLimit(fmt.Sprintf("limit must be between 1 and %d", s.cfg.MaxRecords), nil)
		}
		filter.Limit = limit
	}
	return filter, nil
}

func (s *aggregationService) parseRange(start, end string) (models.TimeRange, error) {
	var rng models.TimeRange
	if strings.TrimSpace(start) != "" {
		t, err := s.parseTime(start)
		if err != nil {
			return rng, errInvalidTimeRange(fmt.Sprintf("invalid start: %q", start), err)
		}
		rng.Start = &t
	}
	if strings.TrimSpace(end) != "" {
		t, err := s.parseTime(end)
		if err != nil {
			return rng, errInvalidTimeRange(fmt.Sprintf("invalid end: %q", end), err)
		}
		rng.End = &t
	}
	return rng, nil
}

// parseTime accepts RFC 3339 (with or without fractional seconds) or one of
// localTimeLayouts in the service location.
func (s *aggregationService) parseTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	var lastErr error
	for _, layout := range localTimeLayouts {
		t, err := time.ParseInLocation(layout, value, s.cfg.Location)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func (s *aggregationService) observe(view, granularity string, err error) {
	code := metrics.ValueNoError
	if err != nil {
		if svcErr, ok := svcerrors.AsServiceError(err); ok {
			code = svcErr.Code
		}
	}
	metricAggregationQueriesTotal.WithLabelValues(view, granularity, code).Inc()
}

// normalizeKeywords trims keywords and drops empty and repeated entries.
func normalizeKeywords(keywords []string) []string {
	seen := make(map[string]struct{}, len(keywords))
	normalized := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		if _, ok := seen[kw]; ok {
			continue
		}
		seen[kw] = struct{}{}
		normalized = append(normalized, kw)
	}
	return normalized
}
