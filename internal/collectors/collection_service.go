package collectors

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"
	"sync"
	"time"

	"traffic-analytics/internal/models"
	"traffic-analytics/internal/shared/loggers"
	"traffic-analytics/internal/shared/metrics"
	"traffic-analytics/internal/shared/ulid"
	"traffic-analytics/internal/stores"
)

const bearerPrefix = "Bearer "

// CollectionServiceConfig carries the settings of the collector section.
type CollectionServiceConfig struct {
	// RequestDelay is the pause between two upstream calls.
	RequestDelay time.Duration
	// Secret protects manual runs. Empty disables the check.
	Secret string
}

//go:generate mockgen -source=collection_service.go -destination=./mocks/collection_service_mock.go -package=mocks
type CollectionService interface {
	// Authorize validates the Authorization header of a manual run request.
	Authorize(authorization string) error
	// Collect polls every configured (device, detector) pair once and saves
	// the readings that are not stored yet. Only one run executes at a time.
	Collect(ctx context.Context, trigger string) (*models.CollectionReport, error)
}

type collectionService struct {
	catalog          *models.EntityCatalog
	client           TrafficVolumeClient
	measurementStore stores.MeasurementStore
	cfg              CollectionServiceConfig

	running sync.Mutex
}

func NewCollectionService(catalog *models.EntityCatalog, client TrafficVolumeClient, measurementStore stores.MeasurementStore, cfg CollectionServiceConfig) CollectionService {
	return &collectionService{
		catalog:          catalog,
		client:           client,
		measurementStore: measurementStore,
		cfg:              cfg,
	}
}

func (s *collectionService) Authorize(authorization string) error {
	if s.cfg.Secret == "" {
		return nil
	}
	token, ok := strings.CutPrefix(strings.TrimSpace(authorization), bearerPrefix)
	if !ok || subtle.ConstantTimeCompare([]byte(token), []byte(s.cfg.Secret)) != 1 {
		return errUnauthenticated()
	}
	return nil
}

type pollTarget struct {
	deviceID   string
	detectorID string
}

func (s *collectionService) Collect(ctx context.Context, trigger string) (*models.CollectionReport, error) {
	if !s.running.TryLock() {
		svcErr := errCollectionRunning()
		metricRunsTotal.WithLabelValues(trigger, svcErr.Code).Inc()
		return nil, svcErr
	}
	defer s.running.Unlock()

	report := &models.CollectionReport{
		RunID:     ulid.NewULID(),
		StartedAt: time.Now().UTC(),
		Details:   make([]*models.PollDetail, 0),
	}
	logger := loggers.Ctx(ctx).With().Str(loggers.FieldRunID, report.RunID).Logger()
	ctx = logger.WithContext(ctx)
	logger.Info().Msgf("started collection run (trigger=%s)", trigger)

	for i, target := range s.targets() {
		if i > 0 {
			if err := sleep(ctx, s.cfg.RequestDelay); err != nil {
				return s.finish(ctx, report, trigger, errInternalCollectionCancelled(err))
			}
		}
		if err := ctx.Err(); err != nil {
			return s.finish(ctx, report, trigger, errInternalCollectionCancelled(err))
		}

		detail := s.poll(ctx, target)
		if err := ctx.Err(); err != nil && detail.Status != models.PollStatusSaved {
			// the failure is the cancellation itself, not the detector
			return s.finish(ctx, report, trigger, errInternalCollectionCancelled(err))
		}
		report.Add(detail)
		metricPollsTotal.WithLabelValues(string(detail.Status)).Inc()
	}

	return s.finish(ctx, report, trigger, nil)
}

// targets lists the (device, detector) pairs in configuration order.
func (s *collectionService) targets() []pollTarget {
	if s.catalog == nil {
		return nil
	}
	var targets []pollTarget
	for _, entity := range s.catalog.Entities() {
		for _, detectorID := range entity.Detectors {
			targets = append(targets, pollTarget{deviceID: entity.DeviceID, detectorID: detectorID})
		}
	}
	return targets
}

func (s *collectionService) poll(ctx context.Context, target pollTarget) *models.PollDetail {
	logger := loggers.Ctx(ctx).With().
		Str(loggers.FieldDeviceID, target.deviceID).
		Str(loggers.FieldDetectorID, target.detectorID).
		Logger()

	detail := &models.PollDetail{
		DeviceID:   target.deviceID,
		DetectorID: target.detectorID,
	}

	records, err := s.client.Fetch(ctx, target.deviceID, target.detectorID)
	if err != nil {
		detail.Status = models.PollStatusFailedToFetch
		detail.Error = err.Error()
		logger.Warn().Err(err).Str(loggers.FieldStatus, string(detail.Status)).Msg("fetch failed")
		return detail
	}

	for _, record := range records {
		err := s.measurementStore.Save(ctx, record)
		switch {
		case err == nil:
			detail.Records++
		case errors.Is(err, stores.ErrMeasurementAlreadyExist):
		default:
			detail.Status = models.PollStatusFailedToSave
			detail.Error = err.Error()
			logger.Error().Err(err).Str(loggers.FieldStatus, string(detail.Status)).Msg("save failed")
			return detail
		}
	}

	if detail.Records > 0 {
		detail.Status = models.PollStatusSaved
	} else {
		detail.Status = models.PollStatusSkippedExists
	}
	logger.Debug().
		Str(loggers.FieldStatus, string(detail.Status)).
		Msgf("polled %d values, saved %d", len(records), detail.Records)
	return detail
}

func (s *collectionService) finish(ctx context.Context, report *models.CollectionReport, trigger string, err error) (*models.CollectionReport, error) {
	report.FinishedAt = time.Now().UTC()

	code := metrics.ValueNoError
	event := loggers.Ctx(ctx).Info()
	if err != nil {
		code = codeInternalCollectionCancelled
		event = loggers.Ctx(ctx).Warn().Err(err).Str(loggers.FieldErrorCode, code)
	}
	metricRunsTotal.WithLabelValues(trigger, code).Inc()

	event.
		Int64(loggers.FieldDuration, report.FinishedAt.Sub(report.StartedAt).Milliseconds()).
		Msgf("finished collection run: processed=%d saved=%d skipped=%d failed=%d",
			report.Processed, report.Saved, report.Skipped, report.Failed)

	return report, err
}

// sleep waits for d or until ctx ends.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
