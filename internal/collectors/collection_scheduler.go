package collectors

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"traffic-analytics/internal/shared/loggers"
	"traffic-analytics/internal/shared/svcerrors"
	"traffic-analytics/internal/shared/ulid"
)

const defaultCollectionInterval = 5 * time.Minute

// CollectionSchedulerConfig carries the timing of scheduled runs.
type CollectionSchedulerConfig struct {
	Interval   time.Duration
	RunOnStart bool
}

//go:generate mockgen -source=collection_scheduler.go -destination=./mocks/collection_scheduler_mock.go -package=mocks
type CollectionScheduler interface {
	Start(ctx context.Context)
	Stop()
}

type collectionScheduler struct {
	collectionService CollectionService
	cfg               CollectionSchedulerConfig

	wg sync.WaitGroup

	stopOnce sync.Once
	stopCh   chan struct{}

	logger loggers.Logger
}

func NewCollectionScheduler(collectionService CollectionService, cfg CollectionSchedulerConfig, logger loggers.Logger) CollectionScheduler {
	if cfg.Interval <= 0 {
		cfg.Interval = defaultCollectionInterval
	}
	return &collectionScheduler{
		collectionService: collectionService,
		cfg:               cfg,
		stopCh:            make(chan struct{}),
		logger:            logger,
	}
}

// Start spawns the single worker goroutine that triggers a run every interval.
func (scheduler *collectionScheduler) Start(ctx context.Context) {
	scheduler.wg.Add(1)
	go func() {
		defer scheduler.wg.Done()

		scheduler.runWorker(ctx)
	}()
}

// Stop waits for the worker to stop (best called during app shutdown).
// A run in progress finishes or observes the cancelled context first.
func (scheduler *collectionScheduler) Stop() {
	scheduler.stopOnce.Do(func() { close(scheduler.stopCh) })
	scheduler.wg.Wait()
}

func (scheduler *collectionScheduler) runWorker(ctx context.Context) {
	scheduler.logger.Info().Msgf("collection scheduler started (interval=%s, run_on_start=%t)", scheduler.cfg.Interval, scheduler.cfg.RunOnStart)

	if scheduler.cfg.RunOnStart {
		scheduler.runOnce(ctx)
	}

	ticker := time.NewTicker(scheduler.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-scheduler.stopCh:
			return
		case <-ticker.C:
			scheduler.runOnce(ctx)
		}
	}
}

func (scheduler *collectionScheduler) runOnce(ctx context.Context) {
	ctx = scheduler.logger.With().
		Str(loggers.FieldRequestID, ulid.NewULID()).
		Logger().WithContext(ctx)

	// Handle panic recovery to prevent the worker goroutine from crashing
	defer func() {
		if r := recover(); r != nil {
			loggers.Ctx(ctx).Error().
				Bytes(loggers.FieldErrorStack, debug.Stack()).
				Msg("collection panic recovered")

			var panicErr error
			if err, ok := r.(error); ok {
				panicErr = err
			} else {
				panicErr = fmt.Errorf("%v", r)
			}

			svcErr := svcerrors.NewInternalErrorPanic(panicErr)
			metricRunsTotal.WithLabelValues(TriggerSchedule, svcErr.Code).Inc()
		}
	}()

	if _, err := scheduler.collectionService.Collect(ctx, TriggerSchedule); err != nil {
		event := loggers.Ctx(ctx).Warn().Err(err)
		if svcErr, ok := svcerrors.AsServiceError(err); ok {
			event = event.Str(loggers.FieldErrorCode, svcErr.Code)
		}
		event.Msg("scheduled collection did not complete")
	}
}
