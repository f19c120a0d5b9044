package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"traffic-analytics/internal/aggregators"
	"traffic-analytics/internal/collectors"
	internalhttp "traffic-analytics/internal/http"
	"traffic-analytics/internal/models"
	"traffic-analytics/internal/shared/configs"
	"traffic-analytics/internal/shared/filestorages"
	"traffic-analytics/internal/shared/loggers"
	"traffic-analytics/internal/shared/migrations"
	"traffic-analytics/internal/stores"

	"golang.org/x/text/language"
)

const postgresConnectTimeout = 10 * time.Second

// App holds all application dependencies and manages lifecycle.
type App struct {
	config    *configs.Config
	appLogger loggers.Logger
	server    *http.Server
	db        *sql.DB

	collectionScheduler collectors.CollectionScheduler
	backgroundCtx       context.Context
	backgroundCancel    context.CancelFunc
}

// New creates and initializes a new App instance.
func New(config *configs.Config) (*App, error) {
	appLogger, err := loggers.New(config.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	appLogger = appLogger.With().
		Str(loggers.FieldApp, "traffic-analytics").
		Logger()

	// Initialize monitored entities
	catalog, err := newEntityCatalog(config.MonitoredEntities)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize monitored entities: %w", err)
	}

	// Initialize measurement store
	measurementStore, db, err := newMeasurementStore(config.Storage, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	// Initialize aggregation service
	location, err := time.LoadLocation(config.Aggregation.Timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone: %w", err)
	}
	collation, err := language.Parse(config.Aggregation.Collation)
	if err != nil {
		return nil, fmt.Errorf("failed to parse collation: %w", err)
	}
	granularity, err := models.ParseGranularity(config.Aggregation.DefaultGranularity)
	if err != nil {
		return nil, fmt.Errorf("failed to parse default granularity: %w", err)
	}
	aggregationService := aggregators.NewAggregationService(
		catalog,
		measurementStore,
		aggregators.NewRecordAggregator(location),
		aggregators.NewDirectionRolluper(),
		aggregators.NewSummaryBuilder(),
		aggregators.NewSummarySorter(collation),
		aggregators.AggregationServiceConfig{
			Location:           location,
			DefaultGranularity: granularity,
			MaxRecords:         config.Aggregation.MaxRecords,
		},
	)

	// Initialize collection service
	trafficVolumeClient := collectors.NewTrafficVolumeClient(config.Collector.BaseURL, config.Collector.RequestTimeout)
	collectionService := collectors.NewCollectionService(catalog, trafficVolumeClient, measurementStore, collectors.CollectionServiceConfig{
		RequestDelay: config.Collector.RequestDelay,
		Secret:       config.Collector.Secret,
	})
	var collectionScheduler collectors.CollectionScheduler
	if config.Collector.Enabled {
		collectionScheduler = collectors.NewCollectionScheduler(collectionService, collectors.CollectionSchedulerConfig{
			Interval:   config.Collector.Interval,
			RunOnStart: config.Collector.RunOnStart,
		}, loggers.Component(appLogger, "scheduler"))
	}

	// Initialize http router
	router := internalhttp.NewRouter(aggregationService, collectionService, measurementStore, loggers.Component(appLogger, "http"))

	// Create HTTP server
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", config.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: time.Duration(config.Server.ReadHeaderTimeout) * time.Second,
		ReadTimeout:       time.Duration(config.Server.ReadTimeout) * time.Second,
		WriteTimeout:      time.Duration(config.Server.WriteTimeout) * time.Second,
		IdleTimeout:       time.Duration(config.Server.IdleTimeout) * time.Second,
	}

	backgroundCtx, backgroundCancel := context.WithCancel(context.Background())

	return &App{
		config:              config,
		appLogger:           appLogger,
		server:              server,
		db:                  db,
		collectionScheduler: collectionScheduler,
		backgroundCtx:       backgroundCtx,
		backgroundCancel:    backgroundCancel,
	}, nil
}

func newEntityCatalog(entityConfigs []configs.EntityConfig) (*models.EntityCatalog, error) {
	entities := make([]models.MonitoredEntity, 0, len(entityConfigs))
	for _, ec := range entityConfigs {
		entities = append(entities, models.MonitoredEntity{
			DeviceID:    ec.DeviceID,
			Detectors:   ec.Detectors,
			Direction:   models.Direction(ec.Direction),
			Description: ec.Description,
			Keywords:    ec.Keywords,
		})
	}
	return models.NewEntityCatalog(entities)
}

// newMeasurementStore returns the configured store. db is nil for the file driver.
func newMeasurementStore(cfg configs.StorageConfig, logger loggers.Logger) (stores.MeasurementStore, *sql.DB, error) {
	switch cfg.Driver {
	case "postgres":
		ctx, cancel := context.WithTimeout(context.Background(), postgresConnectTimeout)
		defer cancel()

		db, err := stores.OpenPostgres(ctx, cfg.Postgres.DSN, cfg.Postgres.MaxOpenConns)
		if err != nil {
			return nil, nil, err
		}
		if cfg.Postgres.RunMigrations {
			if err := migrations.Run(db, loggers.Component(logger, "migrations")); err != nil {
				_ = db.Close()
				return nil, nil, err
			}
		}
		return stores.NewPostgresMeasurementStore(db), db, nil
	default:
		fileStorage, err := filestorages.NewFileStorage(cfg.File.RootDir)
		if err != nil {
			return nil, nil, err
		}
		return stores.NewFileMeasurementStore(fileStorage), nil, nil
	}
}

// Start starts the HTTP server in a blocking manner.
func (app *App) Start() error {
	app.appLogger.Info().
		Msgf("Starting traffic-analytics service on port %d (log_level=%s, storage=%s, collector_enabled=%t, entities=%d)",
			app.config.Server.Port,
			app.config.Log.Level,
			app.config.Storage.Driver,
			app.config.Collector.Enabled,
			len(app.config.MonitoredEntities))

	// start background scheduler
	if app.collectionScheduler != nil {
		app.collectionScheduler.Start(app.backgroundCtx)
	}

	return app.server.ListenAndServe()
}

// Shutdown gracefully shuts down the application.
func (app *App) Shutdown(ctx context.Context) error {
	// 1) Shutdown server
	app.appLogger.Info().Msg("Shutting down server...")
	if err := app.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	app.appLogger.Info().Msg("Server stopped")

	// 2) Cancel background scheduler
	app.backgroundCancel()

	// 3) Wait for an in-flight collection run to finish
	if app.collectionScheduler != nil {
		app.collectionScheduler.Stop()
		app.appLogger.Info().Msg("Collection scheduler stopped")
	}

	// 4) Close the database pool
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			return fmt.Errorf("closing database failed: %w", err)
		}
	}

	return nil
}
