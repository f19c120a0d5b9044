package http

import (
	"net/http"

	"traffic-analytics/internal/aggregators"
	"traffic-analytics/internal/collectors"
	"traffic-analytics/internal/shared/loggers"
	"traffic-analytics/internal/shared/metrics"
	"traffic-analytics/internal/stores"

	"github.com/go-chi/chi/v5"
)

// NewRouter creates and configures the HTTP router.
func NewRouter(
	aggregationService aggregators.AggregationService,
	collectionService collectors.CollectionService,
	measurementStore stores.MeasurementStore,
	httpLogger loggers.Logger,
) http.Handler {
	router := chi.NewRouter()
	setupMiddleware(router, httpLogger)

	// Initialize handlers
	collectHandler := errorHandlingAdapter(NewCollectHandler(collectionService))

	// Routes
	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/aggregates", errorHandlingAdapter(NewAggregatesHandler(aggregationService)))
		r.Get("/summaries", errorHandlingAdapter(NewSummariesHandler(aggregationService)))
		r.Get("/entities", errorHandlingAdapter(NewEntitiesHandler(aggregationService)))
		r.Get("/keywords", errorHandlingAdapter(NewKeywordsHandler(aggregationService)))
		r.Get("/measurements", errorHandlingAdapter(NewMeasurementsHandler(aggregationService)))
		r.Post("/collect", collectHandler)
		r.Get("/collect", collectHandler)
	})
	router.Get("/healthz", errorHandlingAdapter(NewHealthHandler(measurementStore)))
	router.Get("/metrics", metrics.PromHTTP.Handler().ServeHTTP)

	return router
}
