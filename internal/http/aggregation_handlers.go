package http

import (
	"net/http"

	"traffic-analytics/internal/aggregators"
	"traffic-analytics/internal/models"
)

// SummariesResponse is the body of GET /api/v1/summaries.
type SummariesResponse struct {
	Summaries []*models.IntersectionSummary `json:"summaries"`
}

// EntitiesResponse is the body of GET /api/v1/entities.
type EntitiesResponse struct {
	Entities []*models.MonitoredEntity `json:"entities"`
}

// KeywordsResponse is the body of GET /api/v1/keywords.
type KeywordsResponse struct {
	Keywords []string `json:"keywords"`
}

// MeasurementsResponse is the body of GET /api/v1/measurements.
type MeasurementsResponse struct {
	Measurements []*models.MeasurementRecord `json:"measurements"`
}

type aggregatesHandler struct {
	aggregationService aggregators.AggregationService
}

func NewAggregatesHandler(aggregationService aggregators.AggregationService) AppHttpHandler {
	return &aggregatesHandler{aggregationService: aggregationService}
}

// Handle processes GET /api/v1/aggregates requests.
func (h *aggregatesHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	result, err := h.aggregationService.Aggregate(r.Context(), queryParams(r))
	if err != nil {
		return err
	}

	writeJSON(w, r, http.StatusOK, result)
	return nil
}

type summariesHandler struct {
	aggregationService aggregators.AggregationService
}

func NewSummariesHandler(aggregationService aggregators.AggregationService) AppHttpHandler {
	return &summariesHandler{aggregationService: aggregationService}
}

// Handle processes GET /api/v1/summaries requests.
func (h *summariesHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	summaries, err := h.aggregationService.Summaries(r.Context(), queryParams(r))
	if err != nil {
		return err
	}
	if summaries == nil {
		summaries = []*models.IntersectionSummary{}
	}

	writeJSON(w, r, http.StatusOK, SummariesResponse{Summaries: summaries})
	return nil
}

type entitiesHandler struct {
	aggregationService aggregators.AggregationService
}

func NewEntitiesHandler(aggregationService aggregators.AggregationService) AppHttpHandler {
	return &entitiesHandler{aggregationService: aggregationService}
}

func (h *entitiesHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	entities := h.aggregationService.Entities()
	if entities == nil {
		entities = []*models.MonitoredEntity{}
	}
	writeJSON(w, r, http.StatusOK, EntitiesResponse{Entities: entities})
	return nil
}

type keywordsHandler struct {
	aggregationService aggregators.AggregationService
}

func NewKeywordsHandler(aggregationService aggregators.AggregationService) AppHttpHandler {
	return &keywordsHandler{aggregationService: aggregationService}
}

func (h *keywordsHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	keywords := h.aggregationService.Keywords()
	if keywords == nil {
		keywords = []string{}
	}
	writeJSON(w, r, http.StatusOK, KeywordsResponse{Keywords: keywords})
	return nil
}

type measurementsHandler struct {
	aggregationService aggregators.AggregationService
}

func NewMeasurementsHandler(aggregationService aggregators.AggregationService) AppHttpHandler {
	return &measurementsHandler{aggregationService: aggregationService}
}

// Handle processes GET /api/v1/measurements requests.
func (h *measurementsHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	q := r.URL.Query()
	records, err := h.aggregationService.Measurements(r.Context(), aggregators.MeasurementParams{
		DeviceID:   q.Get(queryDevice),
		DetectorID: q.Get(queryDetector),
		Start:      q.Get(queryStart),
		End:        q.Get(queryEnd),
		Limit:      q.Get(queryLimit),
	})
	if err != nil {
		return err
	}
	if records == nil {
		records = []*models.MeasurementRecord{}
	}

	writeJSON(w, r, http.StatusOK, MeasurementsResponse{Measurements: records})
	return nil
}
