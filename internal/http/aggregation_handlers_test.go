package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"traffic-analytics/internal/aggregators"
	aggregatormocks "traffic-analytics/internal/aggregators/mocks"
	"traffic-analytics/internal/models"
	"traffic-analytics/internal/shared/svcerrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestAggregatesHandler_Handle_Success(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAggregationService := aggregatormocks.NewMockAggregationService(ctrl)
	handler := NewAggregatesHandler(mockAggregationService)

	row := models.NewAggregatedRow(time.Date(2025, 12, 28, 18, 0, 0, 0, time.UTC))
	row.Values["OULU002_IN"] = 12
	row.Values[models.SeriesTotalIn] = 12

	mockAggregationService.EXPECT().
		Aggregate(gomock.Any(), aggregators.QueryParams{
			Granularity: "hour",
			Start:       "2025-12-28T00:00",
			Keywords:    []string{"Keskusta", "Sandy", "Pääväylä"},
		}).
		Return(&models.AggregationResult{
			Granularity: models.GranularityHour,
			Rows:        []*models.AggregatedRow{row},
			Totals:      map[string]float64{models.SeriesTotalIn: 12, models.SeriesTotalOut: 0, models.SeriesTotalAll: 12},
		}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/aggregates?granularity=hour&start=2025-12-28T00:00&keywords=Keskusta,%20Sandy&keywords=P%C3%A4%C3%A4v%C3%A4yl%C3%A4", nil)
	rr := httptest.NewRecorder()

	err := handler.Handle(rr, req)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "hour", body["granularity"])
	rows, ok := body["rows"].([]any)
	require.True(t, ok)
	require.Len(t, rows, 1)
	first := rows[0].(map[string]any)
	assert.Equal(t, "2025-12-28T18:00:00Z", first["timestamp"])
	assert.Equal(t, float64(12), first["OULU002_IN"])
	assert.Equal(t, float64(12), body["totals"].(map[string]any)["total_ALL"])
}

func TestAggregatesHandler_Handle_Error(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAggregationService := aggregatormocks.NewMockAggregationService(ctrl)
	handler := NewAggregatesHandler(mockAggregationService)

	expectedErr := svcerrors.NewInvalidArgumentError("AGG_1000", "granularity must be one of 5min, 15min, hour, day, week, month, year", nil)
	mockAggregationService.EXPECT().Aggregate(gomock.Any(), gomock.Any()).Return(nil, expectedErr)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/aggregates?granularity=minute", nil)
	rr := httptest.NewRecorder()

	err := handler.Handle(rr, req)

	require.Error(t, err)
	svcErr, ok := svcerrors.AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, "AGG_1000", svcErr.Code)
	// Status should not be set when error occurs
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, rr.Body.String())
}

func TestSummariesHandler_Handle(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAggregationService := aggregatormocks.NewMockAggregationService(ctrl)
	handler := NewSummariesHandler(mockAggregationService)

	mockAggregationService.EXPECT().
		Summaries(gomock.Any(), aggregators.QueryParams{Sort: "all", Order: "desc"}).
		Return(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/summaries?sort=all&order=desc", nil)
	rr := httptest.NewRecorder()

	err := handler.Handle(rr, req)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"summaries": []}`, rr.Body.String())
}

func TestCatalogHandlers_Handle(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAggregationService := aggregatormocks.NewMockAggregationService(ctrl)
	mockAggregationService.EXPECT().Entities().Return([]*models.MonitoredEntity{
		{DeviceID: "OULU002", Detectors: []string{"D1_50"}, Direction: models.DirectionIn, Keywords: []string{"Keskusta"}},
	})
	mockAggregationService.EXPECT().Keywords().Return(nil)

	rr := httptest.NewRecorder()
	require.NoError(t, NewEntitiesHandler(mockAggregationService).Handle(rr, httptest.NewRequest(http.MethodGet, "/api/v1/entities", nil)))
	assert.JSONEq(t, `{"entities": [{"deviceId": "OULU002", "detectors": ["D1_50"], "direction": "IN", "keywords": ["Keskusta"]}]}`, rr.Body.String())

	rr = httptest.NewRecorder()
	require.NoError(t, NewKeywordsHandler(mockAggregationService).Handle(rr, httptest.NewRequest(http.MethodGet, "/api/v1/keywords", nil)))
	assert.JSONEq(t, `{"keywords": []}`, rr.Body.String())
}

func TestMeasurementsHandler_Handle(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAggregationService := aggregatormocks.NewMockAggregationService(ctrl)
	handler := NewMeasurementsHandler(mockAggregationService)

	mockAggregationService.EXPECT().
		Measurements(gomock.Any(), aggregators.MeasurementParams{
			DeviceID:   "OULU002",
			DetectorID: "D1_50",
			Limit:      "10",
		}).
		Return([]*models.MeasurementRecord{{
			DeviceID:     "OULU002",
			DetectorID:   "D1_50",
			MeasuredTime: time.Date(2025, 12, 28, 18, 5, 0, 0, time.UTC),
			Value:        12,
		}}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/measurements?device=OULU002&detector=D1_50&limit=10", nil)
	rr := httptest.NewRecorder()

	err := handler.Handle(rr, req)

	require.NoError(t, err)
	var body MeasurementsResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.Len(t, body.Measurements, 1)
	assert.Equal(t, float64(12), body.Measurements[0].Value)
}

func TestSplitList(t *testing.T) {
	t.Parallel()

	assert.Nil(t, splitList(nil))
	assert.Equal(t, []string{"a", "b", "c"}, splitList([]string{"a, b", " ,c,"}))
}
