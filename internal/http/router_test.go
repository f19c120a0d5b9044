package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	aggregatormocks "traffic-analytics/internal/aggregators/mocks"
	collectormocks "traffic-analytics/internal/collectors/mocks"
	"traffic-analytics/internal/models"
	storemocks "traffic-analytics/internal/stores/mocks"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestNewRouter_Routes(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	aggregationService := aggregatormocks.NewMockAggregationService(ctrl)
	collectionService := collectormocks.NewMockCollectionService(ctrl)
	measurementStore := storemocks.NewMockMeasurementStore(ctrl)

	aggregationService.EXPECT().Aggregate(gomock.Any(), gomock.Any()).Return(&models.AggregationResult{Rows: []*models.AggregatedRow{}}, nil)
	aggregationService.EXPECT().Summaries(gomock.Any(), gomock.Any()).Return(nil, nil)
	aggregationService.EXPECT().Entities().Return(nil)
	aggregationService.EXPECT().Keywords().Return(nil)
	aggregationService.EXPECT().Measurements(gomock.Any(), gomock.Any()).Return(nil, nil)
	collectionService.EXPECT().Authorize(gomock.Any()).Return(nil).Times(2)
	collectionService.EXPECT().Collect(gomock.Any(), gomock.Any()).Return(&models.CollectionReport{}, nil).Times(2)
	measurementStore.EXPECT().Ping(gomock.Any()).Return(nil)

	router := NewRouter(aggregationService, collectionService, measurementStore, zerolog.Nop())

	tests := []struct {
		method string
		path   string
		status int
	}{
		{method: http.MethodGet, path: "/api/v1/aggregates", status: http.StatusOK},
		{method: http.MethodGet, path: "/api/v1/summaries", status: http.StatusOK},
		{method: http.MethodGet, path: "/api/v1/entities", status: http.StatusOK},
		{method: http.MethodGet, path: "/api/v1/keywords", status: http.StatusOK},
		{method: http.MethodGet, path: "/api/v1/measurements", status: http.StatusOK},
		{method: http.MethodPost, path: "/api/v1/collect", status: http.StatusOK},
		{method: http.MethodGet, path: "/api/v1/collect", status: http.StatusOK},
		{method: http.MethodGet, path: "/healthz", status: http.StatusOK},
		{method: http.MethodGet, path: "/metrics", status: http.StatusOK},
		{method: http.MethodGet, path: "/api/v1/unknown", status: http.StatusNotFound},
		{method: http.MethodDelete, path: "/api/v1/aggregates", status: http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(tt.method, tt.path, nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, tt.status, rr.Code, "%s %s", tt.method, tt.path)
		assert.NotEmpty(t, req.Header.Get(headerRequestID), "%s %s", tt.method, tt.path)
	}
}
