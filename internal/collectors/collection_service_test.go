package collectors_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"traffic-analytics/internal/collectors"
	collectormocks "traffic-analytics/internal/collectors/mocks"
	"traffic-analytics/internal/models"
	"traffic-analytics/internal/shared/svcerrors"
	"traffic-analytics/internal/stores"
	storemocks "traffic-analytics/internal/stores/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newCatalog(t *testing.T) *models.EntityCatalog {
	t.Helper()

	catalog, err := models.NewEntityCatalog([]models.MonitoredEntity{
		{DeviceID: "OULU002", Detectors: []string{"D1_50"}, Direction: models.DirectionIn, Description: "Saaristonkatu"},
		{DeviceID: "OULU002", Detectors: []string{"LL3", "LL4"}, Direction: models.DirectionOut, Description: "Saaristonkatu"},
	})
	require.NoError(t, err)
	return catalog
}

func reading(deviceID, detectorID string) *models.MeasurementRecord {
	return &models.MeasurementRecord{
		DeviceID:     deviceID,
		DetectorID:   detectorID,
		MeasuredTime: time.Date(2025, 12, 28, 18, 5, 0, 0, time.UTC),
		Value:        12,
	}
}

func TestCollect_Statuses(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := collectormocks.NewMockTrafficVolumeClient(ctrl)
	store := storemocks.NewMockMeasurementStore(ctrl)

	gomock.InOrder(
		client.EXPECT().Fetch(gomock.Any(), "OULU002", "D1_50").Return([]*models.MeasurementRecord{reading("OULU002", "D1_50")}, nil),
		store.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil),
		client.EXPECT().Fetch(gomock.Any(), "OULU002", "LL3").Return([]*models.MeasurementRecord{reading("OULU002", "LL3")}, nil),
		store.EXPECT().Save(gomock.Any(), gomock.Any()).Return(stores.ErrMeasurementAlreadyExist),
		client.EXPECT().Fetch(gomock.Any(), "OULU002", "LL4").Return(nil, assert.AnError),
	)

	service := collectors.NewCollectionService(newCatalog(t), client, store, collectors.CollectionServiceConfig{})
	report, err := service.Collect(context.Background(), collectors.TriggerManual)

	require.NoError(t, err)
	require.NotNil(t, report)
	assert.NotEmpty(t, report.RunID)
	assert.False(t, report.FinishedAt.Before(report.StartedAt))
	assert.Equal(t, 3, report.Processed)
	assert.Equal(t, 1, report.Saved)
	assert.Equal(t, 1, report.Skipped)
	assert.Equal(t, 1, report.Failed)

	require.Len(t, report.Details, 3)
	assert.Equal(t, models.PollStatusSaved, report.Details[0].Status)
	assert.Equal(t, 1, report.Details[0].Records)
	assert.Equal(t, models.PollStatusSkippedExists, report.Details[1].Status)
	assert.Equal(t, "LL4", report.Details[2].DetectorID)
	assert.Equal(t, models.PollStatusFailedToFetch, report.Details[2].Status)
	assert.NotEmpty(t, report.Details[2].Error)
}

func TestCollect_SaveFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		saveErrors      []error
		expectedStatus  models.PollStatus
		expectedRecords int
	}{
		{
			name:            "any saved value marks the poll saved",
			saveErrors:      []error{stores.ErrMeasurementAlreadyExist, nil},
			expectedStatus:  models.PollStatusSaved,
			expectedRecords: 1,
		},
		{
			name:            "every value already stored",
			saveErrors:      []error{stores.ErrMeasurementAlreadyExist, stores.ErrMeasurementAlreadyExist},
			expectedStatus:  models.PollStatusSkippedExists,
			expectedRecords: 0,
		},
		{
			name:            "store failure stops the poll",
			saveErrors:      []error{nil, assert.AnError},
			expectedStatus:  models.PollStatusFailedToSave,
			expectedRecords: 1,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			client := collectormocks.NewMockTrafficVolumeClient(ctrl)
			store := storemocks.NewMockMeasurementStore(ctrl)

			catalog, err := models.NewEntityCatalog([]models.MonitoredEntity{
				{DeviceID: "OULU016", Detectors: []string{"D1"}, Direction: models.DirectionIn},
			})
			require.NoError(t, err)

			client.EXPECT().Fetch(gomock.Any(), "OULU016", "D1").
				Return([]*models.MeasurementRecord{reading("OULU016", "D1"), reading("OULU016", "D1")}, nil)
			calls := make([]any, 0, len(tt.saveErrors))
			for _, saveErr := range tt.saveErrors {
				calls = append(calls, store.EXPECT().Save(gomock.Any(), gomock.Any()).Return(saveErr))
			}
			gomock.InOrder(calls...)

			service := collectors.NewCollectionService(catalog, client, store, collectors.CollectionServiceConfig{})
			report, err := service.Collect(context.Background(), collectors.TriggerManual)

			require.NoError(t, err)
			require.Len(t, report.Details, 1)
			assert.Equal(t, tt.expectedStatus, report.Details[0].Status)
			assert.Equal(t, tt.expectedRecords, report.Details[0].Records)
			assert.Equal(t, 1, report.Processed)
		})
	}
}

func TestCollect_EmptyCatalog(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	client := collectormocks.NewMockTrafficVolumeClient(ctrl)
	store := storemocks.NewMockMeasurementStore(ctrl)

	catalog, err := models.NewEntityCatalog(nil)
	require.NoError(t, err)

	service := collectors.NewCollectionService(catalog, client, store, collectors.CollectionServiceConfig{})
	report, err := service.Collect(context.Background(), collectors.TriggerSchedule)

	require.NoError(t, err)
	assert.Equal(t, 0, report.Processed)
	assert.NotNil(t, report.Details)
	assert.Empty(t, report.Details)
}

func TestCollect_ErrCollectionCancelled(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	client := collectormocks.NewMockTrafficVolumeClient(ctrl)
	store := storemocks.NewMockMeasurementStore(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client.EXPECT().Fetch(gomock.Any(), "OULU002", "D1_50").
		DoAndReturn(func(context.Context, string, string) ([]*models.MeasurementRecord, error) {
			return []*models.MeasurementRecord{reading("OULU002", "D1_50")}, nil
		})
	store.EXPECT().Save(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, *models.MeasurementRecord) error {
			cancel()
			return nil
		})

	service := collectors.NewCollectionService(newCatalog(t), client, store, collectors.CollectionServiceConfig{
		RequestDelay: time.Hour,
	})
	report, err := service.Collect(ctx, collectors.TriggerManual)

	require.Error(t, err)
	svcErr, ok := svcerrors.AsServiceError(err)
	require.True(t, ok, "expected ServiceError")
	assert.Equal(t, "COL_9001", svcErr.Code)
	assert.ErrorIs(t, err, context.Canceled)

	require.NotNil(t, report, "partial report is returned")
	assert.Equal(t, 1, report.Processed)
	assert.Equal(t, 1, report.Saved)
	assert.False(t, report.FinishedAt.IsZero())
}

func TestCollect_CancelledFetchIsNotReportedAsDetectorFailure(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	client := collectormocks.NewMockTrafficVolumeClient(ctrl)
	store := storemocks.NewMockMeasurementStore(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client.EXPECT().Fetch(gomock.Any(), "OULU002", "D1_50").
		DoAndReturn(func(context.Context, string, string) ([]*models.MeasurementRecord, error) {
			cancel()
			return nil, context.Canceled
		})

	service := collectors.NewCollectionService(newCatalog(t), client, store, collectors.CollectionServiceConfig{})
	report, err := service.Collect(ctx, collectors.TriggerManual)

	require.Error(t, err)
	assert.Equal(t, 0, report.Processed)
	assert.Equal(t, 0, report.Failed)
}

func TestCollect_ErrCollectionRunning(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	client := collectormocks.NewMockTrafficVolumeClient(ctrl)
	store := storemocks.NewMockMeasurementStore(ctrl)

	catalog, err := models.NewEntityCatalog([]models.MonitoredEntity{
		{DeviceID: "OULU016", Detectors: []string{"D1"}, Direction: models.DirectionIn},
	})
	require.NoError(t, err)

	entered := make(chan struct{})
	release := make(chan struct{})
	client.EXPECT().Fetch(gomock.Any(), "OULU016", "D1").
		DoAndReturn(func(context.Context, string, string) ([]*models.MeasurementRecord, error) {
			close(entered)
			<-release
			return nil, nil
		})

	service := collectors.NewCollectionService(catalog, client, store, collectors.CollectionServiceConfig{})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _ = service.Collect(context.Background(), collectors.TriggerSchedule)
	}()
	<-entered

	report, err := service.Collect(context.Background(), collectors.TriggerManual)
	close(release)
	wg.Wait()

	require.Error(t, err)
	svcErr, ok := svcerrors.AsServiceError(err)
	require.True(t, ok, "expected ServiceError")
	assert.Equal(t, "COL_1001", svcErr.Code)
	assert.Equal(t, "resource_conflict", svcErr.Category)
	assert.Nil(t, report)
}

func TestCollect_RequestDelayBetweenCalls(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	client := collectormocks.NewMockTrafficVolumeClient(ctrl)
	store := storemocks.NewMockMeasurementStore(ctrl)

	var calls []time.Time
	client.EXPECT().Fetch(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, string, string) ([]*models.MeasurementRecord, error) {
			calls = append(calls, time.Now())
			return nil, nil
		}).Times(3)

	service := collectors.NewCollectionService(newCatalog(t), client, store, collectors.CollectionServiceConfig{
		RequestDelay: 20 * time.Millisecond,
	})
	report, err := service.Collect(context.Background(), collectors.TriggerManual)

	require.NoError(t, err)
	assert.Equal(t, 3, report.Skipped)
	require.Len(t, calls, 3)
	for i := 1; i < len(calls); i++ {
		assert.GreaterOrEqual(t, calls[i].Sub(calls[i-1]), 20*time.Millisecond)
	}
}

func TestAuthorize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		secret        string
		authorization string
		wantErr       bool
	}{
		{name: "no secret configured", secret: "", authorization: "", wantErr: false},
		{name: "matching bearer", secret: "s3cret", authorization: "Bearer s3cret", wantErr: false},
		{name: "missing header", secret: "s3cret", authorization: "", wantErr: true},
		{name: "wrong token", secret: "s3cret", authorization: "Bearer nope", wantErr: true},
		{name: "wrong scheme", secret: "s3cret", authorization: "Basic s3cret", wantErr: true},
		{name: "bare token", secret: "s3cret", authorization: "s3cret", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			service := collectors.NewCollectionService(nil, nil, nil, collectors.CollectionServiceConfig{Secret: tt.secret})
			err := service.Authorize(tt.authorization)

			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			svcErr, ok := svcerrors.AsServiceError(err)
			require.True(t, ok, "expected ServiceError")
			assert.Equal(t, "COL_1000", svcErr.Code)
			assert.Equal(t, 401, svcErr.HttpStatusCode)
		})
	}
}
