package stores

import (
	"context"
	"errors"
	"sort"

	"traffic-analytics/internal/models"
)

var (
	ErrMeasurementAlreadyExist = errors.New("measurement already exists")
)

// MeasurementStore persists raw traffic-volume readings. A reading is
// identified by (deviceId, detectorId, measuredTime): Save is create-if-not-exists
// on that triple, so re-polling the upstream API is idempotent.
//
// Example scenario:
//   - The collector polls OULU002/D1_50 and saves the 18:05 reading
//   - The next poll runs before the upstream API publishes 18:10
//   - Save for the same 18:05 reading returns ErrMeasurementAlreadyExist
//   - The collector reports the poll as skipped_exists
//
//go:generate mockgen -source=measurement_store.go -destination=./mocks/measurement_store_mock.go -package=mocks
type MeasurementStore interface {
	Save(ctx context.Context, record *models.MeasurementRecord) error
	// List returns the records matching filter, newest first.
	List(ctx context.Context, filter models.MeasurementFilter) ([]*models.MeasurementRecord, error)
	// Ping verifies the backing storage is reachable.
	Ping(ctx context.Context) error
}

// sortNewestFirst orders records by measuredTime descending, then by device
// and detector so equal timestamps come back in a stable order.
func sortNewestFirst(records []*models.MeasurementRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if !a.MeasuredTime.Equal(b.MeasuredTime) {
			return a.MeasuredTime.After(b.MeasuredTime)
		}
		if a.DeviceID != b.DeviceID {
			return a.DeviceID < b.DeviceID
		}
		return a.DetectorID < b.DetectorID
	})
}
