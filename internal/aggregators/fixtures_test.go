package aggregators

import (
	"testing"
	"time"

	"traffic-analytics/internal/models"

	"github.com/stretchr/testify/require"
)

// testCatalog configures:
//   - OULU002: D1_50 IN, LL3+LL4 OUT, both "Saaristonkatu - Rautatienkatu"
//   - OULU016: D1 IN, D2 OUT, "Kajaanintie"
//   - OULU022: D1_40 ALL, "Isokatu-Heikinkatu"
func testCatalog(t *testing.T) *models.EntityCatalog {
	t.Helper()

	catalog, err := models.NewEntityCatalog([]models.MonitoredEntity{
		{DeviceID: "OULU002", Detectors: []string{"D1_50"}, Direction: models.DirectionIn, Description: "Saaristonkatu - Rautatienkatu", Keywords: []string{"Pääväylä"}},
		{DeviceID: "OULU002", Detectors: []string{"LL3", "LL4"}, Direction: models.DirectionOut, Description: "Saaristonkatu - Rautatienkatu", Keywords: []string{"Keskusta"}},
		{DeviceID: "OULU016", Detectors: []string{"D1"}, Direction: models.DirectionIn, Description: "Kajaanintie", Keywords: []string{"Sandy"}},
		{DeviceID: "OULU016", Detectors: []string{"D2"}, Direction: models.DirectionOut, Description: "Kajaanintie", Keywords: []string{"Sandy"}},
		{DeviceID: "OULU022", Detectors: []string{"D1_40"}, Direction: models.DirectionAll, Description: "Isokatu-Heikinkatu", Keywords: []string{"Keskusta"}},
	})
	require.NoError(t, err)
	return catalog
}

func record(deviceID, detectorID string, measuredTime time.Time, value float64) *models.MeasurementRecord {
	return &models.MeasurementRecord{
		DeviceID:     deviceID,
		DetectorID:   detectorID,
		MeasuredTime: measuredTime,
		Value:        value,
		Unit:         "pcs",
		Interval:     300,
		Reliability:  5,
	}
}

func at(hour, minute int) time.Time {
	return time.Date(2025, 12, 28, hour, minute, 0, 0, time.UTC)
}

func dayRange() models.TimeRange {
	start := time.Date(2025, 12, 28, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 12, 28, 23, 59, 59, 0, time.UTC)
	return models.TimeRange{Start: &start, End: &end}
}
