package aggregators

import (
	"traffic-analytics/internal/models"
)

//go:generate mockgen -source=direction_rolluper.go -destination=./mocks/direction_rolluper_mock.go -package=mocks
type DirectionRolluper interface {
	// Rollup mutates result by adding total_IN, total_OUT and total_ALL to
	// every row and summing them into result.Totals.
	Rollup(result *models.AggregationResult, catalog *models.EntityCatalog)
}

type directionRolluper struct{}

func NewDirectionRolluper() DirectionRolluper {
	return &directionRolluper{}
}

// Rollup sums the per-device series of each row over the configured devices.
//
// total_ALL sums the direction-agnostic device keys, so it is not derived from
// total_IN and total_OUT: ALL-direction devices contribute only to total_ALL,
// while a device with both IN and OUT entities contributes to all three.
func (r *directionRolluper) Rollup(result *models.AggregationResult, catalog *models.EntityCatalog) {
	result.Totals = map[string]float64{
		models.SeriesTotalIn:  0,
		models.SeriesTotalOut: 0,
		models.SeriesTotalAll: 0,
	}
	if catalog == nil {
		return
	}

	deviceIDs := catalog.DeviceIDs()
	for _, row := range result.Rows {
		var totalIn, totalOut, totalAll float64
		for _, deviceID := range deviceIDs {
			totalIn += row.Value(models.DirectionSeriesKey(deviceID, models.DirectionIn))
			totalOut += row.Value(models.DirectionSeriesKey(deviceID, models.DirectionOut))
			totalAll += row.Value(models.DeviceSeriesKey(deviceID))
		}

		row.Values[models.SeriesTotalIn] = totalIn
		row.Values[models.SeriesTotalOut] = totalOut
		row.Values[models.SeriesTotalAll] = totalAll

		result.Totals[models.SeriesTotalIn] += totalIn
		result.Totals[models.SeriesTotalOut] += totalOut
		result.Totals[models.SeriesTotalAll] += totalAll
	}
}
