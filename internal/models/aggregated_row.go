package models

import (
	"encoding/json"
	"fmt"
	"time"
)

const (
	SeriesTotalIn  = "total_IN"
	SeriesTotalOut = "total_OUT"
	SeriesTotalAll = "total_ALL"

	seriesTimestamp = "timestamp"
)

// DirectionSeriesKey returns the direction-qualified series key, e.g. "OULU002_OUT".
func DirectionSeriesKey(deviceID string, direction Direction) string {
	return fmt.Sprintf("%s_%s", deviceID, direction)
}

// DeviceSeriesKey returns the direction-agnostic series key of a device.
func DeviceSeriesKey(deviceID string) string {
	return deviceID
}

// AggregatedRow holds the summed values of one bucket keyed by series key.
// Absent keys mean zero.
//
// Rows serialize flat so they can be fed to a charting library directly:
//
//	{
//	  "timestamp": "2025-12-28T18:00:00Z",
//	  "OULU002_IN": 12,
//	  "OULU002_OUT": 7,
//	  "OULU002": 19,
//	  "total_IN": 12,
//	  "total_OUT": 7,
//	  "total_ALL": 19
//	}
type AggregatedRow struct {
	Timestamp time.Time
	Values    map[string]float64
}

func NewAggregatedRow(timestamp time.Time) *AggregatedRow {
	return &AggregatedRow{
		Timestamp: timestamp,
		Values:    make(map[string]float64),
	}
}

// Value returns the value of key, or zero when the key is absent.
func (r *AggregatedRow) Value(key string) float64 {
	return r.Values[key]
}

func (r *AggregatedRow) MarshalJSON() ([]byte, error) {
	flat := make(map[string]any, len(r.Values)+1)
	for k, v := range r.Values {
		flat[k] = v
	}
	flat[seriesTimestamp] = r.Timestamp.UTC().Format(time.RFC3339)
	return json.Marshal(flat)
}

func (r *AggregatedRow) UnmarshalJSON(data []byte) error {
	var flat map[string]json.RawMessage
	if err := json.Unmarshal(data, &flat); err != nil {
		return err
	}

	row := AggregatedRow{Values: make(map[string]float64, len(flat))}
	for k, raw := range flat {
		if k == seriesTimestamp {
			var ts string
			if err := json.Unmarshal(raw, &ts); err != nil {
				return fmt.Errorf("timestamp must be a string: %w", err)
			}
			parsed, err := time.Parse(time.RFC3339, ts)
			if err != nil {
				return fmt.Errorf("invalid timestamp %q: %w", ts, err)
			}
			row.Timestamp = parsed
			continue
		}
		var v float64
		if err := json.Unmarshal(raw, &v); err != nil {
			return fmt.Errorf("series %q must be a number: %w", k, err)
		}
		row.Values[k] = v
	}

	*r = row
	return nil
}
