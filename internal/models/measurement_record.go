package models

import "time"

// MeasurementRecord is a single traffic-volume reading for one detector of
// one device. Records are written once per upstream poll and never mutated.
//
// Example JSON:
//
//	{
//	  "deviceId": "OULU002",
//	  "detectorId": "D1_50",
//	  "measuredTime": "2025-12-28T18:05:00Z",
//	  "signalGroup": "A",
//	  "detectorName": "D1_50",
//	  "measurementName": "trafficVolume",
//	  "value": 12,
//	  "unit": "pcs",
//	  "interval": 300,
//	  "reliability": 5
//	}
type MeasurementRecord struct {
	DeviceID        string    `json:"deviceId"`
	DetectorID      string    `json:"detectorId"`
	MeasuredTime    time.Time `json:"measuredTime"`
	SignalGroup     string    `json:"signalGroup,omitempty"`
	DetectorName    string    `json:"detectorName,omitempty"`
	MeasurementName string    `json:"measurementName,omitempty"`
	Value           float64   `json:"value"`
	Unit            string    `json:"unit,omitempty"`
	Interval        int       `json:"interval"`
	Reliability     int       `json:"reliability"`
}

// MeasurementFilter narrows a record listing. Nil bounds are open; both
// bounds are inclusive. A zero Limit means no limit.
type MeasurementFilter struct {
	Start      *time.Time
	End        *time.Time
	DeviceID   string
	DetectorID string
	Limit      int
}

// Matches reports whether r satisfies the filter bounds and identifiers.
func (f MeasurementFilter) Matches(r *MeasurementRecord) bool {
	if f.DeviceID != "" && r.DeviceID != f.DeviceID {
		return false
	}
	if f.DetectorID != "" && r.DetectorID != f.DetectorID {
		return false
	}
	if f.Start != nil && r.MeasuredTime.Before(*f.Start) {
		return false
	}
	if f.End != nil && r.MeasuredTime.After(*f.End) {
		return false
	}
	return true
}
