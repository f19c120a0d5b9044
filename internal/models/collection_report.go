package models

import "time"

// PollStatus is the outcome of polling one (device, detector) pair.
type PollStatus string

const (
	PollStatusSaved         PollStatus = "saved"
	PollStatusSkippedExists PollStatus = "skipped_exists"
	PollStatusFailedToFetch PollStatus = "failed_to_fetch"
	PollStatusFailedToSave  PollStatus = "failed_to_save"
)

// PollDetail records what happened to one detector during a collection run.
type PollDetail struct {
	DeviceID   string     `json:"deviceId"`
	DetectorID string     `json:"detectorId"`
	Status     PollStatus `json:"status"`
	Records    int        `json:"records"`
	Error      string     `json:"error,omitempty"`
}

// CollectionReport summarizes one collection run over every configured detector.
//
// Example JSON:
//
//	{
//	  "runId": "01JGA7Q4Z0M8W5N3R2T1V0X9YB",
//	  "startedAt": "2025-12-28T18:06:00Z",
//	  "finishedAt": "2025-12-28T18:06:02Z",
//	  "processed": 2,
//	  "saved": 1,
//	  "skipped": 1,
//	  "failed": 0,
//	  "details": [
//	    {"deviceId": "OULU002", "detectorId": "D1_50", "status": "saved", "records": 1},
//	    {"deviceId": "OULU002", "detectorId": "LL3", "status": "skipped_exists", "records": 0}
//	  ]
//	}
type CollectionReport struct {
	RunID      string        `json:"runId"`
	StartedAt  time.Time     `json:"startedAt"`
	FinishedAt time.Time     `json:"finishedAt"`
	Processed  int           `json:"processed"`
	Saved      int           `json:"saved"`
	Skipped    int           `json:"skipped"`
	Failed     int           `json:"failed"`
	Details    []*PollDetail `json:"details"`
}

// Add appends detail and updates the counters for its status.
func (r *CollectionReport) Add(detail *PollDetail) {
	r.Processed++
	switch detail.Status {
	case PollStatusSaved:
		r.Saved++
	case PollStatusSkippedExists:
		r.Skipped++
	default:
		r.Failed++
	}
	r.Details = append(r.Details, detail)
}
