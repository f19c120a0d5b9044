package collectors

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"traffic-analytics/internal/models"
)

const (
	defaultRequestTimeout = 10 * time.Second
	maxResponseBytes      = 1 << 20
)

var (
	ErrUnexpectedStatus = errors.New("unexpected upstream status")
	ErrInvalidPayload   = errors.New("invalid upstream payload")
)

// trafficVolumePayload is the body of GET {base}/{deviceId}/{detectorId}.
//
// Example:
//
//	{
//	  "devName": "OULU002",
//	  "measuredTime": "2025-12-28T18:05:00.000Z",
//	  "values": [
//	    {"sgName": "A", "detName": "D1_50", "name": "trafficVolume", "value": 12, "unit": "pcs", "interval": 300, "reliabValue": 5}
//	  ]
//	}
type trafficVolumePayload struct {
	DevName      string               `json:"devName"`
	MeasuredTime string               `json:"measuredTime"`
	Values       []trafficVolumeValue `json:"values"`
}

type trafficVolumeValue struct {
	SgName      string   `json:"sgName"`
	DetName     string   `json:"detName"`
	Name        string   `json:"name"`
	Value       *float64 `json:"value"`
	Unit        string   `json:"unit"`
	Interval    int      `json:"interval"`
	ReliabValue int      `json:"reliabValue"`
}

//go:generate mockgen -source=traffic_volume_client.go -destination=./mocks/traffic_volume_client_mock.go -package=mocks
type TrafficVolumeClient interface {
	// Fetch returns the latest reading of one detector as one record per
	// value entry. Records carry the requested device and detector IDs.
	Fetch(ctx context.Context, deviceID, detectorID string) ([]*models.MeasurementRecord, error)
}

type trafficVolumeClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewTrafficVolumeClient returns a client for the traffic-volume KPI API
// rooted at baseURL. A non-positive timeout selects the default.
func NewTrafficVolumeClient(baseURL string, timeout time.Duration) TrafficVolumeClient {
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return &trafficVolumeClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *trafficVolumeClient) Fetch(ctx context.Context, deviceID, detectorID string) ([]*models.MeasurementRecord, error) {
	endpoint := c.baseURL + "/" + url.PathEscape(deviceID) + "/" + url.PathEscape(detectorID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s/%s: %w", deviceID, detectorID, err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metricUpstreamRequestDuration.WithLabelValues(outcomeError).Observe(time.Since(start).Seconds())
		return nil, fmt.Errorf("request for %s/%s failed: %w", deviceID, detectorID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metricUpstreamRequestDuration.WithLabelValues(outcomeError).Observe(time.Since(start).Seconds())
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		return nil, fmt.Errorf("%w: %s/%s returned %d", ErrUnexpectedStatus, deviceID, detectorID, resp.StatusCode)
	}

	var payload trafficVolumePayload
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&payload); err != nil {
		metricUpstreamRequestDuration.WithLabelValues(outcomeError).Observe(time.Since(start).Seconds())
		return nil, fmt.Errorf("%w: %s/%s: %v", ErrInvalidPayload, deviceID, detectorID, err)
	}
	metricUpstreamRequestDuration.WithLabelValues(outcomeOK).Observe(time.Since(start).Seconds())

	return toRecords(deviceID, detectorID, &payload)
}

func toRecords(deviceID, detectorID string, payload *trafficVolumePayload) ([]*models.MeasurementRecord, error) {
	measuredTime, err := parseMeasuredTime(payload.MeasuredTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %s/%s: measuredTime %q: %v", ErrInvalidPayload, deviceID, detectorID, payload.MeasuredTime, err)
	}

	records := make([]*models.MeasurementRecord, 0, len(payload.Values))
	for _, v := range payload.Values {
		var value float64
		if v.Value != nil {
			value = *v.Value
		}
		records = append(records, &models.MeasurementRecord{
			DeviceID:        deviceID,
			DetectorID:      detectorID,
			MeasuredTime:    measuredTime,
			SignalGroup:     v.SgName,
			DetectorName:    v.DetName,
			MeasurementName: v.Name,
			Value:           value,
			Unit:            v.Unit,
			Interval:        v.Interval,
			Reliability:     v.ReliabValue,
		})
	}
	return records, nil
}

// parseMeasuredTime accepts RFC 3339 and treats zone-less timestamps as UTC.
func parseMeasuredTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse("2006-01-02T15:04:05.999999999", value)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
