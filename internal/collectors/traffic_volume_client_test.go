package collectors

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrafficVolumeClient_Fetch_Success(t *testing.T) {
	t.Parallel()

	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"devName": "OULU002",
			"measuredTime": "2025-12-28T20:05:00.000+02:00",
			"values": [
				{"sgName": "A", "detName": "D1_50", "name": "trafficVolume", "value": 12, "unit": "pcs", "interval": 300, "reliabValue": 5},
				{"sgName": "A", "detName": "D1_50", "name": "trafficVolume", "value": null, "unit": "pcs", "interval": 300, "reliabValue": 0}
			]
		}`))
	}))
	defer server.Close()

	client := NewTrafficVolumeClient(server.URL+"/tpm/kpi/traffic-volume/", time.Second)
	records, err := client.Fetch(context.Background(), "OULU002", "D1_50")

	require.NoError(t, err)
	assert.Equal(t, "/tpm/kpi/traffic-volume/OULU002/D1_50", gotPath)
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, "OULU002", first.DeviceID)
	assert.Equal(t, "D1_50", first.DetectorID)
	assert.True(t, time.Date(2025, 12, 28, 18, 5, 0, 0, time.UTC).Equal(first.MeasuredTime))
	assert.Equal(t, "A", first.SignalGroup)
	assert.Equal(t, "D1_50", first.DetectorName)
	assert.Equal(t, "trafficVolume", first.MeasurementName)
	assert.Equal(t, float64(12), first.Value)
	assert.Equal(t, "pcs", first.Unit)
	assert.Equal(t, 300, first.Interval)
	assert.Equal(t, 5, first.Reliability)

	assert.Equal(t, float64(0), records[1].Value, "null value counts as zero")
}

func TestTrafficVolumeClient_Fetch_UsesRequestedIDs(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"devName": "other", "measuredTime": "2025-12-28T18:05:00", "values": [{"detName": "X", "value": 3}]}`))
	}))
	defer server.Close()

	records, err := NewTrafficVolumeClient(server.URL, time.Second).Fetch(context.Background(), "OULU016", "D1")

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "OULU016", records[0].DeviceID)
	assert.Equal(t, "D1", records[0].DetectorID)
	assert.Equal(t, "X", records[0].DetectorName)
	assert.True(t, time.Date(2025, 12, 28, 18, 5, 0, 0, time.UTC).Equal(records[0].MeasuredTime))
}

func TestTrafficVolumeClient_Fetch_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		status      int
		body        string
		expectedErr error
	}{
		{name: "not found", status: http.StatusNotFound, body: `{}`, expectedErr: ErrUnexpectedStatus},
		{name: "server error", status: http.StatusBadGateway, body: `oops`, expectedErr: ErrUnexpectedStatus},
		{name: "malformed json", status: http.StatusOK, body: `{"values": [`, expectedErr: ErrInvalidPayload},
		{name: "bad timestamp", status: http.StatusOK, body: `{"measuredTime": "yesterday", "values": []}`, expectedErr: ErrInvalidPayload},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			records, err := NewTrafficVolumeClient(server.URL, time.Second).Fetch(context.Background(), "OULU002", "D1_50")

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.expectedErr)
			assert.Nil(t, records)
		})
	}
}

func TestTrafficVolumeClient_Fetch_ContextCancelled(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	records, err := NewTrafficVolumeClient(server.URL, time.Second).Fetch(ctx, "OULU002", "D1_50")

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, records)
}

func TestTrafficVolumeClient_Fetch_Timeout(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	_, err := NewTrafficVolumeClient(server.URL, 50*time.Millisecond).Fetch(context.Background(), "OULU002", "D1_50")
	require.Error(t, err)
}

func TestParseMeasuredTime(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected time.Time
		wantErr  bool
	}{
		{input: "2025-12-28T18:05:00Z", expected: time.Date(2025, 12, 28, 18, 5, 0, 0, time.UTC)},
		{input: "2025-12-28T18:05:00.123Z", expected: time.Date(2025, 12, 28, 18, 5, 0, 123000000, time.UTC)},
		{input: "2025-12-28T20:05:00+02:00", expected: time.Date(2025, 12, 28, 18, 5, 0, 0, time.UTC)},
		{input: "2025-12-28T18:05:00", expected: time.Date(2025, 12, 28, 18, 5, 0, 0, time.UTC)},
		{input: "", wantErr: true},
		{input: "28.12.2025 18:05", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := parseMeasuredTime(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.expected.Equal(got), "got %s", got)
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}
