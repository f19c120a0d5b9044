package stores

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"
	"time"

	"traffic-analytics/internal/models"
	"traffic-analytics/internal/shared/filestorages"
)

const (
	driverFile = "file"

	// fileTimeLayout is filename safe and sorts lexically in time order.
	fileTimeLayout = "20060102T150405.000000000Z"
)

// fileMeasurementStore keeps one JSON object per reading under
// measurements/{deviceId}/{detectorId}/{measuredTime}.json. Uniqueness relies on
// the file storage's atomic create-if-not-exists publish.
type fileMeasurementStore struct {
	fileStorage filestorages.FileStorage
	dir         string
}

func NewFileMeasurementStore(fileStorage filestorages.FileStorage) MeasurementStore {
	return &fileMeasurementStore{fileStorage: fileStorage, dir: "measurements"}
}

func (s *fileMeasurementStore) Save(ctx context.Context, record *models.MeasurementRecord) error {
	jsonData, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal measurement: %w", err)
	}
	reader := bytes.NewReader(jsonData)

	key := s.getKey(record.DeviceID, record.DetectorID, record.MeasuredTime)

	_, err = s.fileStorage.Put(ctx, key, reader, filestorages.PutOptions{AllowOverwrite: false})
	if err != nil {
		if errors.Is(err, filestorages.ErrFileAlreadyExists) {
			metricMeasurementSavedTotal.WithLabelValues(driverFile, outcomeDuplicate).Inc()
			return ErrMeasurementAlreadyExist
		}
		metricMeasurementSavedTotal.WithLabelValues(driverFile, outcomeError).Inc()
		return fmt.Errorf("failed to put measurement: %w", err)
	}
	metricMeasurementSavedTotal.WithLabelValues(driverFile, outcomeSaved).Inc()
	return nil
}

func (s *fileMeasurementStore) List(ctx context.Context, filter models.MeasurementFilter) ([]*models.MeasurementRecord, error) {
	start := time.Now()
	defer func() {
		metricQueryDuration.WithLabelValues(driverFile).Observe(time.Since(start).Seconds())
	}()

	keys, err := s.fileStorage.List(ctx, s.listPrefix(filter))
	if err != nil {
		return nil, fmt.Errorf("failed to list measurements: %w", err)
	}

	records := make([]*models.MeasurementRecord, 0)
	for _, key := range keys {
		measuredTime, ok := s.timeFromKey(key)
		if !ok {
			continue
		}
		if filter.Start != nil && measuredTime.Before(*filter.Start) {
			continue
		}
		if filter.End != nil && measuredTime.After(*filter.End) {
			continue
		}

		record, err := s.get(ctx, key)
		if err != nil {
			return nil, err
		}
		if !filter.Matches(record) {
			continue
		}
		records = append(records, record)
	}

	sortNewestFirst(records)
	if filter.Limit > 0 && len(records) > filter.Limit {
		records = records[:filter.Limit]
	}
	return records, nil
}

func (s *fileMeasurementStore) Ping(ctx context.Context) error {
	return s.fileStorage.Ping(ctx)
}

func (s *fileMeasurementStore) get(ctx context.Context, key string) (*models.MeasurementRecord, error) {
	readCloser, err := s.fileStorage.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to get measurement %s: %w", key, err)
	}
	defer readCloser.Close()

	data, err := io.ReadAll(readCloser)
	if err != nil {
		return nil, fmt.Errorf("failed to read measurement %s: %w", key, err)
	}
	var record models.MeasurementRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal measurement %s: %w", key, err)
	}
	return &record, nil
}

func (s *fileMeasurementStore) getKey(deviceID, detectorID string, measuredTime time.Time) string {
	return fmt.Sprintf("%s/%s/%s/%s.json", s.dir, url.PathEscape(deviceID), url.PathEscape(detectorID), measuredTime.UTC().Format(fileTimeLayout))
}

// listPrefix narrows the directory walk when the filter pins a device or detector.
func (s *fileMeasurementStore) listPrefix(filter models.MeasurementFilter) string {
	if filter.DeviceID == "" {
		return s.dir
	}
	if filter.DetectorID == "" {
		return fmt.Sprintf("%s/%s", s.dir, url.PathEscape(filter.DeviceID))
	}
	return fmt.Sprintf("%s/%s/%s", s.dir, url.PathEscape(filter.DeviceID), url.PathEscape(filter.DetectorID))
}

func (s *fileMeasurementStore) timeFromKey(key string) (time.Time, bool) {
	name := strings.TrimSuffix(path.Base(key), ".json")
	t, err := time.Parse(fileTimeLayout, name)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
