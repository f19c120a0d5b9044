package stores

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"traffic-analytics/internal/models"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
)

const (
	driverPostgres = "postgres"

	measurementsTable = "traffic_measurements"

	defaultListCapacity = 256
	maxListCapacity     = 10000
)

// psq is the PostgreSQL statement builder with dollar placeholders.
var psq = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// measurementColumns lists the columns written by Save and read by List, in scan order.
var measurementColumns = []string{
	"device_id", "detector_id", "measured_time", "signal_group", "detector_name",
	"measurement_name", "value", "unit", "interval_seconds", "reliability",
}

// OpenPostgres opens a pooled connection to dsn and verifies it with a ping.
func OpenPostgres(ctx context.Context, dsn string, maxOpenConns int) (*sql.DB, error) {
	db, err := sql.Open(driverPostgres, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening postgres: %w", err)
	}
	if maxOpenConns > 0 {
		db.SetMaxOpenConns(maxOpenConns)
		db.SetMaxIdleConns(maxOpenConns)
	}
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}
	return db, nil
}

// postgresMeasurementStore relies on the unique (device_id, detector_id,
// measured_time) constraint: a conflicting insert affects no rows and is
// reported as ErrMeasurementAlreadyExist.
//
// measured_time is a timestamp without time zone holding UTC wall-clock time.
type postgresMeasurementStore struct {
	db *sql.DB
}

func NewPostgresMeasurementStore(db *sql.DB) MeasurementStore {
	return &postgresMeasurementStore{db: db}
}

func (s *postgresMeasurementStore) Save(ctx context.Context, record *models.MeasurementRecord) error {
	query, args, err := psq.Insert(measurementsTable).
		Columns(measurementColumns...).
		Values(
			record.DeviceID,
			record.DetectorID,
			record.MeasuredTime.UTC(),
			record.SignalGroup,
			record.DetectorName,
			record.MeasurementName,
			record.Value,
			record.Unit,
			record.Interval,
			record.Reliability,
		).
		Suffix("ON CONFLICT (device_id, detector_id, measured_time) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("building measurement insert: %w", err)
	}

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		metricMeasurementSavedTotal.WithLabelValues(driverPostgres, outcomeError).Inc()
		return fmt.Errorf("inserting measurement: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		metricMeasurementSavedTotal.WithLabelValues(driverPostgres, outcomeError).Inc()
		return fmt.Errorf("reading affected rows: %w", err)
	}
	if affected == 0 {
		metricMeasurementSavedTotal.WithLabelValues(driverPostgres, outcomeDuplicate).Inc()
		return ErrMeasurementAlreadyExist
	}

	metricMeasurementSavedTotal.WithLabelValues(driverPostgres, outcomeSaved).Inc()
	return nil
}

// applyMeasurementFilter adds filter conditions to a SELECT builder.
func applyMeasurementFilter(qb sq.SelectBuilder, filter models.MeasurementFilter) sq.SelectBuilder {
	if filter.DeviceID != "" {
		qb = qb.Where(sq.Eq{"device_id": filter.DeviceID})
	}
	if filter.DetectorID != "" {
		qb = qb.Where(sq.Eq{"detector_id": filter.DetectorID})
	}
	if filter.Start != nil {
		qb = qb.Where(sq.GtOrEq{"measured_time": filter.Start.UTC()})
	}
	if filter.End != nil {
		qb = qb.Where(sq.LtOrEq{"measured_time": filter.End.UTC()})
	}
	return qb
}

func (s *postgresMeasurementStore) List(ctx context.Context, filter models.MeasurementFilter) ([]*models.MeasurementRecord, error) {
	start := time.Now()
	defer func() {
		metricQueryDuration.WithLabelValues(driverPostgres).Observe(time.Since(start).Seconds())
	}()

	qb := applyMeasurementFilter(psq.Select(measurementColumns...).From(measurementsTable), filter)
	qb = qb.OrderBy("measured_time DESC", "device_id ASC", "detector_id ASC")
	if filter.Limit > 0 {
		qb = qb.Limit(uint64(filter.Limit))
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("building measurement query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying measurements: %w", err)
	}
	defer func() { _ = rows.Close() }()

	allocCap := defaultListCapacity
	if filter.Limit > 0 && filter.Limit <= maxListCapacity {
		allocCap = filter.Limit
	}
	records := make([]*models.MeasurementRecord, 0, allocCap)

	for rows.Next() {
		record, err := scanMeasurement(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating measurement rows: %w", err)
	}

	return records, nil
}

func (s *postgresMeasurementStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func scanMeasurement(rows *sql.Rows) (*models.MeasurementRecord, error) {
	var (
		record      models.MeasurementRecord
		value       sql.NullFloat64
		interval    sql.NullInt64
		reliability sql.NullInt64
	)

	err := rows.Scan(
		&record.DeviceID,
		&record.DetectorID,
		&record.MeasuredTime,
		&record.SignalGroup,
		&record.DetectorName,
		&record.MeasurementName,
		&value,
		&record.Unit,
		&interval,
		&reliability,
	)
	if err != nil {
		return nil, fmt.Errorf("scanning measurement row: %w", err)
	}

	// timestamp without time zone comes back without a location; it is UTC.
	mt := record.MeasuredTime
	record.MeasuredTime = time.Date(mt.Year(), mt.Month(), mt.Day(), mt.Hour(), mt.Minute(), mt.Second(), mt.Nanosecond(), time.UTC)
	record.Value = value.Float64
	record.Interval = int(interval.Int64)
	record.Reliability = int(reliability.Int64)

	return &record, nil
}
