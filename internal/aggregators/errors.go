package aggregators

import (
	"fmt"

	"traffic-analytics/internal/shared/svcerrors"
)

// AggregationService errors
const (
	codeInvalidGranularity   = "AGG_1000"
	codeInvalidTimeRange     = "AGG_1001"
	codeInvalidSortKey       = "AGG_1002"
	codeInvalidSortDirection = "AGG_1003"
	codeInvalidLimit         = "AGG_1004"

	codeInternalMeasurementStoreFailed = "AGG_9000"
)

// errInvalidGranularity returns an error when the requested granularity is unknown.
func errInvalidGranularity(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeInvalidGranularity, "granularity must be one of 5min, 15min, hour, day, week, month, year", cause)
}

// errInvalidTimeRange returns an error when start or end cannot be parsed.
func errInvalidTimeRange(msg string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeInvalidTimeRange, msg, cause)
}

func errInvalidSortKey(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeInvalidSortKey, "sort must be one of name, in, out, all, time", cause)
}

func errInvalidSortDirection(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeInvalidSortDirection, "order must be asc or desc", cause)
}

func errInvalidLimit(msg string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeInvalidLimit, msg, cause)
}

// errInternalMeasurementStoreFailed returns an error when loading measurements fails.
func errInternalMeasurementStoreFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalMeasurementStoreFailed, fmt.Errorf("measurementStoreFailed: %w", cause))
}
