package collectors

import (
	"fmt"

	"traffic-analytics/internal/shared/svcerrors"
)

// CollectionService errors
const (
	codeUnauthenticated   = "COL_1000"
	codeCollectionRunning = "COL_1001"

	codeInternalCollectionCancelled = "COL_9001"
)

// errUnauthenticated returns an error when a manual run presents a wrong or missing secret.
func errUnauthenticated() *svcerrors.ServiceError {
	return svcerrors.NewUnauthenticatedError(codeUnauthenticated, "missing or invalid bearer token", nil)
}

// errCollectionRunning returns an error when a run is requested while another is in progress.
func errCollectionRunning() *svcerrors.ServiceError {
	return svcerrors.NewResourceConflictError(codeCollectionRunning, "a collection run is already in progress", nil)
}

// errInternalCollectionCancelled returns an error when the run context ends before every detector was polled.
func errInternalCollectionCancelled(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalCollectionCancelled, fmt.Errorf("collectionCancelled: %w", cause))
}
