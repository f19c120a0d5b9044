package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"traffic-analytics/internal/shared/svcerrors"
	"traffic-analytics/internal/stores"
)

const (
	healthCheckTimeout = 3 * time.Second

	codeStoreUnavailable = "HLT_9000"
)

// HealthResponse is the body of a successful GET /healthz.
type HealthResponse struct {
	Status string `json:"status"`
}

type healthHandler struct {
	measurementStore stores.MeasurementStore
}

func NewHealthHandler(measurementStore stores.MeasurementStore) AppHttpHandler {
	return &healthHandler{measurementStore: measurementStore}
}

func (h *healthHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	if err := h.measurementStore.Ping(ctx); err != nil {
		return svcerrors.NewUnavailableError(codeStoreUnavailable, "measurement store is unavailable", fmt.Errorf("storePingFailed: %w", err))
	}

	writeJSON(w, r, http.StatusOK, HealthResponse{Status: "ok"})
	return nil
}
