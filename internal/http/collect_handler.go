package http

import (
	"net/http"
	"time"

	"traffic-analytics/internal/collectors"
)

type collectHandler struct {
	collectionService collectors.CollectionService
}

func NewCollectHandler(collectionService collectors.CollectionService) AppHttpHandler {
	return &collectHandler{collectionService: collectionService}
}

// Handle processes GET and POST /api/v1/collect requests. The run is bound to
// the request context, so a disconnecting client cancels it.
func (h *collectHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	if err := h.collectionService.Authorize(authorization(r)); err != nil {
		return err
	}

	// A full run can outlast server.write_timeout; the run stays bound to the
	// request context instead. Writers without deadline support keep theirs.
	_ = http.NewResponseController(w).SetWriteDeadline(time.Time{})

	report, err := h.collectionService.Collect(r.Context(), collectors.TriggerManual)
	if err != nil {
		return err
	}

	writeJSON(w, r, http.StatusOK, report)
	return nil
}
