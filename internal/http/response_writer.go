package http

import (
	"net/http"

	"traffic-analytics/internal/shared/svcerrors"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// appResponseWriter carries the outcome of a request from the handlers back
// out to the logging and metrics middlewares.
type appResponseWriter struct {
	middleware.WrapResponseWriter
	svcError *svcerrors.ServiceError
	client   string
}

func newAppResponseWriter(w http.ResponseWriter, r *http.Request) *appResponseWriter {
	return &appResponseWriter{
		WrapResponseWriter: middleware.NewWrapResponseWriter(w, r.ProtoMajor),
		client:             clientFamily(userAgent(r)),
	}
}

func (w *appResponseWriter) SetServiceError(svcError *svcerrors.ServiceError) {
	w.svcError = svcError
}

func (w *appResponseWriter) ErrorCode() string {
	if w.svcError != nil {
		return w.svcError.Code
	}
	return ""
}

// StatusOrOK is the written status, or 200 when the handler never wrote a header.
func (w *appResponseWriter) StatusOrOK() int {
	if status := w.Status(); status != 0 {
		return status
	}
	return http.StatusOK
}

// requestOutcome is what the middlewares report about a finished request.
type requestOutcome struct {
	status    int
	errorCode string
	client    string
}

func outcomeOf(w http.ResponseWriter, r *http.Request) requestOutcome {
	if appWriter, ok := w.(*appResponseWriter); ok {
		return requestOutcome{
			status:    appWriter.StatusOrOK(),
			errorCode: appWriter.ErrorCode(),
			client:    appWriter.client,
		}
	}
	return requestOutcome{status: http.StatusOK, client: clientFamily(userAgent(r))}
}

// routePattern is the matched chi pattern, e.g. "/api/v1/aggregates", so
// metrics stay low-cardinality. Unrouted requests fall back to the raw path.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return r.URL.Path
}
