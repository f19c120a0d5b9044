package http

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	"traffic-analytics/internal/shared/loggers"
	"traffic-analytics/internal/shared/svcerrors"
	"traffic-analytics/internal/shared/ulid"

	"github.com/go-chi/chi/v5"
	"github.com/mileusna/useragent"
)

func setupMiddleware(router *chi.Mux, httpLogger loggers.Logger) {
	router.Use(mwRequestID(httpLogger))
	router.Use(mwAppResponseWriter)
	router.Use(mwPrometheus)
	router.Use(mwRequestCompletionLog)
	router.Use(mwRecoverer)
}

// mwAppResponseWriter initializes the appResponseWriter once and passes it through the middleware chain.
func mwAppResponseWriter(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(newAppResponseWriter(w, r), r)
	})
}

// mwPrometheus counts requests and observes their latency by route pattern,
// status, error code and client family.
func mwPrometheus(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)

		outcome := outcomeOf(w, r)
		route := routePattern(r)
		status := strconv.Itoa(outcome.status)

		metricHTTPRequestsTotal.WithLabelValues(r.Method, route, status, outcome.errorCode, outcome.client).Inc()
		metricHTTPRequestDuration.WithLabelValues(r.Method, route, status, outcome.errorCode).
			Observe(time.Since(start).Seconds())
	})
}

// mwRequestID extracts or generates a request ID, echoes it on the response
// and attaches a request-scoped logger to context.
func mwRequestID(httpLogger loggers.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := requestID(r)
			if requestID == "" {
				requestID = ulid.NewULID()
				setRequestID(r, requestID)
			}
			w.Header().Set(headerRequestID, requestID)

			ctxWithReqLogger := httpLogger.With().
				Str(loggers.FieldRequestID, requestID).
				Logger().WithContext(r.Context())

			next.ServeHTTP(w, r.WithContext(ctxWithReqLogger))
		})
	}
}

// mwRequestCompletionLog logs one line per request. Server errors log at
// error level, client errors at warn.
func mwRequestCompletionLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		defer func() {
			outcome := outcomeOf(w, r)

			logger := loggers.Ctx(r.Context())
			event := logger.Info()
			switch {
			case outcome.status >= http.StatusInternalServerError:
				event = logger.Error()
			case outcome.status >= http.StatusBadRequest:
				event = logger.Warn()
			}
			if outcome.errorCode != "" {
				event = event.Str(loggers.FieldErrorCode, outcome.errorCode)
			}
			event.
				Str(loggers.FieldHttpMethod, r.Method).
				Str(loggers.FieldHttpPath, r.URL.Path).
				Str(loggers.FieldHttpRoute, routePattern(r)).
				Int(loggers.FieldHttpStatus, outcome.status).
				Str(loggers.FieldClient, outcome.client).
				Int64(loggers.FieldDuration, time.Since(start).Milliseconds()).
				Msg("request completed")
		}()

		next.ServeHTTP(w, r)
	})
}

// mwRecoverer provides panic recovery middleware.
func mwRecoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if p := recover(); p != nil {
				loggers.Ctx(r.Context()).Error().
					Bytes(loggers.FieldErrorStack, debug.Stack()).
					Msgf("http panic recovered: %v", p)

				// Convert panic value to error
				var panicErr error
				if err, ok := p.(error); ok {
					panicErr = err
				} else {
					panicErr = fmt.Errorf("%v", p)
				}

				svcErr := svcerrors.NewInternalErrorPanic(panicErr)
				writeErrorResponse(w, r, svcErr)
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// clientFamily reduces a User-Agent header to a low-cardinality client name.
func clientFamily(ua string) string {
	if ua == "" {
		return "unknown"
	}
	parsed := useragent.Parse(ua)
	switch {
	case parsed.Bot:
		return "bot"
	case parsed.Name != "":
		return parsed.Name
	}
	return "other"
}
