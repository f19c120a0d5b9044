package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"traffic-analytics/internal/aggregators"
	"traffic-analytics/internal/shared/loggers"
)

const (
	queryGranularity = "granularity"
	queryStart       = "start"
	queryEnd         = "end"
	queryKeywords    = "keywords"
	querySort        = "sort"
	queryOrder       = "order"
	queryDevice      = "device"
	queryDetector    = "detector"
	queryLimit       = "limit"
)

type AppHttpHandler interface {
	Handle(w http.ResponseWriter, r *http.Request) error
}

// writeJSON writes body with the given status. Encoding failures are only
// logged since the status line is already sent.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set(headerContentType, "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		loggers.Ctx(r.Context()).Warn().Err(err).Msg("failed to encode response")
	}
}

// queryParams reads the shared view parameters. keywords may be repeated
// and each value may hold a comma separated list.
func queryParams(r *http.Request) aggregators.QueryParams {
	q := r.URL.Query()
	return aggregators.QueryParams{
		Granularity: q.Get(queryGranularity),
		Start:       q.Get(queryStart),
		End:         q.Get(queryEnd),
		Keywords:    splitList(q[queryKeywords]),
		Sort:        q.Get(querySort),
		Order:       q.Get(queryOrder),
	}
}

func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
