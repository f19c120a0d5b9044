package http

import (
	"net/http"
	"strings"
)

const (
	headerRequestID     = "x-request-id"
	headerContentType   = "content-type"
	headerAuthorization = "authorization"
	headerUserAgent     = "user-agent"
)

func requestID(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(headerRequestID))
}

func setRequestID(r *http.Request, requestID string) {
	r.Header.Set(headerRequestID, requestID)
}

func authorization(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(headerAuthorization))
}

func userAgent(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(headerUserAgent))
}
