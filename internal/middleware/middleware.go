// Package middleware wraps the HTTP boundary with access logging,
// response-time metrics and request tracing.
package middleware

import "net/http"

// statusRecorder captures the status code written by the wrapped
// handler. A handler that never calls WriteHeader implies 200.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func newStatusRecorder(w http.ResponseWriter) *statusRecorder {
	return &statusRecorder{ResponseWriter: w, status: http.StatusOK}
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
