package metrics

import (
	"context"
	"errors"
	"net"
	"net/http"
	"regexp"
	"strconv"
	"time"
)

// object keys end in a generated UUID; collapse them so labels stay bounded
var objectKeyPattern = regexp.MustCompile(`[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}`)

// RecordExternalAPICall records one call to object storage. statusCode is 0
// when no HTTP response was received.
func (m *Metrics) RecordExternalAPICall(endpoint, method string, statusCode int, duration time.Duration, err error) {
	m.safeExecute("RecordExternalAPICall", func() {
		endpoint = normalizeEndpoint(endpoint)
		status := strconv.Itoa(statusCode)

		m.ExternalAPIRequestsTotal.WithLabelValues(endpoint, method, status).Inc()
		m.ExternalAPIRequestDuration.WithLabelValues(endpoint, status).Observe(duration.Seconds())

		if err != nil || statusCode >= http.StatusBadRequest {
			m.ExternalAPIErrors.WithLabelValues(endpoint, classifyStorageError(statusCode, err)).Inc()
		}
	})
}

// normalizeEndpoint turns /bucket/issues/2024/05/<uuid>.jpg into
// /bucket/issues/2024/05/{id}.jpg
func normalizeEndpoint(endpoint string) string {
	return objectKeyPattern.ReplaceAllString(endpoint, "{id}")
}

// classifyStorageError maps a failed storage call to a low-cardinality label
func classifyStorageError(statusCode int, err error) string {
	switch {
	case statusCode == http.StatusNotFound:
		return "not_found"
	case statusCode == http.StatusUnauthorized, statusCode == http.StatusForbidden:
		return "access_denied"
	case statusCode == http.StatusTooManyRequests, statusCode == http.StatusServiceUnavailable:
		// S3 answers SlowDown with 503
		return "throttled"
	case statusCode >= 500:
		return "server_error"
	case statusCode >= 400:
		return "client_error"
	}

	var netErr net.Error
	switch {
	case err == nil:
		return "unknown"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.As(err, &netErr) && netErr.Timeout():
		return "timeout"
	case errors.As(err, &netErr):
		return "network_error"
	}
	return "error"
}
