package slogx

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/yogeshkerkar48/Phonebook-Application/pkg/idx"
)

// Transport is an http.RoundTripper that logs every outgoing request with
// a correlation ID. It wraps Next (http.DefaultTransport when nil) so it
// can sit under any other transport layer.
type Transport struct {
	Next   http.RoundTripper
	Logger *slog.Logger
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	next := t.Next
	if next == nil {
		next = http.DefaultTransport
	}

	logger := t.Logger
	if logger == nil {
		logger = slog.Default()
	}

	reqID := idx.New().String()
	req.Header.Set("X-Request-ID", reqID)

	logger = logger.With(
		"req_id", reqID,
		"method", req.Method,
		"path", req.URL.Path,
	)

	start := time.Now()
	resp, err := next.RoundTrip(req)
	duration := time.Since(start).Milliseconds()

	if err != nil {
		logger.Warn("api_request_failed", "duration_ms", duration, "error", err)
		return nil, err
	}

	logger.Debug("api_request",
		"status", resp.StatusCode,
		"duration_ms", duration,
	)
	return resp, nil
}
