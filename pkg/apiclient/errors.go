package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrNotFound reports that the requested resource does not exist.
// APIErrors for 404 responses match it via errors.Is.
var ErrNotFound = errors.New("apiclient: not found")

// APIError represents a rejection from the phonebook API. The Detail
// field carries the server's message verbatim so callers can render it.
type APIError struct {
	// StatusCode is the HTTP status of the response
	StatusCode int

	// Detail is the server-provided error message
	Detail string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Detail)
}

// Is lets 404 APIErrors satisfy errors.Is(err, ErrNotFound).
func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// parseErrorResponse converts a non-2xx response body into an *APIError.
// The API reports errors as {"detail": ...} where detail is either a
// plain string or, for validation errors, a list of objects with a "msg"
// field. Anything unrecognizable falls back to the status text so the
// error is never empty.
func parseErrorResponse(resp *http.Response, body []byte) error {
	var plain struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &plain); err == nil && plain.Detail != "" {
		return &APIError{StatusCode: resp.StatusCode, Detail: plain.Detail}
	}

	var validation struct {
		Detail []struct {
			Msg string `json:"msg"`
		} `json:"detail"`
	}
	if err := json.Unmarshal(body, &validation); err == nil && len(validation.Detail) > 0 {
		msgs := make([]string, 0, len(validation.Detail))
		for _, d := range validation.Detail {
			if d.Msg != "" {
				msgs = append(msgs, d.Msg)
			}
		}
		if len(msgs) > 0 {
			return &APIError{StatusCode: resp.StatusCode, Detail: strings.Join(msgs, "; ")}
		}
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Detail:     fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
