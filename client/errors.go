package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"
)

// ErrCanceled is returned when the caller's context is canceled before a
// request completes. A canceled request is "no result", not a failure: it is
// never retried and never surfaced as an *APIError.
var ErrCanceled = errors.New("request canceled")

// IsCanceled reports whether err represents caller-driven cancellation.
func IsCanceled(err error) bool {
	return errors.Is(err, ErrCanceled)
}

// APIError is the single terminal-failure type surfaced by the client.
// Status is the HTTP status code when one is known, 0 for network-level
// failures, so callers can tell "not supported" (501) from "server fault"
// (500) from "hardware absent" (503).
type APIError struct {
	Status  int
	Message string
	Err     error // underlying transport error for status-less failures
}

func (e *APIError) Unwrap() error { return e.Err }

func (e *APIError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("api error (status %d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api error: %s", e.Message)
}

// classifyResponse turns a non-2xx response into an *APIError. It reads the
// body but leaves closing it to the caller.
func classifyResponse(resp *http.Response) *APIError {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Debug().Err(err).Int("status", resp.StatusCode).Msg("Failed to read error response body")
	}
	msg := parseErrorBody(body)
	if msg == "" {
		msg = fmt.Sprintf("request failed with status %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}
	return &APIError{Status: resp.StatusCode, Message: msg}
}

// parseErrorBody extracts a human-readable message from an error body.
// The appliance reports failures as {"error": ...} or {"message": ...}; a
// malformed body downgrades to an empty string instead of propagating a
// parse failure across the error boundary.
func parseErrorBody(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	var parsed struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		log.Debug().Err(err).Msg("Error response body is not valid JSON")
		return ""
	}
	if parsed.Error != "" {
		return parsed.Error
	}
	return parsed.Message
}

// wrapTransportErr folds a terminal transport failure into the client's
// single error type as a status-less *APIError. Cancellation and errors that
// are already classified pass through untouched.
func wrapTransportErr(err error) error {
	if err == nil || IsCanceled(err) {
		return err
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return err
	}
	return &APIError{Message: err.Error(), Err: err}
}

// retryableStatus reports whether a status code marks a transient failure.
// 503 is excluded: on this appliance it means optional hardware is absent,
// which no amount of retrying can resolve.
func retryableStatus(status int) bool {
	switch {
	case status == http.StatusRequestTimeout, status == http.StatusTooManyRequests:
		return true
	case status == http.StatusServiceUnavailable:
		return false
	case status >= 500:
		return true
	default:
		return false
	}
}
