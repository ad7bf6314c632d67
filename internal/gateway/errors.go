// ABOUTME: Discriminated error variants produced at the gateway boundary
// ABOUTME: Unauthorized, validation, server and network failures plus message extraction

package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"strings"
)

// ErrUnauthorized matches any 401 response via errors.Is
var ErrUnauthorized = errors.New("unauthorized")

// UnauthorizedError is returned for a 401 response.
// By the time a caller sees it the stored credential has been purged.
type UnauthorizedError struct {
	Detail string
}

func (e *UnauthorizedError) Error() string {
	if e.Detail == "" {
		return "unauthorized"
	}
	return "unauthorized: " + e.Detail
}

// Is reports ErrUnauthorized as a match
func (e *UnauthorizedError) Is(target error) bool {
	return target == ErrUnauthorized
}

// ValidationError is returned for 4xx responses other than 401
type ValidationError struct {
	Status int
	Detail string
}

func (e *ValidationError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("backend returned status %d", e.Status)
	}
	return "backend error: " + e.Detail
}

// ServerError is returned for 5xx responses
type ServerError struct {
	Status int
	Detail string
}

func (e *ServerError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("backend returned status %d", e.Status)
	}
	return fmt.Sprintf("backend error (%d): %s", e.Status, e.Detail)
}

// NetworkError wraps transport failures, cancellation and timeouts
type NetworkError struct {
	BaseURL string
	Err     error
}

func (e *NetworkError) Error() string {
	if errors.Is(e.Err, context.Canceled) {
		return "request canceled"
	}
	if e.Timeout() {
		return "request timed out"
	}
	return fmt.Sprintf("cannot connect to backend at %s: %v", e.BaseURL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Timeout reports whether the failure was a deadline or client timeout
func (e *NetworkError) Timeout() bool {
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(e.Err, &netErr) && netErr.Timeout()
}

// Message returns the server-provided detail carried by err, or fallback
// when err carries none (network failures, decode failures).
func Message(err error, fallback string) string {
	var (
		unauthorized *UnauthorizedError
		validation   *ValidationError
		server       *ServerError
	)
	switch {
	case errors.As(err, &unauthorized) && unauthorized.Detail != "":
		return unauthorized.Detail
	case errors.As(err, &validation) && validation.Detail != "":
		return validation.Detail
	case errors.As(err, &server) && server.Detail != "":
		return server.Detail
	}
	return fallback
}

// errorBody covers the FastAPI `detail` shape and the generic `error` shape
type errorBody struct {
	Detail json.RawMessage `json:"detail"`
	Error  string          `json:"error"`
}

type fieldError struct {
	Msg string `json:"msg"`
}

// parseDetail extracts a human-readable message from an error response body
func parseDetail(data []byte) string {
	var body errorBody
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}

	if len(body.Detail) > 0 {
		var text string
		if err := json.Unmarshal(body.Detail, &text); err == nil {
			return text
		}

		var fields []fieldError
		if err := json.Unmarshal(body.Detail, &fields); err == nil {
			msgs := make([]string, 0, len(fields))
			for _, f := range fields {
				if f.Msg != "" {
					msgs = append(msgs, f.Msg)
				}
			}
			return strings.Join(msgs, "; ")
		}
	}

	return body.Error
}

// classify maps a non-2xx status and body to an error variant
func classify(status int, body []byte) error {
	detail := parseDetail(body)
	switch {
	case status == 401:
		return &UnauthorizedError{Detail: detail}
	case status >= 500:
		return &ServerError{Status: status, Detail: detail}
	default:
		return &ValidationError{Status: status, Detail: detail}
	}
}
