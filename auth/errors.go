package auth

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// APIError is returned when the myTarget API rejects a request with a
// status code that has no more specific error type.
type APIError struct {
	Message    string
	HTTPStatus int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (http status %d)", e.Message, e.HTTPStatus)
}

// AuthError is returned when the server rejects the client's
// credentials or the presented access token (401 or 403). It is not
// retryable without fixing the credentials.
type AuthError struct {
	Message      string
	HTTPStatus   int
	OAuthMessage string // contents of the WWW-Authenticate header, if any
}

func (e *AuthError) Error() string {
	if e.OAuthMessage == "" {
		return fmt.Sprintf("%s (http status %d)", e.Message, e.HTTPStatus)
	}
	return fmt.Sprintf("%s (http status %d) %s", e.Message, e.HTTPStatus, e.OAuthMessage)
}

// ValidationError is returned for 400 responses, which the API uses to
// report per-field validation failures.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("#%s: %s", k, e.Fields[k]))
	}
	return "validation failed on:\n  " + strings.Join(lines, "\n  ")
}

// NetworkError is returned when the transport cannot complete the HTTP
// exchange (timeout, DNS failure, connection refused). It is
// potentially transient; the caller may retry.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("request to %s failed: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// MalformedResponseError is returned when a success response body
// cannot be parsed as the expected shape. It usually indicates drift in
// the remote API contract.
type MalformedResponseError struct {
	Reason string
	Err    error
}

func (e *MalformedResponseError) Error() string {
	if e.Err == nil {
		return "malformed response: " + e.Reason
	}
	return fmt.Sprintf("malformed response: %s: %v", e.Reason, e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// ResponseError maps a non-success API response to the matching error
// type: 400 becomes a ValidationError with the per-field messages from
// the body, 401 and 403 become an AuthError carrying the
// WWW-Authenticate header, everything else becomes an APIError.
func ResponseError(resp *http.Response, body []byte) error {
	message := strings.TrimSpace(string(body))

	switch resp.StatusCode {
	case http.StatusBadRequest:
		var fields map[string]string
		if err := json.Unmarshal(body, &fields); err == nil && len(fields) > 0 {
			return &ValidationError{Fields: fields}
		}
		return &APIError{Message: message, HTTPStatus: resp.StatusCode}
	case http.StatusUnauthorized, http.StatusForbidden:
		return &AuthError{
			Message:      message,
			HTTPStatus:   resp.StatusCode,
			OAuthMessage: resp.Header.Get("WWW-Authenticate"),
		}
	default:
		return &APIError{Message: message, HTTPStatus: resp.StatusCode}
	}
}
