package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrMalformedResponse indicates a success status whose body could not be
// decoded as the expected JSON shape.
var ErrMalformedResponse = errors.New("malformed response")

// NetworkError indicates the request never produced a response: DNS
// failure, refused connection, timeout. The transport error is wrapped.
type NetworkError struct {
	Method string
	Path   string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error on %s %s: %v", e.Method, e.Path, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// APIError is a server-reported failure (status >= 400). Detail carries
// the server's error message when one was provided.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Detail)
}

// IsUnauthorized reports whether err is an APIError with status 401.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// apiErrorFromResponse builds an APIError from an error response body.
// The backend reports failures as {"detail": "..."}; anything else falls
// back to the raw body, then to the standard status text.
func apiErrorFromResponse(status int, body []byte) *APIError {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Detail != "" {
		return &APIError{Status: status, Detail: payload.Detail}
	}
	if detail := strings.TrimSpace(string(body)); detail != "" {
		return &APIError{Status: status, Detail: detail}
	}
	return &APIError{Status: status, Detail: http.StatusText(status)}
}
