package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// NetworkError means no response was received from the backend.
// It is the only error kind the client retries.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: network error: %s", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// HttpError is a 4xx/5xx response. Message prefers the server provided error text.
type HttpError struct {
	StatusCode int
	Message    string
	Body       []byte
}

func (e *HttpError) Error() string {
	return fmt.Sprintf("http %d: %s", e.StatusCode, e.Message)
}

// ValidationError is a 422 response, or a 400 one carrying field errors.
type ValidationError struct {
	*HttpError
	Fields map[string]string
}

func (e *ValidationError) Unwrap() error {
	return e.HttpError
}

type NotFoundError struct {
	*HttpError
}

func (e *NotFoundError) Unwrap() error {
	return e.HttpError
}

// AuthError is a 401/403 response; the session is missing, expired or not allowed.
type AuthError struct {
	*HttpError
}

func (e *AuthError) Unwrap() error {
	return e.HttpError
}

func IsNetworkError(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr)
}

func IsNotFound(err error) bool {
	var nfErr *NotFoundError
	return errors.As(err, &nfErr)
}

func IsAuthError(err error) bool {
	var authErr *AuthError
	return errors.As(err, &authErr)
}

// Message extracts the user facing message of err: the server's message for
// HTTP errors, an empty string for anything else.
func Message(err error) string {
	var httpErr *HttpError
	if errors.As(err, &httpErr) {
		return httpErr.Message
	}
	return ""
}

type errorBody struct {
	Error   string                     `json:"error"`
	Message string                     `json:"message"`
	Errors  map[string]json.RawMessage `json:"errors"`
}

func newResponseError(statusCode int, body []byte) error {
	parsed := parseErrorBody(body)
	message := parsed.Error
	if message == "" {
		message = parsed.Message
	}
	fields := parseFieldErrors(parsed.Errors)
	if message == "" && len(fields) > 0 {
		message = joinFieldErrors(fields)
	}
	if message == "" {
		message = http.StatusText(statusCode)
	}
	if message == "" {
		message = fmt.Sprintf("unexpected status code %d", statusCode)
	}

	httpErr := &HttpError{
		StatusCode: statusCode,
		Message:    message,
		Body:       body,
	}

	switch {
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		return &AuthError{HttpError: httpErr}
	case statusCode == http.StatusNotFound:
		return &NotFoundError{HttpError: httpErr}
	case statusCode == http.StatusUnprocessableEntity,
		statusCode == http.StatusBadRequest && len(fields) > 0:
		return &ValidationError{HttpError: httpErr, Fields: fields}
	default:
		return httpErr
	}
}

func parseErrorBody(body []byte) errorBody {
	var parsed errorBody
	if len(body) == 0 {
		return parsed
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		// plain text error pages are used as they are, if short enough
		text := strings.TrimSpace(string(body))
		if len(text) > 0 && len(text) <= 200 && !strings.HasPrefix(text, "<") {
			parsed.Error = text
		}
	}
	return parsed
}

// parseFieldErrors accepts both {"field": "msg"} and {"field": ["msg", ...]}.
func parseFieldErrors(raw map[string]json.RawMessage) map[string]string {
	if len(raw) == 0 {
		return nil
	}
	fields := make(map[string]string, len(raw))
	for field, value := range raw {
		var single string
		if err := json.Unmarshal(value, &single); err == nil {
			fields[field] = single
			continue
		}
		var many []string
		if err := json.Unmarshal(value, &many); err == nil && len(many) > 0 {
			fields[field] = strings.Join(many, "; ")
		}
	}
	return fields
}

func joinFieldErrors(fields map[string]string) string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, fields[name]))
	}
	return strings.Join(parts, ", ")
}
