package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewResponseError(t *testing.T) {
	err := newResponseError(http.StatusNotFound, []byte(`{"error": "Routine not found"}`))
	var nfErr *NotFoundError
	require.ErrorAs(t, err, &nfErr)
	assert.Equal(t, "Routine not found", nfErr.Message)
	assert.Equal(t, "http 404: Routine not found", err.Error())

	err = newResponseError(http.StatusUnauthorized, nil)
	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "Unauthorized", authErr.Message)

	err = newResponseError(http.StatusForbidden, []byte(`{"message": "nope"}`))
	assert.True(t, IsAuthError(err))
	assert.Equal(t, "nope", Message(err))

	err = newResponseError(http.StatusBadRequest, []byte(`{"error": "Username and password are required"}`))
	var validationErr *ValidationError
	assert.False(t, errors.As(err, &validationErr))
	var httpErr *HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.StatusCode)

	err = newResponseError(http.StatusBadRequest, []byte(`{"errors": {"sets": ["must be at least 1"], "name": "too long"}}`))
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, map[string]string{"sets": "must be at least 1", "name": "too long"}, validationErr.Fields)
	assert.Equal(t, "name: too long, sets: must be at least 1", validationErr.Message)

	err = newResponseError(http.StatusUnprocessableEntity, []byte(`{"error": "name required", "errors": {"name": "required"}}`))
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "name required", validationErr.Message)

	err = newResponseError(http.StatusBadGateway, []byte("upstream timed out"))
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, "upstream timed out", httpErr.Message)
	assert.Equal(t, []byte("upstream timed out"), httpErr.Body)

	err = newResponseError(http.StatusInternalServerError, []byte("<html><body>oops</body></html>"))
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, "Internal Server Error", httpErr.Message)

	err = newResponseError(599, nil)
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, "unexpected status code 599", httpErr.Message)
}

func TestErrorHelpers(t *testing.T) {
	netErr := fmt.Errorf("wrapped: %w", &NetworkError{Op: "list_routines", Err: errors.New("connection refused")})
	assert.True(t, IsNetworkError(netErr))
	assert.False(t, IsNotFound(netErr))
	assert.Equal(t, "", Message(netErr))
	assert.Equal(t, "wrapped: list_routines: network error: connection refused", netErr.Error())

	assert.Equal(t, "ok", outcomeOf(nil))
	assert.Equal(t, "network_error", outcomeOf(netErr))
	assert.Equal(t, "not_found", outcomeOf(newResponseError(http.StatusNotFound, nil)))
	assert.Equal(t, "auth_error", outcomeOf(newResponseError(http.StatusUnauthorized, nil)))
	assert.Equal(t, "http_error", outcomeOf(newResponseError(http.StatusConflict, nil)))
	assert.Equal(t, "error", outcomeOf(errors.New("unmarshal")))
}

func TestTimestamp_UnmarshalJSON(t *testing.T) {
	var ts timestamp
	require.NoError(t, ts.UnmarshalJSON([]byte(`"2024-03-01 10:20:30"`)))
	assert.Equal(t, 20, ts.Minute())

	ts = timestamp{}
	require.NoError(t, ts.UnmarshalJSON([]byte(`null`)))
	assert.Nil(t, ts.ptr())

	assert.Error(t, ts.UnmarshalJSON([]byte(`"yesterday"`)))
	assert.Error(t, ts.UnmarshalJSON([]byte(`12`)))
}
