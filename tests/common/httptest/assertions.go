//go:build unit || e2e

package httptest

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ErrorEnvelope mirrors the failure body written by httperr.
type ErrorEnvelope struct {
	Success bool `json:"success"`
	Error   struct {
		Kind                 string   `json:"kind"`
		Message              string   `json:"message"`
		MissingPrerequisites []string `json:"missingPrerequisites"`
	} `json:"error"`
}

func AssertSuccessResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, targetStruct any) {
	t.Helper()

	if !assert.Equal(t, expectedStatus, w.Code, "unexpected status, body: %s", w.Body.String()) {
		return
	}
	if targetStruct != nil && expectedStatus >= 200 && expectedStatus < 300 {
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), targetStruct), "decode body: %s", w.Body.String())
	}
}

// AssertErrorResponse checks status and envelope shape. An empty
// expectedErrorMsg skips the message check.
func AssertErrorResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, expectedErrorMsg string) ErrorEnvelope {
	t.Helper()

	assert.Equal(t, expectedStatus, w.Code, "unexpected status, body: %s", w.Body.String())

	var env ErrorEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), "decode error body: %s", w.Body.String())
	assert.False(t, env.Success)
	assert.NotEmpty(t, env.Error.Kind, "error kind missing")

	if expectedErrorMsg != "" {
		assert.Contains(t, env.Error.Message, expectedErrorMsg)
	}
	return env
}

func AssertErrorKind(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, kind string) ErrorEnvelope {
	t.Helper()
	env := AssertErrorResponse(t, w, expectedStatus, "")
	assert.Equal(t, kind, env.Error.Kind)
	return env
}

func AssertHeaders(t *testing.T, w *httptest.ResponseRecorder, expected map[string]string) {
	t.Helper()
	for k, v := range expected {
		assert.Equal(t, v, w.Header().Get(k), "header %s", k)
	}
}

func AssertReplayed(t *testing.T, w *httptest.ResponseRecorder, replayed bool) {
	t.Helper()
	if replayed {
		assert.Equal(t, "true", w.Header().Get("Idempotent-Replayed"))
		return
	}
	assert.Empty(t, w.Header().Get("Idempotent-Replayed"))
}
