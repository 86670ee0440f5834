package respond

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/xiuxian-wiki/encyclopedia/apperr"
)

func TestError(t *testing.T) {
	testCases := []struct {
		name           string
		err            error
		expectedStatus int
		expectedError  string
		expectedLogged bool
	}{
		{name: "Validation", err: apperr.MissingField("name"), expectedStatus: http.StatusBadRequest, expectedError: "Missing required field: name"},
		{name: "Not found", err: apperr.New(apperr.CodeNotFound, "pills not found"), expectedStatus: http.StatusNotFound, expectedError: "pills not found"},
		{name: "Wrapped internal", err: apperr.Wrap(apperr.CodeInternal, "load user", errors.New("db down")), expectedStatus: http.StatusInternalServerError, expectedError: "Internal server error", expectedLogged: true},
		{name: "Plain error", err: errors.New("boom"), expectedStatus: http.StatusInternalServerError, expectedError: "Internal server error", expectedLogged: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			core, logs := observer.New(zap.ErrorLevel)
			rec := httptest.NewRecorder()

			// Act
			Error(rec, zap.New(core), tc.err, "handle request")

			// Assert
			assert.Equal(t, tc.expectedStatus, rec.Code)
			var body map[string]string
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, tc.expectedError, body["error"])
			if !tc.expectedLogged {
				assert.Zero(t, logs.Len())
				return
			}
			require.Equal(t, 1, logs.Len())
			assert.Equal(t, "handle request", logs.All()[0].Message)
		})
	}
}

func TestErrorLogsCause(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)

	Error(httptest.NewRecorder(), zap.New(core), apperr.Wrap(apperr.CodeInternal, "load user", errors.New("db down")), "authenticate")

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "load user", fields["error"])
	assert.Equal(t, "db down", fields["cause"])
}
