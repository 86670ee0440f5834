package auth

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

	"github.com/xiuxian-wiki/encyclopedia/models"
)

func TestMiddleware(t *testing.T) {
	tokens := NewTokens("test-secret")
	adminToken, err := tokens.Issue("user-1", "admin")
	require.NoError(t, err)
	editorToken, err := tokens.Issue("user-2", "editor")
	require.NoError(t, err)

	repo := &MockUserRepo{Users: map[string]*models.User{
		"user-1": {ID: "user-1", Username: "admin", Role: models.RoleAdmin},
		"user-2": {ID: "user-2", Username: "editor", Role: "editor"},
	}}
	authn := NewAuthenticator(tokens, repo, zap.NewNop())

	var seen *models.User
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = UserFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	testCases := []struct {
		name               string
		wrap               func(http.Handler) http.Handler
		header             string
		expectedStatusCode int
		expectedError      string
		expectedUser       string
	}{
		{name: "Authenticated", wrap: authn.Middleware, header: "Bearer " + adminToken, expectedStatusCode: http.StatusNoContent, expectedUser: "admin"},
		{name: "Missing token", wrap: authn.Middleware, expectedStatusCode: http.StatusUnauthorized, expectedError: "Authentication required"},
		{name: "Admin allowed", wrap: authn.AdminMiddleware, header: "Bearer " + adminToken, expectedStatusCode: http.StatusNoContent, expectedUser: "admin"},
		{name: "Non-admin forbidden", wrap: authn.AdminMiddleware, header: "Bearer " + editorToken, expectedStatusCode: http.StatusForbidden, expectedError: "Admin access required"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			seen = nil
			req := httptest.NewRequest("GET", "/api/auth/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()

			tc.wrap(next).ServeHTTP(rec, req)

			assert.Equal(t, tc.expectedStatusCode, rec.Code)
			if tc.expectedError != "" {
				var errResp map[string]string
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&errResp))
				assert.Equal(t, tc.expectedError, errResp["error"])
				assert.Nil(t, seen, "next must not run")
				return
			}
			require.NotNil(t, seen)
			assert.Equal(t, tc.expectedUser, seen.Username)
		})
	}
}

func TestMiddlewareLogsStoreFailure(t *testing.T) {
	// Arrange
	tokens := NewTokens("test-secret")
	token, err := tokens.Issue("user-1", "admin")
	require.NoError(t, err)
	core, logs := observer.New(zap.ErrorLevel)
	authn := NewAuthenticator(tokens, &MockUserRepo{Err: errors.New("db down")}, zap.New(core))
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next must not run")
	})
	req := httptest.NewRequest("GET", "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	// Act
	authn.Middleware(next).ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "db down")
	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "authenticate request", entries[0].Message)
	assert.Equal(t, "db down", entries[0].ContextMap()["cause"])
}

func TestUserFromContextEmpty(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	_, ok := UserFromContext(req.Context())
	assert.False(t, ok)
}
