package middleware_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-api/internal/auth"
	"portfolio-api/internal/middleware"
)

func okHandler(t *testing.T, wantID int64) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := middleware.UserID(r)
		require.True(t, ok)
		assert.Equal(t, wantID, id)
		w.WriteHeader(http.StatusOK)
	})
}

func failHandler(t *testing.T) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler must not be reached")
	})
}

func assertErrorEnvelope(t *testing.T, rec *httptest.ResponseRecorder, status int) {
	t.Helper()
	assert.Equal(t, status, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "error", body["status"])
	assert.NotEmpty(t, body["message"])
}

func TestRequireAuth(t *testing.T) {
	tokens := auth.NewTokenService("mw-secret", time.Hour)

	t.Run("valid token passes and attaches identity", func(t *testing.T) {
		tok, err := tokens.Issue(9)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		rec := httptest.NewRecorder()

		middleware.RequireAuth(tokens)(okHandler(t, 9)).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing header is 401", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()

		middleware.RequireAuth(tokens)(failHandler(t)).ServeHTTP(rec, req)
		assertErrorEnvelope(t, rec, http.StatusUnauthorized)
	})

	t.Run("malformed header is 401", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Token abc")
		rec := httptest.NewRecorder()

		middleware.RequireAuth(tokens)(failHandler(t)).ServeHTTP(rec, req)
		assertErrorEnvelope(t, rec, http.StatusUnauthorized)
	})

	t.Run("expired token is 401 with the same body as invalid", func(t *testing.T) {
		expired := auth.NewTokenService("mw-secret", -time.Minute)
		tok, err := expired.Issue(9)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		rec := httptest.NewRecorder()
		middleware.RequireAuth(tokens)(failHandler(t)).ServeHTTP(rec, req)
		assertErrorEnvelope(t, rec, http.StatusUnauthorized)

		req2 := httptest.NewRequest(http.MethodGet, "/", nil)
		req2.Header.Set("Authorization", "Bearer not-a-token")
		rec2 := httptest.NewRecorder()
		middleware.RequireAuth(tokens)(failHandler(t)).ServeHTTP(rec2, req2)

		// the payload must not distinguish expired from invalid
		assert.JSONEq(t, rec.Body.String(), rec2.Body.String())
	})
}

func TestRequireRole(t *testing.T) {
	tokens := auth.NewTokenService("mw-secret", time.Hour)

	roleOf := func(role string, err error) middleware.RoleLookup {
		return func(context.Context, int64) (string, error) { return role, err }
	}

	protect := func(lookup middleware.RoleLookup, next http.Handler) http.Handler {
		return middleware.RequireAuth(tokens)(middleware.RequireRole(lookup, "admin")(next))
	}

	authedReq := func(t *testing.T) *http.Request {
		tok, err := tokens.Issue(1)
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		return req
	}

	t.Run("admin passes", func(t *testing.T) {
		rec := httptest.NewRecorder()
		protect(roleOf("admin", nil), okHandler(t, 1)).ServeHTTP(rec, authedReq(t))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("non-admin is 403", func(t *testing.T) {
		rec := httptest.NewRecorder()
		protect(roleOf("user", nil), failHandler(t)).ServeHTTP(rec, authedReq(t))
		assertErrorEnvelope(t, rec, http.StatusForbidden)
	})

	t.Run("vanished identity is 401", func(t *testing.T) {
		rec := httptest.NewRecorder()
		protect(roleOf("", sql.ErrNoRows), failHandler(t)).ServeHTTP(rec, authedReq(t))
		assertErrorEnvelope(t, rec, http.StatusUnauthorized)
	})

	t.Run("unauthenticated request never reaches the role gate", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		rec := httptest.NewRecorder()
		lookup := func(context.Context, int64) (string, error) {
			t.Fatal("lookup must not run")
			return "", nil
		}
		protect(lookup, failHandler(t)).ServeHTTP(rec, req)
		assertErrorEnvelope(t, rec, http.StatusUnauthorized)
	})
}
