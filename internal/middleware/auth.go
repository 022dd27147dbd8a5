// Package middleware provides the HTTP middleware chain: authentication,
// role gating, CORS, rate limiting, request logging and panic recovery.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"portfolio-api/internal/httpx"
)

// TokenVerifier resolves a bearer credential to a user ID. Implemented by
// the auth token service.
type TokenVerifier interface {
	Verify(token string) (int64, error)
}

type contextKey string

// contextKeyUserID carries the verified user ID through the request.
const contextKeyUserID contextKey = "user_id"

// UserID retrieves the authenticated user ID from the request context.
// The second return is false on unauthenticated requests.
func UserID(r *http.Request) (int64, bool) {
	id, ok := r.Context().Value(contextKeyUserID).(int64)
	return id, ok
}

// RequireAuth verifies the bearer credential and attaches the resolved
// identity to the request context. Every failure mode collapses into the
// same 401 envelope; the reason stays in server logs only.
func RequireAuth(tokens TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r)
			if !ok {
				httpx.Error(w, http.StatusUnauthorized, "Not authorized")
				return
			}
			id, err := tokens.Verify(raw)
			if err != nil {
				httpx.Error(w, http.StatusUnauthorized, "Not authorized")
				return
			}
			ctx := context.WithValue(r.Context(), contextKeyUserID, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RoleLookup resolves the stored role for a user ID.
type RoleLookup func(ctx context.Context, userID int64) (string, error)

// RequireRole gates a route on the stored role of the authenticated user.
// Must run after RequireAuth. A vanished identity gets 401; a role
// mismatch gets 403 without exposing which check passed.
func RequireRole(lookup RoleLookup, role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := UserID(r)
			if !ok {
				httpx.Error(w, http.StatusUnauthorized, "Not authorized")
				return
			}
			got, err := lookup(r.Context(), id)
			if err != nil {
				httpx.Error(w, http.StatusUnauthorized, "Not authorized")
				return
			}
			if got != role {
				httpx.Error(w, http.StatusForbidden, "Forbidden")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
