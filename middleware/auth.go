// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/exam-archive/auth"
	"github.com/danielhkuo/exam-archive/models"
)

// Verifier resolves an access token to the admin it belongs to
type Verifier interface {
	Verify(ctx context.Context, token string) (models.User, *auth.Claims, error)
}

type userKey struct{}

// BearerToken returns the token from "Authorization: Bearer <token>"
func BearerToken(r *http.Request) (string, bool) {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// RequireAdmin rejects requests without a valid admin token and puts the
// admin into the request context for next
func RequireAdmin(v Verifier, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := BearerToken(r)
		if !ok {
			ErrorResponse(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		user, _, err := v.Verify(r.Context(), token)
		if errors.Is(err, auth.ErrInvalidToken) {
			ErrorResponse(w, http.StatusUnauthorized, auth.ErrInvalidToken.Error())
			return
		}
		if err != nil {
			slog.Error("failed to verify token", "error", err)
			ErrorResponse(w, http.StatusInternalServerError, "Failed to verify session")
			return
		}

		next(w, r.WithContext(context.WithValue(r.Context(), userKey{}, user)))
	}
}

// UserFromContext returns the admin RequireAdmin stored for this request
func UserFromContext(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(userKey{}).(models.User)
	return user, ok
}
