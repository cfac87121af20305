package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	domain "github.com/aurainsight/aura-backend/internal/domain/auth"
)

type contextKey string

const principalKey contextKey = "principal"

// BearerAuth validates the Authorization header against the credential
// verifier and injects the resolved Principal into the request context.
// The wrapped handler is never invoked on a failed verification, and the
// principal is never taken from anything the caller controls directly.
func BearerAuth(verifier domain.Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				http.Error(w, "authentication token is missing", http.StatusUnauthorized)
				return
			}

			principal, err := verifier.Verify(r.Context(), token)
			if err != nil {
				status, msg := classifyAuthError(err)
				http.Error(w, msg, status)
				return
			}

			ctx := context.WithValue(r.Context(), principalKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken extracts the token from "Authorization: Bearer <token>".
// A missing or malformed header is treated the same as a missing credential.
func bearerToken(r *http.Request) (string, bool) {
	auth := r.Header.Get("Authorization")
	if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	if token == "" {
		return "", false
	}
	return token, true
}

func classifyAuthError(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrMissingCredential):
		return http.StatusUnauthorized, "authentication token is missing"
	case errors.Is(err, domain.ErrExpiredCredential):
		return http.StatusUnauthorized, "authentication token expired"
	case errors.Is(err, domain.ErrInvalidCredential):
		// the verifier affirmatively rejected the token
		return http.StatusForbidden, "invalid authentication token"
	default:
		return http.StatusInternalServerError, "authentication error"
	}
}

// PrincipalFromContext extracts the authenticated principal set by BearerAuth.
func PrincipalFromContext(ctx context.Context) (domain.Principal, bool) {
	p, ok := ctx.Value(principalKey).(domain.Principal)
	return p, ok
}
