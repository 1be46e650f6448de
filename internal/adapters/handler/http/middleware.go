package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/tasklist/api/internal/core/ports"
)

type contextKey string

const identityKey contextKey = "identity"

// Authenticator verifies the bearer access token and stores the resulting
// identity in the request context.
func Authenticator(verifier ports.TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeJSON(w, http.StatusUnauthorized, "authorization header required", nil)
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				writeJSON(w, http.StatusUnauthorized, "invalid authorization header format", nil)
				return
			}

			userID, err := verifier.Verify(parts[1])
			if err != nil {
				writeJSON(w, http.StatusUnauthorized, "invalid token", nil)
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, ports.Identity{UserID: userID})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func identityFrom(ctx context.Context) (ports.Identity, bool) {
	ident, ok := ctx.Value(identityKey).(ports.Identity)
	return ident, ok
}
