package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/forgo/delve/internal/model"
)

// AdminToken guards admin routes with a static bearer token.
// An empty token disables the admin routes entirely.
func AdminToken(token string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token == "" {
				model.NewUnauthorizedError("admin access is disabled").WriteJSON(w)
				return
			}

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				model.NewUnauthorizedError("missing authorization header").WriteJSON(w)
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				model.NewUnauthorizedError("invalid authorization header format").WriteJSON(w)
				return
			}

			if subtle.ConstantTimeCompare([]byte(parts[1]), []byte(token)) != 1 {
				model.NewUnauthorizedError("invalid admin token").WriteJSON(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
