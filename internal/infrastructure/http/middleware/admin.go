package middleware

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"

	"github.com/rezkam/weekly/internal/infrastructure/http/response"
)

const bearerPrefix = "Bearer "

// AdminAuth guards administrative routes with a static bearer token.
// An empty token disables the check.
func AdminAuth(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if token == "" {
			return next
		}
		expected := []byte(token)

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, bearerPrefix) {
				response.Unauthorized(w, "missing bearer token")
				return
			}

			got := []byte(strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix)))
			if subtle.ConstantTimeCompare(got, expected) != 1 {
				slog.WarnContext(r.Context(), "admin token rejected",
					"path", r.URL.Path,
					"remote_addr", r.RemoteAddr)
				response.Unauthorized(w, "invalid token")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
