package httpapi

import (
	"net/http"
	"strings"
)

// AuthMiddleware returns a middleware that validates the bearer token
// from the Authorization header.
// If the token is missing or invalid, it responds 401 Unauthorized.
// If valid, it calls the wrapped handler with the original request.
func AuthMiddleware(validToken string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "missing authorization header", http.StatusUnauthorized)
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token != validToken {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}
