// Package middleware provides bearer-token authentication for the API.
package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// TokenValidator checks a bearer token and returns its subject. The
// server's JWT service satisfies this through an adapter, which keeps
// this package free of a dependency on the server package.
type TokenValidator interface {
	ValidateToken(tokenString string) (string, error)
}

// ContextKey is a typed context key so values set here cannot collide
// with other packages' keys.
type ContextKey string

const subjectKey ContextKey = "subject"

// AuthMiddleware rejects requests without a valid bearer token and
// stores the token subject in the request context for handlers.
func AuthMiddleware(validator TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				unauthorized(w)
				return
			}

			subject, err := validator.ValidateToken(token)
			if err != nil {
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), subjectKey, subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken pulls the token out of the Authorization header. The
// scheme is matched case-insensitively.
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}

	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

func unauthorized(w http.ResponseWriter) {
	http.Error(w, "Unauthorized", http.StatusUnauthorized)
}

// GetSubject returns the authenticated subject stored by AuthMiddleware.
func GetSubject(r *http.Request) (string, error) {
	subject, ok := r.Context().Value(subjectKey).(string)
	if !ok {
		return "", fmt.Errorf("subject not found in request context")
	}
	return subject, nil
}
