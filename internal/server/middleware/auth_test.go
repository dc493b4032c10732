package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validatorFunc adapts a plain function to TokenValidator.
type validatorFunc func(string) (string, error)

func (f validatorFunc) ValidateToken(tokenString string) (string, error) {
	return f(tokenString)
}

// acceptOnly returns a validator that accepts exactly one token.
func acceptOnly(token, subject string) validatorFunc {
	return func(got string) (string, error) {
		if got != token {
			return "", fmt.Errorf("invalid token")
		}
		return subject, nil
	}
}

// runProtected sends a request with the given Authorization header
// through AuthMiddleware and reports the response plus the subject the
// inner handler saw, if it ran.
func runProtected(t *testing.T, validator TokenValidator, authHeader string) (*httptest.ResponseRecorder, string, bool) {
	t.Helper()

	var sawSubject string
	handlerRan := false
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerRan = true
		subject, err := GetSubject(r)
		require.NoError(t, err)
		sawSubject = subject
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/evaluate", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()

	AuthMiddleware(validator)(inner).ServeHTTP(w, req)
	return w, sawSubject, handlerRan
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	w, subject, ran := runProtected(t, acceptOnly("tok-1", "operator"), "Bearer tok-1")

	assert.True(t, ran)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "operator", subject)
}

func TestAuthMiddleware_BearerSchemeIsCaseInsensitive(t *testing.T) {
	for _, scheme := range []string{"bearer", "BEARER", "BeArEr"} {
		t.Run(scheme, func(t *testing.T) {
			w, subject, ran := runProtected(t, acceptOnly("tok-1", "operator"), scheme+" tok-1")

			assert.True(t, ran)
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, "operator", subject)
		})
	}
}

func TestAuthMiddleware_RejectsBadHeaders(t *testing.T) {
	tests := []struct {
		name       string
		authHeader string
	}{
		{"no header at all", ""},
		{"bare token without scheme", "tok-1"},
		{"scheme only", "Bearer"},
		{"scheme with trailing space only", "Bearer "},
		{"wrong scheme", "Basic dXNlcjpwYXNz"},
		{"extra parts", "Bearer tok-1 surplus"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, _, ran := runProtected(t, acceptOnly("tok-1", "operator"), tt.authHeader)

			assert.False(t, ran, "inner handler must not run")
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), "Unauthorized")
		})
	}
}

func TestAuthMiddleware_RejectsTokensTheValidatorRejects(t *testing.T) {
	w, _, ran := runProtected(t, acceptOnly("tok-1", "operator"), "Bearer forged-token")

	assert.False(t, ran)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_ValidatorErrorNotLeakedToClient(t *testing.T) {
	leaky := validatorFunc(func(string) (string, error) {
		return "", fmt.Errorf("secret internal detail")
	})

	w, _, ran := runProtected(t, leaky, "Bearer anything")

	assert.False(t, ran)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.NotContains(t, w.Body.String(), "secret internal detail")
}

func TestGetSubject(t *testing.T) {
	t.Run("present", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(context.WithValue(req.Context(), subjectKey, "operator"))

		subject, err := GetSubject(req)
		require.NoError(t, err)
		assert.Equal(t, "operator", subject)
	})

	t.Run("absent", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)

		subject, err := GetSubject(req)
		assert.Error(t, err)
		assert.Empty(t, subject)
	})

	t.Run("wrong value type", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(context.WithValue(req.Context(), subjectKey, 42))

		subject, err := GetSubject(req)
		assert.Error(t, err)
		assert.Empty(t, subject)
	})
}
