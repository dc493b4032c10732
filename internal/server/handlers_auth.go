package server

import (
	"encoding/json"
	"net/http"
)

// tokenSubject is the subject claim on every issued token. The engine is
// operated by a single user, so there is no user table behind this.
const tokenSubject = "operator"

// LoginRequest represents the request body for /auth/login
type LoginRequest struct {
	Password string `json:"password"`
}

// LoginResponse represents the response for /auth/login
type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}

// handleLogin verifies the operator password and issues a bearer token
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if req.Password == "" {
		s.errorResponse(w, http.StatusBadRequest, "password is required")
		return
	}

	if !s.authConfig.VerifyPassword(req.Password) {
		err := &ErrInvalidCredentials{}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	token, err := s.jwtService.GenerateToken(tokenSubject)
	if err != nil {
		s.log.Error("failed to generate token", "error", err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	s.jsonResponse(w, http.StatusOK, LoginResponse{
		Token:     token,
		ExpiresIn: s.authConfig.ExpirationHours * 3600,
	})
}
