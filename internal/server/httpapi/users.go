package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/commently/commently/internal/common"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	UserToken string `json:"userToken"`
}

// handleSignUp registers a new identity and returns its bearer token.
//
// Status mapping existing clients depend on: input validation 401,
// store-level validation 501, duplicate 502, anything else
// store-related 503.
func (s *Server) handleSignUp(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusUnauthorized, common.ErrorMissingFields.Error())
		return
	}

	token, err := s.users.SignUp(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorMissingFields),
			errors.Is(err, common.ErrorInvalidEmail),
			errors.Is(err, common.ErrorPasswordTooShort):
			s.respondError(w, http.StatusUnauthorized, err.Error())
		case errors.Is(err, common.ErrorValidation):
			s.respondError(w, http.StatusNotImplemented, "provide all fields")
		case errors.Is(err, common.ErrorAlreadyExists):
			s.respondError(w, http.StatusBadGateway, "user already exists")
		default:
			s.logger.Error(r.Context(), "signup failed", "error", err.Error())
			s.respondError(w, http.StatusServiceUnavailable, "error encountered")
		}
		return
	}

	s.respondJSON(w, http.StatusOK, tokenResponse{UserToken: token})
}

// handleLogin authenticates an existing identity and returns a fresh token.
// "user not found" and "incorrect username or password" stay separate
// messages, but unexpected store failures reuse the credentials message so
// the response never confirms whether the account exists.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, common.ErrorMissingFields.Error())
		return
	}

	token, err := s.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorMissingFields):
			s.respondError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, common.ErrorNotFound):
			s.respondError(w, http.StatusUnauthorized, "user not found")
		case errors.Is(err, common.ErrorUnauthorized):
			s.respondError(w, http.StatusUnauthorized, "incorrect username or password")
		default:
			s.logger.Error(r.Context(), "login failed", "error", err.Error())
			s.respondError(w, http.StatusInternalServerError, "incorrect username or password")
		}
		return
	}

	s.respondJSON(w, http.StatusOK, tokenResponse{UserToken: token})
}

// handleVerify echoes the identity resolved by the auth middleware.
func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		s.respondError(w, http.StatusUnauthorized, "missing token")
		return
	}

	s.respondJSON(w, http.StatusCreated, identity)
}
