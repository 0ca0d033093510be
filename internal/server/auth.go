package server

import (
	"errors"
	"net/http"

	"github.com/Tomlord1122/todo-api/internal/auth"
	"github.com/Tomlord1122/todo-api/internal/service"
)

func (s *Server) signUpHandler(w http.ResponseWriter, r *http.Request) {
	var req service.CredentialsRequest
	if !s.decodeJSON(w, r, &req, true) {
		return
	}

	sess, err := s.authService.SignUp(r.Context(), req)
	if err != nil {
		var verr *service.ValidationError
		switch {
		case errors.As(err, &verr):
			s.respondWithError(w, http.StatusBadRequest, verr.Message)
		case errors.Is(err, service.ErrEmailTaken):
			s.respondWithError(w, http.StatusConflict, "Email already registered")
		default:
			s.logger.ErrorContext(r.Context(), "sign up failed", "error", err)
			s.respondWithError(w, http.StatusInternalServerError, "Failed to sign up")
		}
		return
	}

	auth.SetSessionCookie(w, sess.Token, s.sessionTTL, s.secureCookie)
	s.respondWithJSON(w, http.StatusCreated, sess)
}

func (s *Server) signInHandler(w http.ResponseWriter, r *http.Request) {
	var req service.CredentialsRequest
	if !s.decodeJSON(w, r, &req, true) {
		return
	}

	sess, err := s.authService.SignIn(r.Context(), req)
	if err != nil {
		var verr *service.ValidationError
		switch {
		case errors.As(err, &verr):
			s.respondWithError(w, http.StatusBadRequest, verr.Message)
		case errors.Is(err, service.ErrInvalidCredentials):
			s.respondWithError(w, http.StatusUnauthorized, "Invalid email or password")
		default:
			s.logger.ErrorContext(r.Context(), "sign in failed", "error", err)
			s.respondWithError(w, http.StatusInternalServerError, "Failed to sign in")
		}
		return
	}

	auth.SetSessionCookie(w, sess.Token, s.sessionTTL, s.secureCookie)
	s.respondWithJSON(w, http.StatusOK, sess)
}

// signOutHandler drops the cookie. Bearer tokens stay valid until they expire.
func (s *Server) signOutHandler(w http.ResponseWriter, r *http.Request) {
	auth.ClearSessionCookie(w, s.secureCookie)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) sessionHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.currentUser(w, r)
	if !ok {
		return
	}

	user, err := s.authService.CurrentUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			s.unauthorized(w, r)
			return
		}
		s.logger.ErrorContext(r.Context(), "load session user failed", "error", err)
		s.respondWithError(w, http.StatusInternalServerError, "Failed to load session")
		return
	}
	s.respondWithJSON(w, http.StatusOK, user)
}
