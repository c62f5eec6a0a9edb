package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"flipr/internal/auth"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		messageResponse(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	errs := validateFields(map[string]string{
		"email":    req.Email,
		"password": req.Password,
	}, isEmail("email"), notEmpty("password"))
	if len(errs) > 0 {
		fieldErrorResponse(w, errs)
		return
	}

	user, err := s.auth.VerifyCredentials(r.Context(), req.Email, req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		messageResponse(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if err != nil {
		s.serverError(w, "verify credentials", err)
		return
	}

	token, err := s.auth.Tokens().Issue(user)
	if err != nil {
		s.serverError(w, "issue token", err)
		return
	}
	JSONResponse(w, http.StatusOK, map[string]string{
		"token": token,
		"email": user.Email,
	})
}

// serverError logs the cause and returns an opaque 500. Internal detail
// never reaches the client.
func (s *Server) serverError(w http.ResponseWriter, op string, err error) {
	s.log.Error(op, zap.Error(err))
	messageResponse(w, http.StatusInternalServerError, "Server error")
}
