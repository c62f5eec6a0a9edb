package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"flipr/internal/store"
)

type subscriptionRequest struct {
	Email string `json:"email"`
}

func (s *Server) handleCreateSubscription(w http.ResponseWriter, r *http.Request) {
	var req subscriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		messageResponse(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if errs := validateFields(map[string]string{"email": req.Email}, isEmail("email")); len(errs) > 0 {
		fieldErrorResponse(w, errs)
		return
	}

	// Signing up twice is not an error; the existing record comes back.
	existing, err := s.store.SubscriptionByEmail(r.Context(), req.Email)
	if err == nil {
		JSONResponse(w, http.StatusOK, existing)
		return
	}
	if !errors.Is(err, store.ErrNotFound) {
		s.serverError(w, "look up subscription", err)
		return
	}

	sub, err := s.store.CreateSubscription(r.Context(), req.Email)
	if err != nil {
		s.serverError(w, "create subscription", err)
		return
	}
	JSONResponse(w, http.StatusCreated, sub)
}

func (s *Server) handleListSubscriptions(w http.ResponseWriter, r *http.Request) {
	subs, err := s.store.ListSubscriptions(r.Context())
	if err != nil {
		s.serverError(w, "list subscriptions", err)
		return
	}
	JSONResponse(w, http.StatusOK, subs)
}
