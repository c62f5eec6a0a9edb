package api

import (
	"encoding/json"
	"net/http"
)

type contactRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Mobile   string `json:"mobile"`
	City     string `json:"city"`
}

func (s *Server) handleCreateContact(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		messageResponse(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	errs := validateFields(map[string]string{
		"fullName": req.FullName,
		"email":    req.Email,
		"mobile":   req.Mobile,
		"city":     req.City,
	}, notEmpty("fullName"), isEmail("email"), notEmpty("mobile"), notEmpty("city"))
	if len(errs) > 0 {
		fieldErrorResponse(w, errs)
		return
	}

	contact, err := s.store.CreateContact(r.Context(), req.FullName, req.Email, req.Mobile, req.City)
	if err != nil {
		s.serverError(w, "create contact", err)
		return
	}
	JSONResponse(w, http.StatusCreated, contact)
}

func (s *Server) handleListContacts(w http.ResponseWriter, r *http.Request) {
	contacts, err := s.store.ListContacts(r.Context())
	if err != nil {
		s.serverError(w, "list contacts", err)
		return
	}
	JSONResponse(w, http.StatusOK, contacts)
}
