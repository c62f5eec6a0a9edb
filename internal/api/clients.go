package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"flipr/internal/media"
)

func (s *Server) handleListClients(w http.ResponseWriter, r *http.Request) {
	clients, err := s.store.ListClients(r.Context())
	if err != nil {
		s.serverError(w, "list clients", err)
		return
	}
	JSONResponse(w, http.StatusOK, clients)
}

func (s *Server) handleCreateClient(w http.ResponseWriter, r *http.Request) {
	staged, err := s.receiver.Receive(w, r, imageField)
	if err != nil {
		s.uploadError(w, err)
		return
	}

	values := map[string]string{
		"name":        r.FormValue("name"),
		"designation": r.FormValue("designation"),
		"description": r.FormValue("description"),
	}
	if errs := validateFields(values,
		notEmpty("name"), notEmpty("designation"), notEmpty("description")); len(errs) > 0 {
		s.discardStaged(staged)
		fieldErrorResponse(w, errs)
		return
	}

	publicPath, err := s.normalizer.Normalize(staged, clientImageWidth, clientImageHeight)
	if err != nil {
		s.processingError(w, staged, clientImageWidth, clientImageHeight, err)
		return
	}
	imageURL := media.ResolveURL(s.baseURL(r), publicPath)

	client, err := s.store.CreateClient(r.Context(),
		values["name"], values["designation"], values["description"], imageURL)
	if err != nil {
		s.serverError(w, "create client", err)
		return
	}
	JSONResponse(w, http.StatusCreated, client)
}

func (s *Server) handleDeleteClient(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteClient(r.Context(), mux.Vars(r)["id"]); err != nil {
		s.serverError(w, "delete client", err)
		return
	}
	JSONResponse(w, http.StatusOK, map[string]bool{"success": true})
}
