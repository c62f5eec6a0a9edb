package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"flipr/internal/media"
)

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := s.store.ListProjects(r.Context())
	if err != nil {
		s.serverError(w, "list projects", err)
		return
	}
	JSONResponse(w, http.StatusOK, projects)
}

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	staged, err := s.receiver.Receive(w, r, imageField)
	if err != nil {
		s.uploadError(w, err)
		return
	}

	values := map[string]string{
		"name":        r.FormValue("name"),
		"description": r.FormValue("description"),
	}
	if errs := validateFields(values, notEmpty("name"), notEmpty("description")); len(errs) > 0 {
		s.discardStaged(staged)
		fieldErrorResponse(w, errs)
		return
	}

	publicPath, err := s.normalizer.Normalize(staged, projectImageWidth, projectImageHeight)
	if err != nil {
		s.processingError(w, staged, projectImageWidth, projectImageHeight, err)
		return
	}
	imageURL := media.ResolveURL(s.baseURL(r), publicPath)

	project, err := s.store.CreateProject(r.Context(), values["name"], values["description"], imageURL)
	if err != nil {
		s.serverError(w, "create project", err)
		return
	}
	JSONResponse(w, http.StatusCreated, project)
}

func (s *Server) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteProject(r.Context(), mux.Vars(r)["id"]); err != nil {
		s.serverError(w, "delete project", err)
		return
	}
	JSONResponse(w, http.StatusOK, map[string]bool{"success": true})
}
