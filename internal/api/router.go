package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"flipr/internal/media"
)

// Router builds the full route table. Creation and deletion endpoints
// and the privileged reads sit behind the bearer-token middleware; the
// public site reads and form submissions do not.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/api/health", func(w http.ResponseWriter, _ *http.Request) {
		JSONResponse(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")

	r.HandleFunc("/api/auth/login", s.handleLogin).Methods("POST")

	r.HandleFunc("/api/projects", s.handleListProjects).Methods("GET")
	r.Handle("/api/projects", s.auth.RequireAuth(http.HandlerFunc(s.handleCreateProject))).Methods("POST")
	r.Handle("/api/projects/{id}", s.auth.RequireAuth(http.HandlerFunc(s.handleDeleteProject))).Methods("DELETE")

	r.HandleFunc("/api/clients", s.handleListClients).Methods("GET")
	r.Handle("/api/clients", s.auth.RequireAuth(http.HandlerFunc(s.handleCreateClient))).Methods("POST")
	r.Handle("/api/clients/{id}", s.auth.RequireAuth(http.HandlerFunc(s.handleDeleteClient))).Methods("DELETE")

	r.HandleFunc("/api/contacts", s.handleCreateContact).Methods("POST")
	r.Handle("/api/contacts", s.auth.RequireAuth(http.HandlerFunc(s.handleListContacts))).Methods("GET")

	r.HandleFunc("/api/subscriptions", s.handleCreateSubscription).Methods("POST")
	r.Handle("/api/subscriptions", s.auth.RequireAuth(http.HandlerFunc(s.handleListSubscriptions))).Methods("GET")

	// Everything the normalizer writes becomes fetchable here.
	r.PathPrefix(media.PublicPrefix + "/").Handler(
		http.StripPrefix(media.PublicPrefix+"/",
			http.FileServer(http.Dir(s.cfg.UploadDir)))).Methods("GET")

	return r
}
