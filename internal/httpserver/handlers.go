package httpserver

import (
	"net/http"
)

func (s *Server) registerRoutes() {
	s.router.Handle("/{$}", http.HandlerFunc(s.handleRoot))
	s.router.Handle("/health", http.HandlerFunc(s.handleHealth))

	s.router.Handle("/user", http.HandlerFunc(s.handleCreateUser))
	s.router.Handle("/token", http.HandlerFunc(s.handleToken))
	s.router.Handle("/login", http.HandlerFunc(s.handleLogin))

	authenticated := s.authMiddleware
	if s.publicUserListing {
		s.router.Handle("/users", http.HandlerFunc(s.handleListUsers))
	} else {
		s.router.Handle("/users", authenticated(http.HandlerFunc(s.handleListUsers)))
	}

	s.router.Handle("/users/", authenticated(http.HandlerFunc(s.handleUserByPath)))

	s.router.Handle("/candidate", authenticated(http.HandlerFunc(s.handleCandidates)))
	s.router.Handle("/candidate/", authenticated(http.HandlerFunc(s.handleCandidateByUUID)))
	s.router.Handle("/all_candidates", authenticated(http.HandlerFunc(s.handleAllCandidates)))
	s.router.Handle("/all_candidates/search", authenticated(http.HandlerFunc(s.handleSearchCandidates)))
	s.router.Handle("/all_candidates/export", authenticated(http.HandlerFunc(s.handleExportCandidates)))
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Hello World"})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, errorResponse{Detail: "200"})
}

func (s *Server) internalError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.ErrorContext(r.Context(), "request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"error", err,
	)
	writeError(w, http.StatusInternalServerError, "internal server error")
}
