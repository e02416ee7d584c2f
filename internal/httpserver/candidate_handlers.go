package httpserver

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	candidatedomain "talentpool/backend/internal/domain/candidate"
)

type candidateCreatedResponse struct {
	Message     string `json:"message"`
	CandidateID string `json:"candidate_id"`
	UUID        string `json:"uuid"`
}

func (s *Server) handleCandidates(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}

	var payload candidatedomain.Candidate
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	id, uuid, err := s.candidateService.Create(r.Context(), payload)
	if err != nil {
		s.candidateError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, candidateCreatedResponse{
		Message:     "Candidate created successfully",
		CandidateID: id,
		UUID:        uuid,
	})
}

func (s *Server) handleCandidateByUUID(w http.ResponseWriter, r *http.Request) {
	id := strings.Trim(strings.TrimPrefix(r.URL.Path, "/candidate/"), "/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusNotFound, "Not Found")
		return
	}

	ctx := r.Context()

	switch r.Method {
	case http.MethodGet:
		item, err := s.candidateService.Get(ctx, id)
		if err != nil {
			s.candidateError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, item)
	case http.MethodPut:
		var payload candidatedomain.Candidate
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON payload")
			return
		}
		if err := s.candidateService.Update(ctx, id, payload); err != nil {
			s.candidateError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, messageResponse{Message: "Candidate updated successfully"})
	case http.MethodDelete:
		if err := s.candidateService.Delete(ctx, id); err != nil {
			s.candidateError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, messageResponse{Message: "Candidate deleted successfully"})
	default:
		writeMethodNotAllowed(w, http.MethodGet, http.MethodPut, http.MethodDelete)
	}
}

func (s *Server) handleAllCandidates(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}
	items, err := s.candidateService.List(r.Context())
	if err != nil {
		s.candidateError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleSearchCandidates(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}

	query := r.URL.Query()
	if !query.Has("attribute") || !query.Has("value") {
		writeError(w, http.StatusBadRequest, "attribute and value query parameters are required")
		return
	}

	items, err := s.candidateService.Search(r.Context(), query.Get("attribute"), query.Get("value"))
	if err != nil {
		s.candidateError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleExportCandidates(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}

	var buf bytes.Buffer
	if err := s.candidateService.ExportCSV(r.Context(), &buf); err != nil {
		s.candidateError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="candidates.csv"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) candidateError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, candidatedomain.ErrNotFound):
		writeError(w, http.StatusNotFound, "Candidate not found")
	case errors.Is(err, candidatedomain.ErrEmailExists):
		writeError(w, http.StatusConflict, "Candidate Already Exists")
	case errors.Is(err, candidatedomain.ErrUnsupportedField), errors.Is(err, candidatedomain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		s.internalError(w, r, err)
	}
}
