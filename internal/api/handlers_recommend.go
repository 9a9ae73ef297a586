package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/docusense/docusense/internal/pipeline"
)

// handleRecommend runs a recommendation over the requested documents (or all
// stored documents when none are named) and returns the ranked report.
func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req pipeline.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Persona) == "" {
		jsonError(w, "persona is required", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Job) == "" {
		jsonError(w, "job_to_be_done is required", http.StatusBadRequest)
		return
	}

	rep, err := s.engine.Recommend(r.Context(), req)
	if err != nil {
		if errors.Is(err, pipeline.ErrDocumentNotFound) {
			jsonError(w, err.Error(), http.StatusNotFound)
			return
		}
		s.log.Error("recommend failed", "error", err)
		jsonError(w, "recommendation failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(rep)
}
