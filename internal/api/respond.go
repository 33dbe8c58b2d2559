package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MikeSquared-Agency/mofasa/internal/extractor"
	"github.com/MikeSquared-Agency/mofasa/internal/project"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// writeError maps domain errors onto HTTP status codes.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, project.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, project.ErrDuplicate):
		status = http.StatusConflict
	case errors.Is(err, project.ErrInvalid), errors.Is(err, extractor.ErrInvalidBatchSize):
		status = http.StatusBadRequest
	case errors.Is(err, extractor.ErrEmptyTranscript),
		errors.Is(err, extractor.ErrNoQuestions),
		errors.Is(err, extractor.ErrNoAnswers):
		status = http.StatusUnprocessableEntity
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: invalid JSON: %v", project.ErrInvalid, err)
	}
	return nil
}

// scopeIndex turns the 1-based scope number in the path into a slice index.
func scopeIndex(r *http.Request) (int, error) {
	n, err := strconv.Atoi(chi.URLParam(r, "scope"))
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: scope must be a positive number", project.ErrInvalid)
	}
	return n - 1, nil
}
