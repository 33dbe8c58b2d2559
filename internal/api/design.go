package api

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/MikeSquared-Agency/mofasa/internal/project"
)

// ruleParam returns the {rule} path segment with percent-escapes decoded.
func ruleParam(r *http.Request) string {
	rule := chi.URLParam(r, "rule")
	if unescaped, err := url.PathUnescape(rule); err == nil {
		return unescaped
	}
	return rule
}

type undesirableRequest struct {
	Undesirable bool `json:"undesirable"`
}

func (s *Server) markUndesirable(w http.ResponseWriter, r *http.Request) {
	scope, err := scopeIndex(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req undesirableRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	rule := ruleParam(r)
	p, err := s.store.Update(r.Context(), chi.URLParam(r, "projectID"), func(p project.Project) (project.Project, error) {
		return project.MarkUndesirable(p, scope, rule, req.Undesirable)
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"undesirable_rules": p.Scopes[scope].UndesirableRules})
}

func (s *Server) setRedesign(w http.ResponseWriter, r *http.Request) {
	scope, err := scopeIndex(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req textRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	rule := ruleParam(r)
	p, err := s.store.Update(r.Context(), chi.URLParam(r, "projectID"), func(p project.Project) (project.Project, error) {
		return project.SetRedesignDecision(p, scope, rule, req.Text)
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p.Scopes[scope].SituationDesign)
}

type situationDesignRequest struct {
	RobotChanges         string `json:"robot_changes"`
	EnvironmentalChanges string `json:"environmental_changes"`
}

func (s *Server) setSituationDesign(w http.ResponseWriter, r *http.Request) {
	scope, err := scopeIndex(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req situationDesignRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	p, err := s.store.Update(r.Context(), chi.URLParam(r, "projectID"), func(p project.Project) (project.Project, error) {
		return project.SetSituationDesign(p, scope, req.RobotChanges, req.EnvironmentalChanges)
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p.Scopes[scope].SituationDesign)
}

// setDecision records the participant's reasoning for one selected rule.
// An empty text clears it.
func (s *Server) setDecision(w http.ResponseWriter, r *http.Request) {
	scope, err := scopeIndex(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req textRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	pid := chi.URLParam(r, "participantID")
	rule := ruleParam(r)
	p, err := s.store.Update(r.Context(), chi.URLParam(r, "projectID"), func(p project.Project) (project.Project, error) {
		return project.SetDecision(p, scope, pid, rule, req.Text)
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeParticipant(w, r, p, scope, pid)
}

func (s *Server) removeParticipant(w http.ResponseWriter, r *http.Request) {
	_, err := s.store.Update(r.Context(), chi.URLParam(r, "projectID"), func(p project.Project) (project.Project, error) {
		return project.RemoveParticipant(p, chi.URLParam(r, "participantID"))
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// overrideQuestion replaces the project's copy of a question. The id in the
// path wins over any id in the body.
func (s *Server) overrideQuestion(w http.ResponseWriter, r *http.Request) {
	var q project.Question
	if err := decodeBody(r, &q); err != nil {
		s.writeError(w, r, err)
		return
	}
	q.ID = chi.URLParam(r, "questionID")
	p, err := s.store.Update(r.Context(), chi.URLParam(r, "projectID"), func(p project.Project) (project.Project, error) {
		return s.catalog.Override(p, q)
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"questions": s.catalog.ForProject(p)})
}
