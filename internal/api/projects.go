package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MikeSquared-Agency/mofasa/internal/extractor"
	"github.com/MikeSquared-Agency/mofasa/internal/processor"
	"github.com/MikeSquared-Agency/mofasa/internal/project"
)

type projectSummary struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Scopes       int    `json:"scopes"`
	Participants int    `json:"participants"`
}

func (s *Server) listProjects(w http.ResponseWriter, r *http.Request) {
	projects := s.store.List(r.Context())
	out := make([]projectSummary, 0, len(projects))
	for _, p := range projects {
		ps := projectSummary{ID: p.ID, Name: p.Name, Description: p.Description, Scopes: len(p.Scopes)}
		if len(p.Scopes) > 0 {
			ps.Participants = len(p.Scopes[0].Participants)
		}
		out = append(out, ps)
	}
	writeJSON(w, http.StatusOK, map[string]any{"projects": out, "count": len(out)})
}

type createProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (s *Server) createProject(w http.ResponseWriter, r *http.Request) {
	var req createProjectRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	p, err := project.New(req.Name, req.Description)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.store.Create(r.Context(), p); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) getProject(w http.ResponseWriter, r *http.Request) {
	p, err := s.store.Get(r.Context(), chi.URLParam(r, "projectID"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) deleteProject(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "projectID")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type addParticipantRequest struct {
	Name string `json:"name"`
}

func (s *Server) addParticipant(w http.ResponseWriter, r *http.Request) {
	var req addParticipantRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	var added project.Participant
	_, err := s.store.Update(r.Context(), chi.URLParam(r, "projectID"), func(p project.Project) (project.Project, error) {
		next, part, err := project.AddParticipant(p, req.Name)
		added = part
		return next, err
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, added)
}

type addScopeRequest struct {
	Text string `json:"text"`
}

func (s *Server) addScope(w http.ResponseWriter, r *http.Request) {
	var req addScopeRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	p, err := s.store.Update(r.Context(), chi.URLParam(r, "projectID"), func(p project.Project) (project.Project, error) {
		return project.AddScope(p, req.Text, func(sec project.Section, key string) bool {
			return s.catalog.SameForAllScopes(p, sec, key)
		})
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, p.Scopes[len(p.Scopes)-1])
}

type enabledRequest struct {
	Enabled bool `json:"enabled"`
}

func (s *Server) setQuestionEnabled(w http.ResponseWriter, r *http.Request) {
	var req enabledRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	p, err := s.store.Update(r.Context(), chi.URLParam(r, "projectID"), func(p project.Project) (project.Project, error) {
		return s.catalog.SetEnabled(p, chi.URLParam(r, "questionID"), req.Enabled)
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"questions": s.catalog.ForProject(p)})
}

type ruleRequest struct {
	Rule string `json:"rule"`
}

func (s *Server) addRule(w http.ResponseWriter, r *http.Request) {
	scope, err := scopeIndex(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req ruleRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	p, err := s.store.Update(r.Context(), chi.URLParam(r, "projectID"), func(p project.Project) (project.Project, error) {
		return project.AddRule(p, scope, req.Rule)
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"rules": p.Scopes[scope].Rules})
}

func (s *Server) deleteRule(w http.ResponseWriter, r *http.Request) {
	scope, err := scopeIndex(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	p, err := s.proc.DeleteRule(r.Context(), chi.URLParam(r, "projectID"), scope, ruleParam(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"rules": p.Scopes[scope].Rules})
}

func (s *Server) tally(w http.ResponseWriter, r *http.Request) {
	scope, err := scopeIndex(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	p, err := s.store.Get(r.Context(), chi.URLParam(r, "projectID"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if scope >= len(p.Scopes) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "scope not found"})
		return
	}
	sc := p.Scopes[scope]
	writeJSON(w, http.StatusOK, map[string]any{
		"rules":             project.RuleFrequencies(sc),
		"participants":      len(sc.Participants),
		"undesirable_share": project.UndesirableShare(sc),
	})
}

type textRequest struct {
	Text string `json:"text"`
}

func (s *Server) setInterview(w http.ResponseWriter, r *http.Request) {
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
	p, err := s.proc.SetInterview(r.Context(), chi.URLParam(r, "projectID"), scope, pid, req.Text)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeParticipant(w, r, p, scope, pid)
}

type answerRequest struct {
	Section string `json:"section"`
	Key     string `json:"key"`
	Value   string `json:"value"`
}

func (s *Server) setAnswer(w http.ResponseWriter, r *http.Request) {
	scope, err := scopeIndex(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req answerRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	section, err := project.ParseSection(req.Section)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	pid := chi.URLParam(r, "participantID")
	p, err := s.proc.SetAnswer(r.Context(), chi.URLParam(r, "projectID"), scope, pid, section, req.Key, req.Value)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeParticipant(w, r, p, scope, pid)
}

type selectRulesRequest struct {
	Rules []string `json:"rules"`
}

func (s *Server) selectRules(w http.ResponseWriter, r *http.Request) {
	scope, err := scopeIndex(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req selectRulesRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	pid := chi.URLParam(r, "participantID")
	p, err := s.store.Update(r.Context(), chi.URLParam(r, "projectID"), func(p project.Project) (project.Project, error) {
		return project.SelectRules(p, scope, pid, req.Rules)
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeParticipant(w, r, p, scope, pid)
}

type extractRequest struct {
	Mode      string `json:"mode"`
	BatchSize int    `json:"batch_size"`
}

type extractedAnswer struct {
	QuestionID string          `json:"question_id"`
	Section    project.Section `json:"section"`
	Key        string          `json:"key"`
	Value      string          `json:"value"`
	Failed     bool            `json:"failed,omitempty"`
}

// extract handles POST .../participants/{participantID}/extract. The
// request blocks until every batch has been answered.
func (s *Server) extract(w http.ResponseWriter, r *http.Request) {
	scope, err := scopeIndex(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req extractRequest
	if r.ContentLength != 0 {
		if err := decodeBody(r, &req); err != nil {
			s.writeError(w, r, err)
			return
		}
	}
	mode, err := extractor.ParseMode(req.Mode)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	res, err := s.proc.ExtractParticipant(r.Context(), processor.ExtractInput{
		ProjectID:     chi.URLParam(r, "projectID"),
		Scope:         scope,
		ParticipantID: chi.URLParam(r, "participantID"),
		Mode:          mode,
		BatchSize:     req.BatchSize,
	}, nil)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	answers := make([]extractedAnswer, 0, len(res.Answers))
	for _, a := range res.Answers {
		answers = append(answers, extractedAnswer{
			QuestionID: a.Question.ID,
			Section:    a.Question.Section,
			Key:        a.Question.Key(),
			Value:      a.Value,
			Failed:     a.Failed,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"mode":    res.Mode,
		"answers": answers,
		"failed":  res.Failed(),
		"skipped": res.Skipped,
	})
}

func (s *Server) summarize(w http.ResponseWriter, r *http.Request) {
	scope, err := scopeIndex(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	text, err := s.proc.Summarize(r.Context(), chi.URLParam(r, "projectID"), scope, chi.URLParam(r, "participantID"), nil)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"summary": text})
}

func (s *Server) writeParticipant(w http.ResponseWriter, r *http.Request, p project.Project, scope int, pid string) {
	part, err := project.FindParticipant(p, scope, pid)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, part)
}
