package api

import (
	"net/http"

	"github.com/MikeSquared-Agency/mofasa/internal/factors"
	"github.com/MikeSquared-Agency/mofasa/internal/project"
)

// listFactors handles GET /api/v1/factors[?section=].
func (s *Server) listFactors(w http.ResponseWriter, r *http.Request) {
	reg := factors.Default()
	sec := r.URL.Query().Get("section")
	if sec == "" {
		writeJSON(w, http.StatusOK, map[string]any{"factors": reg.All(), "count": reg.Len()})
		return
	}
	section, err := project.ParseSection(sec)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	list := reg.BySection(section)
	writeJSON(w, http.StatusOK, map[string]any{"factors": list, "count": len(list)})
}

type parseFactorsRequest struct {
	Text string   `json:"text"`
	List []string `json:"list,omitempty"`
}

// parseFactors handles POST /api/v1/factors/parse. A list is returned as-is;
// text is tagged against the registry.
func (s *Server) parseFactors(w http.ResponseWriter, r *http.Request) {
	var req parseFactorsRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.List != nil {
		writeJSON(w, http.StatusOK, map[string]any{"factors": factors.ParseList(req.List)})
		return
	}

	names := s.tagger.Parse(req.Text)
	known := s.tagger.Resolve(req.Text)
	if known == nil {
		known = []factors.Factor{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"factors":  names,
		"known":    known,
		"fallback": len(names) > 0 && len(s.tagger.Spans(req.Text)) == 0,
	})
}

// listQuestions handles GET /api/v1/questions, the template question set.
func (s *Server) listQuestions(w http.ResponseWriter, r *http.Request) {
	qs := s.catalog.All()
	writeJSON(w, http.StatusOK, map[string]any{"questions": qs, "count": len(qs)})
}
