package project

import (
	"errors"
	"maps"
	"slices"
	"strings"
	"time"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("already exists")
	ErrInvalid   = errors.New("invalid")
)

// QuestionType distinguishes free-text questions from option lists.
type QuestionType string

const (
	QuestionText     QuestionType = "text"
	QuestionDropdown QuestionType = "dropdown"
)

// Question is a single interview coding question.
type Question struct {
	ID      string       `json:"id"`
	Text    string       `json:"text"`
	Type    QuestionType `json:"type"`
	Options []string     `json:"options,omitempty"`
	Factors string       `json:"factors,omitempty"` // raw factor reference, parsed by the tagger
	Section Section      `json:"section"`
	Enabled bool         `json:"enabled"`

	// SameForAllScopes answers are mirrored into every scope's copy of the participant.
	SameForAllScopes bool `json:"same_for_all_scopes,omitempty"`
}

// Key returns the answer map key: the id for dropdowns, the literal text otherwise.
func (q Question) Key() string {
	if q.Type == QuestionDropdown {
		return q.ID
	}
	return q.Text
}

// Participant is one interviewee. The ID is shared by the participant's
// copies across all scopes of a project.
type Participant struct {
	ID            string                        `json:"id"`
	Name          string                        `json:"name"`
	Answers       map[Section]map[string]string `json:"answers"`
	SelectedRules []string                      `json:"selected_rules"`
	Decision      map[string]string             `json:"decision,omitempty"`
	Summary       string                        `json:"summary,omitempty"`
	InterviewText string                        `json:"interview_text,omitempty"`
}

// Rules returns the selected rules, never nil.
func (p Participant) Rules() []string {
	if p.SelectedRules == nil {
		return []string{}
	}
	return p.SelectedRules
}

// Answer returns the trimmed answer for a question key.
func (p Participant) Answer(section Section, key string) string {
	return strings.TrimSpace(p.Answers[section][key])
}

// SituationDesign holds the researcher's redesign notes for a scope.
type SituationDesign struct {
	RobotChanges         string            `json:"robot_changes"`
	EnvironmentalChanges string            `json:"environmental_changes"`
	Decisions            map[string]string `json:"decisions,omitempty"` // keyed by rule text
}

// Scope is a sub-study within a project.
type Scope struct {
	Number           int             `json:"scope_number"`
	Text             string          `json:"scope_text"`
	Rules            []string        `json:"rules"`
	Participants     []Participant   `json:"participants"`
	SituationDesign  SituationDesign `json:"situation_design"`
	UndesirableRules []string        `json:"undesirable_rules"`
}

func (s Scope) participantIndex(id string) int {
	for i, p := range s.Participants {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// HasRule reports whether rule is one of the scope's rules.
func (s Scope) HasRule(rule string) bool {
	return slices.Contains(s.Rules, rule)
}

// Project is the unit of persistence.
type Project struct {
	ID                string     `json:"id"`
	Name              string     `json:"name"`
	Description       string     `json:"description"`
	Scopes            []Scope    `json:"scopes"`
	QuestionOverrides []Question `json:"question_overrides,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// Clone returns a deep copy so that mutations never alias the original document.
func (p Project) Clone() Project {
	out := p
	out.Scopes = make([]Scope, len(p.Scopes))
	for i, s := range p.Scopes {
		out.Scopes[i] = s.clone()
	}
	out.QuestionOverrides = make([]Question, len(p.QuestionOverrides))
	for i, q := range p.QuestionOverrides {
		q.Options = slices.Clone(q.Options)
		out.QuestionOverrides[i] = q
	}
	if p.QuestionOverrides == nil {
		out.QuestionOverrides = nil
	}
	return out
}

func (s Scope) clone() Scope {
	out := s
	out.Rules = slices.Clone(s.Rules)
	out.UndesirableRules = slices.Clone(s.UndesirableRules)
	out.SituationDesign.Decisions = maps.Clone(s.SituationDesign.Decisions)
	out.Participants = make([]Participant, len(s.Participants))
	for i, p := range s.Participants {
		out.Participants[i] = p.clone()
	}
	return out
}

func (p Participant) clone() Participant {
	out := p
	out.SelectedRules = slices.Clone(p.Rules())
	out.Decision = maps.Clone(p.Decision)
	if p.Answers != nil {
		out.Answers = make(map[Section]map[string]string, len(p.Answers))
		for sec, m := range p.Answers {
			out.Answers[sec] = maps.Clone(m)
		}
	}
	return out
}

// Normalize fills the collections the rest of the code expects to be non-nil.
func Normalize(p Project) Project {
	for i := range p.Scopes {
		s := &p.Scopes[i]
		if s.Rules == nil {
			s.Rules = []string{}
		}
		if s.UndesirableRules == nil {
			s.UndesirableRules = []string{}
		}
		for j := range s.Participants {
			part := &s.Participants[j]
			part.SelectedRules = part.Rules()
			if part.Answers == nil {
				part.Answers = map[Section]map[string]string{}
			}
		}
	}
	return p
}
