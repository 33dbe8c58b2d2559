package project

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// WriteOptions controls how an answer write fans out.
type WriteOptions struct {
	AllScopes bool
}

// New creates a project with a single empty scope.
func New(name, description string) (Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Project{}, fmt.Errorf("%w: project name is required", ErrInvalid)
	}
	now := time.Now().UTC()
	return Project{
		ID:          uuid.New().String(),
		Name:        name,
		Description: strings.TrimSpace(description),
		Scopes: []Scope{{
			Number:           1,
			Rules:            []string{},
			Participants:     []Participant{},
			UndesirableRules: []string{},
		}},
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func checkScope(p Project, scopeIdx int) error {
	if scopeIdx < 0 || scopeIdx >= len(p.Scopes) {
		return fmt.Errorf("scope %d: %w", scopeIdx, ErrNotFound)
	}
	return nil
}

// FindParticipant returns the participant's copy in the given scope.
func FindParticipant(p Project, scopeIdx int, participantID string) (Participant, error) {
	if err := checkScope(p, scopeIdx); err != nil {
		return Participant{}, err
	}
	i := p.Scopes[scopeIdx].participantIndex(participantID)
	if i < 0 {
		return Participant{}, fmt.Errorf("participant %s: %w", participantID, ErrNotFound)
	}
	part := p.Scopes[scopeIdx].Participants[i]
	part.SelectedRules = part.Rules()
	return part, nil
}

// updateParticipant applies fn to the participant's copy in scopeIdx, or in
// every scope when all is set. The participant must exist in scopeIdx.
func updateParticipant(p Project, scopeIdx int, participantID string, all bool, fn func(*Participant) error) (Project, error) {
	if _, err := FindParticipant(p, scopeIdx, participantID); err != nil {
		return p, err
	}
	next := p.Clone()
	for si := range next.Scopes {
		if si != scopeIdx && !all {
			continue
		}
		pi := next.Scopes[si].participantIndex(participantID)
		if pi < 0 {
			continue
		}
		if err := fn(&next.Scopes[si].Participants[pi]); err != nil {
			return p, err
		}
	}
	return next, nil
}

// SetAnswer records value for (participant, section, key). With AllScopes the
// same write is repeated in every scope that holds the participant.
func SetAnswer(p Project, scopeIdx int, participantID string, section Section, key, value string, opts WriteOptions) (Project, error) {
	if !section.Valid() {
		return p, fmt.Errorf("%w: section %d", ErrInvalid, int(section))
	}
	if key == "" {
		return p, fmt.Errorf("%w: empty question key", ErrInvalid)
	}
	return updateParticipant(p, scopeIdx, participantID, opts.AllScopes, func(part *Participant) error {
		if part.Answers == nil {
			part.Answers = map[Section]map[string]string{}
		}
		if part.Answers[section] == nil {
			part.Answers[section] = map[string]string{}
		}
		part.Answers[section][key] = value
		return nil
	})
}

// SetInterview stores the interview transcript for the participant's copy in a scope.
func SetInterview(p Project, scopeIdx int, participantID, text string) (Project, error) {
	return updateParticipant(p, scopeIdx, participantID, false, func(part *Participant) error {
		part.InterviewText = text
		return nil
	})
}

// SetSummary stores a generated or edited participant summary.
func SetSummary(p Project, scopeIdx int, participantID, summary string) (Project, error) {
	return updateParticipant(p, scopeIdx, participantID, false, func(part *Participant) error {
		part.Summary = summary
		return nil
	})
}

// AddRule appends a rule label to a scope. Labels are unique within a scope.
func AddRule(p Project, scopeIdx int, rule string) (Project, error) {
	if err := checkScope(p, scopeIdx); err != nil {
		return p, err
	}
	rule = strings.TrimSpace(rule)
	if rule == "" {
		return p, fmt.Errorf("%w: empty rule", ErrInvalid)
	}
	if p.Scopes[scopeIdx].HasRule(rule) {
		return p, fmt.Errorf("rule %q: %w", rule, ErrDuplicate)
	}
	next := p.Clone()
	next.Scopes[scopeIdx].Rules = append(next.Scopes[scopeIdx].Rules, rule)
	return next, nil
}

// DeleteRule removes a rule from a scope and from everything keyed by it:
// participants' selected rules and decisions, the undesirable list and the
// situation design decisions.
func DeleteRule(p Project, scopeIdx int, rule string) (Project, error) {
	if err := checkScope(p, scopeIdx); err != nil {
		return p, err
	}
	if !p.Scopes[scopeIdx].HasRule(rule) {
		return p, fmt.Errorf("rule %q: %w", rule, ErrNotFound)
	}
	next := p.Clone()
	s := &next.Scopes[scopeIdx]
	s.Rules = remove(s.Rules, rule)
	s.UndesirableRules = remove(s.UndesirableRules, rule)
	delete(s.SituationDesign.Decisions, rule)
	for i := range s.Participants {
		part := &s.Participants[i]
		part.SelectedRules = remove(part.Rules(), rule)
		delete(part.Decision, rule)
	}
	return next, nil
}

func remove(list []string, v string) []string {
	out := make([]string, 0, len(list))
	for _, item := range list {
		if item != v {
			out = append(out, item)
		}
	}
	return out
}

// SelectRules replaces the participant's selected rules. Every rule must
// belong to the scope; repeated labels are collapsed.
func SelectRules(p Project, scopeIdx int, participantID string, rules []string) (Project, error) {
	if err := checkScope(p, scopeIdx); err != nil {
		return p, err
	}
	selected := make([]string, 0, len(rules))
	for _, r := range rules {
		if !p.Scopes[scopeIdx].HasRule(r) {
			return p, fmt.Errorf("%w: rule %q is not defined in scope %d", ErrInvalid, r, scopeIdx)
		}
		if !slices.Contains(selected, r) {
			selected = append(selected, r)
		}
	}
	return updateParticipant(p, scopeIdx, participantID, false, func(part *Participant) error {
		part.SelectedRules = selected
		return nil
	})
}

// SetDecision records what the participant decided for a rule. A blank text
// removes the entry.
func SetDecision(p Project, scopeIdx int, participantID, rule, text string) (Project, error) {
	if err := checkScope(p, scopeIdx); err != nil {
		return p, err
	}
	if !p.Scopes[scopeIdx].HasRule(rule) {
		return p, fmt.Errorf("rule %q: %w", rule, ErrNotFound)
	}
	return updateParticipant(p, scopeIdx, participantID, false, func(part *Participant) error {
		if strings.TrimSpace(text) == "" {
			delete(part.Decision, rule)
			return nil
		}
		if part.Decision == nil {
			part.Decision = map[string]string{}
		}
		part.Decision[rule] = text
		return nil
	})
}

// MarkUndesirable flags or unflags a rule as undesirable.
func MarkUndesirable(p Project, scopeIdx int, rule string, undesirable bool) (Project, error) {
	if err := checkScope(p, scopeIdx); err != nil {
		return p, err
	}
	if !p.Scopes[scopeIdx].HasRule(rule) {
		return p, fmt.Errorf("rule %q: %w", rule, ErrNotFound)
	}
	next := p.Clone()
	s := &next.Scopes[scopeIdx]
	has := slices.Contains(s.UndesirableRules, rule)
	switch {
	case undesirable && !has:
		s.UndesirableRules = append(s.UndesirableRules, rule)
	case !undesirable && has:
		s.UndesirableRules = remove(s.UndesirableRules, rule)
	}
	return next, nil
}

// SetSituationDesign updates the redesign notes for a scope.
func SetSituationDesign(p Project, scopeIdx int, robotChanges, environmentalChanges string) (Project, error) {
	if err := checkScope(p, scopeIdx); err != nil {
		return p, err
	}
	next := p.Clone()
	next.Scopes[scopeIdx].SituationDesign.RobotChanges = robotChanges
	next.Scopes[scopeIdx].SituationDesign.EnvironmentalChanges = environmentalChanges
	return next, nil
}

// SetRedesignDecision records the redesign note attached to an undesirable rule.
func SetRedesignDecision(p Project, scopeIdx int, rule, text string) (Project, error) {
	if err := checkScope(p, scopeIdx); err != nil {
		return p, err
	}
	if !p.Scopes[scopeIdx].HasRule(rule) {
		return p, fmt.Errorf("rule %q: %w", rule, ErrNotFound)
	}
	next := p.Clone()
	sd := &next.Scopes[scopeIdx].SituationDesign
	if strings.TrimSpace(text) == "" {
		delete(sd.Decisions, rule)
		return next, nil
	}
	if sd.Decisions == nil {
		sd.Decisions = map[string]string{}
	}
	sd.Decisions[rule] = text
	return next, nil
}

// AddScope appends a scope holding a copy of every participant. Answers for
// which shared reports true are carried over from the first scope.
func AddScope(p Project, text string, shared func(Section, string) bool) (Project, error) {
	next := p.Clone()
	number := 1
	for _, s := range next.Scopes {
		if s.Number >= number {
			number = s.Number + 1
		}
	}
	scope := Scope{
		Number:           number,
		Text:             strings.TrimSpace(text),
		Rules:            []string{},
		Participants:     []Participant{},
		UndesirableRules: []string{},
	}
	if len(next.Scopes) > 0 {
		for _, src := range next.Scopes[0].Participants {
			part := Participant{
				ID:            src.ID,
				Name:          src.Name,
				Answers:       map[Section]map[string]string{},
				SelectedRules: []string{},
			}
			for sec, answers := range src.Answers {
				for key, v := range answers {
					if shared == nil || !shared(sec, key) {
						continue
					}
					if part.Answers[sec] == nil {
						part.Answers[sec] = map[string]string{}
					}
					part.Answers[sec][key] = v
				}
			}
			scope.Participants = append(scope.Participants, part)
		}
	}
	next.Scopes = append(next.Scopes, scope)
	return next, nil
}

// AddParticipant adds a participant to every scope. Names are unique within
// the project, compared case-insensitively.
func AddParticipant(p Project, name string) (Project, Participant, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return p, Participant{}, fmt.Errorf("%w: participant name is required", ErrInvalid)
	}
	if len(p.Scopes) == 0 {
		return p, Participant{}, fmt.Errorf("%w: project has no scopes", ErrInvalid)
	}
	for _, s := range p.Scopes {
		for _, existing := range s.Participants {
			if strings.EqualFold(existing.Name, name) {
				return p, Participant{}, fmt.Errorf("participant %q: %w", name, ErrDuplicate)
			}
		}
	}
	part := Participant{
		ID:            uuid.New().String(),
		Name:          name,
		Answers:       map[Section]map[string]string{},
		SelectedRules: []string{},
	}
	next := p.Clone()
	for i := range next.Scopes {
		next.Scopes[i].Participants = append(next.Scopes[i].Participants, part.clone())
	}
	return next, part, nil
}

// RemoveParticipant drops the participant from every scope.
func RemoveParticipant(p Project, participantID string) (Project, error) {
	found := false
	next := p.Clone()
	for i := range next.Scopes {
		s := &next.Scopes[i]
		idx := s.participantIndex(participantID)
		if idx < 0 {
			continue
		}
		found = true
		s.Participants = slices.Delete(s.Participants, idx, idx+1)
	}
	if !found {
		return p, fmt.Errorf("participant %s: %w", participantID, ErrNotFound)
	}
	return next, nil
}

// HasAnswers reports whether the participant has at least one non-blank
// answer in the section.
func HasAnswers(part Participant, section Section) bool {
	for _, v := range part.Answers[section] {
		if strings.TrimSpace(v) != "" {
			return true
		}
	}
	return false
}

// AnsweredSections lists the sections with at least one non-blank answer, in framework order.
func AnsweredSections(part Participant) []Section {
	var out []Section
	for _, s := range Sections {
		if HasAnswers(part, s) {
			out = append(out, s)
		}
	}
	return out
}
