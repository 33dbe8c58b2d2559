package project

import (
	"fmt"
	"strings"
)

// Section is one of the five MoFASA sections.
type Section int

const (
	Situation Section = iota
	Identity
	DefinitionOfSituation
	RuleSelection
	Decision
)

// Sections lists every section in framework order.
var Sections = []Section{Situation, Identity, DefinitionOfSituation, RuleSelection, Decision}

func (s Section) String() string {
	switch s {
	case Situation:
		return "Situation"
	case Identity:
		return "Identity"
	case DefinitionOfSituation:
		return "Definition of Situation"
	case RuleSelection:
		return "Rule Selection"
	case Decision:
		return "Decision"
	}
	return fmt.Sprintf("Section(%d)", int(s))
}

// Valid reports whether s is one of the declared sections.
func (s Section) Valid() bool {
	switch s {
	case Situation, Identity, DefinitionOfSituation, RuleSelection, Decision:
		return true
	}
	return false
}

// Extractable reports whether answers for the section can be derived from an
// interview transcript. Rule Selection and Decision are coded by the
// researcher against the scope's rule list.
func (s Section) Extractable() bool {
	switch s {
	case Situation, Identity, DefinitionOfSituation:
		return true
	case RuleSelection, Decision:
		return false
	}
	return false
}

// ParseSection accepts the display name ("Definition of Situation") or the
// compact identifier ("DefinitionOfSituation"), case-insensitively.
func ParseSection(v string) (Section, error) {
	norm := strings.ToLower(strings.Join(strings.Fields(v), ""))
	for _, s := range Sections {
		if norm == strings.ToLower(strings.ReplaceAll(s.String(), " ", "")) {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown section %q", ErrInvalid, v)
}

func (s Section) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: section %d", ErrInvalid, int(s))
	}
	return []byte(s.String()), nil
}

func (s *Section) UnmarshalText(b []byte) error {
	parsed, err := ParseSection(string(b))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
