package questions

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/MikeSquared-Agency/mofasa/internal/project"
)

//go:embed questions.yaml
var seedYAML []byte

type fileDoc struct {
	Questions []questionDoc `yaml:"questions"`
}

type questionDoc struct {
	ID               string   `yaml:"id"`
	Section          string   `yaml:"section"`
	Type             string   `yaml:"type"`
	Text             string   `yaml:"text"`
	Options          []string `yaml:"options"`
	Factors          string   `yaml:"factors"`
	Disabled         bool     `yaml:"disabled"`
	SameForAllScopes bool     `yaml:"same_for_all_scopes"`
}

// Catalog is the template question set projects start from.
type Catalog struct {
	questions []project.Question
}

// Default parses the embedded seed questions.
func Default() (*Catalog, error) {
	return Parse(seedYAML)
}

// Load reads a question file from disk.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read questions: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a question document.
func Parse(data []byte) (*Catalog, error) {
	var doc fileDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse questions: %w", err)
	}
	seen := map[string]bool{}
	c := &Catalog{}
	for i, qd := range doc.Questions {
		q, err := qd.toQuestion()
		if err != nil {
			return nil, fmt.Errorf("question %d: %w", i, err)
		}
		if seen[q.ID] {
			return nil, fmt.Errorf("question %d: duplicate id %q", i, q.ID)
		}
		seen[q.ID] = true
		c.questions = append(c.questions, q)
	}
	return c, nil
}

func (qd questionDoc) toQuestion() (project.Question, error) {
	q := project.Question{
		ID:               strings.TrimSpace(qd.ID),
		Text:             strings.TrimSpace(qd.Text),
		Type:             project.QuestionType(strings.ToLower(strings.TrimSpace(qd.Type))),
		Options:          qd.Options,
		Factors:          qd.Factors,
		Enabled:          !qd.Disabled,
		SameForAllScopes: qd.SameForAllScopes,
	}
	if q.Type == "" {
		q.Type = project.QuestionText
	}
	sec, err := project.ParseSection(qd.Section)
	if err != nil {
		return q, err
	}
	q.Section = sec
	return q, Validate(q)
}

// Validate checks the fields every question needs.
func Validate(q project.Question) error {
	switch {
	case q.ID == "":
		return fmt.Errorf("%w: missing id", project.ErrInvalid)
	case q.Text == "":
		return fmt.Errorf("%w: question %q has no text", project.ErrInvalid, q.ID)
	case !q.Section.Valid():
		return fmt.Errorf("%w: question %q has no section", project.ErrInvalid, q.ID)
	}
	switch q.Type {
	case project.QuestionText:
	case project.QuestionDropdown:
		if len(q.Options) == 0 {
			return fmt.Errorf("%w: dropdown %q has no options", project.ErrInvalid, q.ID)
		}
	default:
		return fmt.Errorf("%w: question %q has unknown type %q", project.ErrInvalid, q.ID, q.Type)
	}
	return nil
}

// All returns the template questions in file order.
func (c *Catalog) All() []project.Question {
	out := make([]project.Question, len(c.questions))
	copy(out, c.questions)
	return out
}

// ForProject merges the project's overrides over the template by id.
// Overrides with an id the template does not know are appended.
func (c *Catalog) ForProject(p project.Project) []project.Question {
	overrides := make(map[string]project.Question, len(p.QuestionOverrides))
	for _, q := range p.QuestionOverrides {
		overrides[q.ID] = q
	}
	out := make([]project.Question, 0, len(c.questions)+len(p.QuestionOverrides))
	used := map[string]bool{}
	for _, q := range c.questions {
		if o, ok := overrides[q.ID]; ok {
			q = o
			used[q.ID] = true
		}
		out = append(out, q)
	}
	for _, o := range p.QuestionOverrides {
		if !used[o.ID] {
			out = append(out, o)
			used[o.ID] = true
		}
	}
	return out
}

// Enabled returns the project's enabled questions grouped by section.
func (c *Catalog) Enabled(p project.Project) map[project.Section][]project.Question {
	out := map[project.Section][]project.Question{}
	for _, q := range c.ForProject(p) {
		if q.Enabled {
			out[q.Section] = append(out[q.Section], q)
		}
	}
	return out
}

// Flatten lists grouped questions in section order.
func Flatten(bySection map[project.Section][]project.Question) []project.Question {
	var out []project.Question
	for _, s := range project.Sections {
		out = append(out, bySection[s]...)
	}
	return out
}

// SameForAllScopes reports whether the answer stored under key in section is
// mirrored into every scope for the given project.
func (c *Catalog) SameForAllScopes(p project.Project, section project.Section, key string) bool {
	for _, q := range c.ForProject(p) {
		if q.Section == section && q.Key() == key {
			return q.SameForAllScopes
		}
	}
	return false
}

// SetEnabled returns a project whose overrides enable or disable a question.
// Answers already recorded for the question are left in place.
func (c *Catalog) SetEnabled(p project.Project, id string, enabled bool) (project.Project, error) {
	for _, q := range c.ForProject(p) {
		if q.ID != id {
			continue
		}
		q.Enabled = enabled
		return c.Override(p, q)
	}
	return p, fmt.Errorf("question %s: %w", id, project.ErrNotFound)
}

// Override stores q as the project's version of the question with the same id.
func (c *Catalog) Override(p project.Project, q project.Question) (project.Project, error) {
	if err := Validate(q); err != nil {
		return p, err
	}
	next := p.Clone()
	for i, o := range next.QuestionOverrides {
		if o.ID == q.ID {
			next.QuestionOverrides[i] = q
			return next, nil
		}
	}
	next.QuestionOverrides = append(next.QuestionOverrides, q)
	return next, nil
}
