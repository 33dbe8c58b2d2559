package factors

import (
	"slices"
	"strings"

	"github.com/MikeSquared-Agency/mofasa/internal/project"
)

// Factor is an analytic tag from the MoFASA taxonomy.
type Factor struct {
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	Examples       []string        `json:"examples"`
	RelatedFactors []string        `json:"related_factors"`
	Section        project.Section `json:"section"`
}

// Registry is a read-only lookup over a fixed factor table.
type Registry struct {
	factors []Factor
	byName  map[string]int
}

// NewRegistry builds a registry from a table. Later entries with a name
// already seen (case-insensitively) are ignored.
func NewRegistry(table []Factor) *Registry {
	r := &Registry{byName: make(map[string]int, len(table))}
	for _, f := range table {
		key := strings.ToLower(strings.TrimSpace(f.Name))
		if key == "" {
			continue
		}
		if _, dup := r.byName[key]; dup {
			continue
		}
		r.byName[key] = len(r.factors)
		r.factors = append(r.factors, clone(f))
	}
	return r
}

var defaultRegistry = NewRegistry(table)

// Default returns the built-in MoFASA factor registry.
func Default() *Registry { return defaultRegistry }

// Get looks up a factor by name, case-insensitively.
func (r *Registry) Get(name string) (Factor, bool) {
	i, ok := r.byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Factor{}, false
	}
	return clone(r.factors[i]), true
}

// All returns every factor in table order.
func (r *Registry) All() []Factor {
	out := make([]Factor, len(r.factors))
	for i, f := range r.factors {
		out[i] = clone(f)
	}
	return out
}

// BySection returns the factors owned by a section, in table order.
func (r *Registry) BySection(s project.Section) []Factor {
	var out []Factor
	for _, f := range r.factors {
		if f.Section == s {
			out = append(out, clone(f))
		}
	}
	return out
}

// Len reports the number of factors.
func (r *Registry) Len() int { return len(r.factors) }

func clone(f Factor) Factor {
	f.Examples = slices.Clone(f.Examples)
	f.RelatedFactors = slices.Clone(f.RelatedFactors)
	return f
}
