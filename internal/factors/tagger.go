package factors

import (
	"regexp"
	"sort"
	"strings"
)

// Span is a factor name matched at text[Start:End].
type Span struct {
	Start int
	End   int
	Name  string
}

func (s Span) overlaps(o Span) bool {
	return s.Start < o.End && o.Start < s.End
}

type pattern struct {
	name string
	re   *regexp.Regexp
}

// Tagger finds registry factor names inside free text.
type Tagger struct {
	registry *Registry
	patterns []pattern
}

// NewTagger compiles a whole-word, case-insensitive pattern per factor.
func NewTagger(r *Registry) *Tagger {
	t := &Tagger{registry: r}
	for _, f := range r.factors {
		t.patterns = append(t.patterns, pattern{
			name: f.Name,
			re:   regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(f.Name) + `\b`),
		})
	}
	return t
}

var defaultTagger = NewTagger(defaultRegistry)

// DefaultTagger returns the tagger over the built-in factor table.
func DefaultTagger() *Tagger { return defaultTagger }

// ParseFactors tags text with the default registry.
func ParseFactors(text string) []string { return defaultTagger.Parse(text) }

// ParseList is the already-a-list case: the input is returned unchanged.
func ParseList(list []string) []string { return list }

// Spans returns the kept, non-overlapping matches in keep order. Matches are
// ordered by start; on equal starts the longer match wins.
func (t *Tagger) Spans(text string) []Span {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	var all []Span
	for _, p := range t.patterns {
		for _, loc := range p.re.FindAllStringIndex(text, -1) {
			all = append(all, Span{Start: loc[0], End: loc[1], Name: p.name})
		}
	}
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].Start != all[j].Start {
			return all[i].Start < all[j].Start
		}
		return all[i].End > all[j].End
	})

	var kept []Span
	for _, m := range all {
		clash := false
		for _, k := range kept {
			if m.overlaps(k) {
				clash = true
				break
			}
		}
		if !clash {
			kept = append(kept, m)
		}
	}
	return kept
}

// Parse returns the factor names mentioned in text, left to right. A name
// that appears twice in separate places is reported twice. When no known
// factor is found the text is treated as a comma-separated list.
func (t *Tagger) Parse(text string) []string {
	if strings.TrimSpace(text) == "" {
		return []string{}
	}
	spans := t.Spans(text)
	if len(spans) == 0 {
		return splitList(text)
	}
	names := make([]string, len(spans))
	for i, s := range spans {
		names[i] = s.Name
	}
	return names
}

// Resolve maps the tagged names of text to registry records, skipping names
// that came from the comma fallback and are not in the registry.
func (t *Tagger) Resolve(text string) []Factor {
	var out []Factor
	for _, name := range t.Parse(text) {
		if f, ok := t.registry.Get(name); ok {
			out = append(out, f)
		}
	}
	return out
}

func splitList(text string) []string {
	out := []string{}
	for _, piece := range strings.Split(text, ",") {
		if piece = strings.TrimSpace(piece); piece != "" {
			out = append(out, piece)
		}
	}
	return out
}
