package factors

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/MikeSquared-Agency/mofasa/internal/project"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Get(t *testing.T) {
	r := Default()

	f, ok := r.Get("trust")
	require.True(t, ok)
	assert.Equal(t, "Trust", f.Name)
	assert.Equal(t, project.DefinitionOfSituation, f.Section)

	_, ok = r.Get("Not A Factor")
	assert.False(t, ok)
}

func TestRegistry_AllKeepsTableOrder(t *testing.T) {
	all := Default().All()
	require.Len(t, all, len(table))
	for i := range table {
		assert.Equal(t, table[i].Name, all[i].Name)
	}
}

func TestRegistry_BySection(t *testing.T) {
	r := Default()
	total := 0
	for _, s := range project.Sections {
		fs := r.BySection(s)
		assert.NotEmpty(t, fs, s.String())
		for _, f := range fs {
			assert.Equal(t, s, f.Section)
		}
		total += len(fs)
	}
	assert.Equal(t, r.Len(), total)
}

func TestRegistry_ReturnsCopies(t *testing.T) {
	r := Default()
	f, _ := r.Get("Trust")
	f.Examples[0] = "mutated"
	f.RelatedFactors = nil

	again, _ := r.Get("Trust")
	assert.NotEqual(t, "mutated", again.Examples[0])
	assert.NotEmpty(t, again.RelatedFactors)
}

func TestNewRegistry_IgnoresDuplicateNames(t *testing.T) {
	r := NewRegistry([]Factor{
		{Name: "Noise", Section: project.Situation},
		{Name: "noise", Section: project.Decision},
		{Name: "  "},
	})
	assert.Equal(t, 1, r.Len())
	f, ok := r.Get("NOISE")
	require.True(t, ok)
	assert.Equal(t, project.Situation, f.Section)
}

func TestParseFactors_Empty(t *testing.T) {
	assert.Equal(t, []string{}, ParseFactors(""))
	assert.Equal(t, []string{}, ParseFactors("   "))
}

func TestParseFactors_ListIdentity(t *testing.T) {
	in := []string{"Trust", "anything at all"}
	assert.Equal(t, in, ParseList(in))
}

func TestParseFactors_CommaList(t *testing.T) {
	got := ParseFactors("Robot Behavior, Environment, Trust")
	assert.Equal(t, []string{"Robot Behavior", "Environment", "Trust"}, got)
}

func TestParseFactors_Prose(t *testing.T) {
	got := ParseFactors("This question probes social norms and whether the presence of others changed the robot behavior.")
	assert.Equal(t, []string{"Social Norms", "Presence of Others", "Robot Behavior"}, got)
}

func TestParseFactors_FallbackToCommaSplit(t *testing.T) {
	assert.Equal(t, []string{"Foo", "Bar", "Baz"}, ParseFactors("Foo, Bar, Baz"))
	assert.Equal(t, []string{"Foo", "Bar"}, ParseFactors(" Foo ,, Bar , "))
	assert.Equal(t, []string{"just some words"}, ParseFactors("  just some words "))
}

func TestParseFactors_WholeWordOnly(t *testing.T) {
	assert.Equal(t, []string{"Timezone issues"}, ParseFactors("Timezone issues"))
	assert.Equal(t, []string{"Trustworthiness"}, ParseFactors("Trustworthiness"))
	// "Robot" alone is not a factor; only the full name matches.
	assert.Equal(t, []string{"Robot Appearance"}, ParseFactors("Robot Appearance and Behavior"))
}

func TestParseFactors_PrefersLongerMatchAtSameStart(t *testing.T) {
	got := ParseFactors("Prior Experience with Robots, Trust")
	assert.Equal(t, []string{"Prior Experience with Robots", "Trust"}, got)

	got = ParseFactors("Prior Experience, Trust")
	assert.Equal(t, []string{"Prior Experience", "Trust"}, got)
}

func TestParseFactors_RepeatedNameIsKept(t *testing.T) {
	got := ParseFactors("Trust early on, and trust again at the end")
	assert.Equal(t, []string{"Trust", "Trust"}, got)
}

func TestTagger_SpansNeverOverlap(t *testing.T) {
	tg := NewTagger(Default())
	inputs := []string{
		"Prior Experience with Robots and Prior Experience",
		"Time, Task, Timezone, Robot Behavior, Robot Appearance",
		"rule conflict between habit and rule salience under time pressure",
		strings.Repeat("Trust ", 20),
	}
	for _, in := range inputs {
		spans := tg.Spans(in)
		for i := range spans {
			for j := range spans {
				if i == j {
					continue
				}
				a, b := spans[i], spans[j]
				assert.True(t, a.End <= b.Start || b.End <= a.Start, "%q: %+v overlaps %+v", in, a, b)
			}
		}
	}
}

func TestTagger_Idempotent(t *testing.T) {
	names := make([]string, 0, len(table))
	for _, f := range table {
		names = append(names, f.Name)
	}
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		n := 1 + rng.Intn(5)
		pick := make([]string, n)
		for j := range pick {
			pick[j] = names[rng.Intn(len(names))]
		}
		in := strings.Join(pick, ", ")

		first := ParseFactors(in)
		second := ParseFactors(strings.Join(first, ", "))
		assert.ElementsMatch(t, first, second, in)
		assert.Equal(t, pick, first, in)
	}
}

func TestTagger_Resolve(t *testing.T) {
	tg := NewTagger(Default())
	got := tg.Resolve("trust, Unknown Thing, Habit")
	require.Len(t, got, 2)
	assert.Equal(t, "Trust", got[0].Name)
	assert.Equal(t, "Habit", got[1].Name)
}
