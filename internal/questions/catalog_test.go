package questions

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/MikeSquared-Agency/mofasa/internal/factors"
	"github.com/MikeSquared-Agency/mofasa/internal/project"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_ParsesSeed(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	all := c.All()
	require.NotEmpty(t, all)
	assert.Equal(t, "robot-model", all[0].ID)
	assert.True(t, all[0].SameForAllScopes)

	for _, q := range all {
		assert.True(t, q.Enabled, q.ID)
		assert.NoError(t, Validate(q))
	}
}

func TestDefault_FactorsResolveAgainstRegistry(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)
	tg := factors.NewTagger(factors.Default())

	for _, q := range c.All() {
		names := tg.Parse(q.Factors)
		require.NotEmpty(t, names, q.ID)
		for _, n := range names {
			_, ok := factors.Default().Get(n)
			assert.True(t, ok, "question %s references unknown factor %q", q.ID, n)
		}
	}
}

func TestParse_Errors(t *testing.T) {
	cases := map[string]string{
		"bad yaml":      "questions: [",
		"no section":    "questions:\n  - id: a\n    text: A?\n",
		"no text":       "questions:\n  - id: a\n    section: Identity\n",
		"empty options": "questions:\n  - id: a\n    text: A?\n    section: Identity\n    type: dropdown\n",
		"bad type":      "questions:\n  - id: a\n    text: A?\n    section: Identity\n    type: slider\n",
		"duplicate id":  "questions:\n  - id: a\n    text: A?\n    section: Identity\n  - id: a\n    text: B?\n    section: Identity\n",
	}
	for name, doc := range cases {
		_, err := Parse([]byte(doc))
		assert.Error(t, err, name)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "questions.yaml")
	doc := "questions:\n  - id: q1\n    section: Decision\n    text: Why?\n    disabled: true\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	require.Len(t, c.All(), 1)
	q := c.All()[0]
	assert.Equal(t, project.Decision, q.Section)
	assert.Equal(t, project.QuestionText, q.Type)
	assert.False(t, q.Enabled)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestEnabled_AppliesOverrides(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)
	p, err := project.New("Study", "")
	require.NoError(t, err)

	p, err = c.SetEnabled(p, "gender", false)
	require.NoError(t, err)
	p, err = c.Override(p, project.Question{
		ID: "custom-1", Text: "Did the robot speak?", Type: project.QuestionText,
		Section: project.Situation, Enabled: true,
	})
	require.NoError(t, err)

	enabled := c.Enabled(p)
	for _, q := range enabled[project.Identity] {
		assert.NotEqual(t, "gender", q.ID)
	}
	situation := enabled[project.Situation]
	assert.Equal(t, "custom-1", situation[len(situation)-1].ID)

	flat := Flatten(enabled)
	assert.Equal(t, project.Situation, flat[0].Section)
	assert.Equal(t, project.Decision, flat[len(flat)-1].Section)

	// Re-enabling replaces the existing override instead of adding another.
	p, err = c.SetEnabled(p, "gender", true)
	require.NoError(t, err)
	assert.Len(t, p.QuestionOverrides, 2)

	_, err = c.SetEnabled(p, "nope", true)
	assert.ErrorIs(t, err, project.ErrNotFound)
}

func TestSameForAllScopes(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)
	p, err := project.New("Study", "")
	require.NoError(t, err)

	assert.True(t, c.SameForAllScopes(p, project.Situation, "Which robot was used in the study?"))
	assert.False(t, c.SameForAllScopes(p, project.Situation, "Where did the encounter with the robot take place?"))
	// Dropdowns are keyed by id.
	assert.False(t, c.SameForAllScopes(p, project.Identity, "gender"))
	assert.False(t, c.SameForAllScopes(p, project.Identity, "unknown"))
}
