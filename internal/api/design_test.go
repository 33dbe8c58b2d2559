package api

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeSquared-Agency/mofasa/internal/project"
)

func TestSituationDesignRoutes(t *testing.T) {
	ts := newTestServer(t)
	projectID, pid := ts.seed(t)
	base := "/api/v1/projects/" + projectID + "/scopes/1"
	rule := url.PathEscape("Give way")

	w := ts.do(t, http.MethodPut, base+"/rules/"+rule+"/undesirable", undesirableRequest{Undesirable: true})
	assert.Equal(t, http.StatusNotFound, w.Code, "unknown rule")

	require.Equal(t, http.StatusCreated, ts.do(t, http.MethodPost, base+"/rules", ruleRequest{Rule: "Give way"}).Code)

	w = ts.do(t, http.MethodPut, base+"/rules/"+rule+"/undesirable", undesirableRequest{Undesirable: true})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []any{"Give way"}, decode[map[string]any](t, w)["undesirable_rules"])

	w = ts.do(t, http.MethodPut, base+"/rules/"+rule+"/redesign", textRequest{Text: "Add a warning light"})
	require.Equal(t, http.StatusOK, w.Code)

	w = ts.do(t, http.MethodPut, base+"/design", situationDesignRequest{RobotChanges: "Slower speed", EnvironmentalChanges: "Wider corridor"})
	require.Equal(t, http.StatusOK, w.Code)
	design := decode[project.SituationDesign](t, w)
	assert.Equal(t, "Slower speed", design.RobotChanges)
	assert.Equal(t, "Add a warning light", design.Decisions["Give way"])

	w = ts.do(t, http.MethodPut, base+"/participants/"+pid+"/decisions/"+rule, textRequest{Text: "It blocked the door"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "It blocked the door", decode[project.Participant](t, w).Decision["Give way"])

	w = ts.do(t, http.MethodDelete, base+"/rules/"+rule, nil)
	require.Equal(t, http.StatusOK, w.Code)

	p, err := ts.store.Get(context.Background(), projectID)
	require.NoError(t, err)
	sc := p.Scopes[0]
	assert.Empty(t, sc.UndesirableRules)
	assert.Empty(t, sc.SituationDesign.Decisions)
	assert.Empty(t, sc.Participants[0].Decision)
	assert.Equal(t, "Wider corridor", sc.SituationDesign.EnvironmentalChanges)
}

func TestRemoveParticipant(t *testing.T) {
	ts := newTestServer(t)
	projectID, pid := ts.seed(t)
	path := "/api/v1/projects/" + projectID + "/participants/" + pid

	w := ts.do(t, http.MethodDelete, path, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	p, err := ts.store.Get(context.Background(), projectID)
	require.NoError(t, err)
	assert.Empty(t, p.Scopes[0].Participants)

	w = ts.do(t, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOverrideQuestion(t *testing.T) {
	ts := newTestServer(t)
	projectID, _ := ts.seed(t)
	path := "/api/v1/projects/" + projectID + "/questions/location"

	w := ts.do(t, http.MethodPut, path, project.Question{
		Text:    "In which building did you meet the robot?",
		Type:    project.QuestionText,
		Section: project.Situation,
		Enabled: true,
	})
	require.Equal(t, http.StatusOK, w.Code)
	qs := decode[struct {
		Questions []project.Question `json:"questions"`
	}](t, w).Questions

	var found bool
	for _, q := range qs {
		if q.ID == "location" {
			found = true
			assert.Equal(t, "In which building did you meet the robot?", q.Text)
		}
	}
	assert.True(t, found)

	w = ts.do(t, http.MethodPut, path, project.Question{Text: "No type", Section: project.Situation})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
