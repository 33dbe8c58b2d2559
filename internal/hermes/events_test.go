package hermes

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExtractRequested(t *testing.T) {
	raw := `{
		"project_id": "proj-1",
		"scope": 1,
		"participant_id": "part-9",
		"mode": "individual"
	}`

	req, err := ParseExtractRequested([]byte(raw))
	require.NoError(t, err)
	assert.Equal(t, "proj-1", req.ProjectID)
	assert.Equal(t, 1, req.Scope)
	assert.Equal(t, "part-9", req.ParticipantID)
	assert.Equal(t, "individual", req.Mode)
	assert.Zero(t, req.BatchSize)
}

func TestParseExtractRequested_Invalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", `{`},
		{"missing project", `{"participant_id":"p"}`},
		{"missing participant", `{"project_id":"p"}`},
		{"negative scope", `{"project_id":"p","participant_id":"x","scope":-1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseExtractRequested([]byte(tt.raw))
			assert.Error(t, err)
		})
	}
}

func TestAnswersExtracted_FieldNames(t *testing.T) {
	ev := AnswersExtracted{
		ProjectID:     "proj-1",
		ParticipantID: "part-1",
		Mode:          "batch",
		Answers:       12,
		Failed:        2,
		ExtractedAt:   time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}
	data, err := json.Marshal(ev)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	assert.Equal(t, "proj-1", m["project_id"])
	assert.Equal(t, "part-1", m["participant_id"])
	assert.EqualValues(t, 12, m["answers"])
	assert.EqualValues(t, 2, m["failed"])
	assert.Equal(t, "2026-03-01T09:00:00Z", m["extracted_at"])
}
