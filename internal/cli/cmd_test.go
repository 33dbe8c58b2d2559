package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeSquared-Agency/mofasa/internal/anthropic"
	"github.com/MikeSquared-Agency/mofasa/internal/config"
	"github.com/MikeSquared-Agency/mofasa/internal/extractor"
	"github.com/MikeSquared-Agency/mofasa/internal/processor"
	"github.com/MikeSquared-Agency/mofasa/internal/project"
	"github.com/MikeSquared-Agency/mofasa/internal/questions"
	"github.com/MikeSquared-Agency/mofasa/internal/testutil"
)

// stubLLM answers every question with the same text.
type stubLLM struct{ answer string }

func (s stubLLM) Complete(_ context.Context, _ string, _ []anthropic.Message, _ int) (string, error) {
	var buf bytes.Buffer
	for i := 1; i <= 10; i++ {
		fmt.Fprintf(&buf, "%d. %s\n", i, s.answer)
	}
	return buf.String(), nil
}

func (s stubLLM) Stream(_ context.Context, _ string, _ []anthropic.Message, _ int, onDelta func(string)) (string, error) {
	onDelta("Summary of ")
	onDelta("the participant.")
	return "Summary of the participant.", nil
}

// testApp wires a full App backed by an in-memory DB for CLI tests.
func testApp(t *testing.T) *App {
	t.Helper()
	catalog, err := questions.Default()
	require.NoError(t, err)
	st := testutil.NewTestStore(t)
	logger := testutil.DiscardLogger()
	llm := stubLLM{answer: "Lab"}

	return &App{
		Config:  config.Config{BatchSize: 5},
		Store:   st,
		Catalog: catalog,
		Processor: processor.New(st, catalog,
			extractor.New(llm, 5, 0, logger),
			extractor.NewSummarizer(llm, 0, logger),
			nil, logger),
		Logger: logger,
	}
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func seedProject(t *testing.T, app *App) project.Project {
	t.Helper()
	_, err := executeCmd(t, app, "project", "create", "Hallway", "-d", "Robots in hallways")
	require.NoError(t, err)
	_, err = executeCmd(t, app, "project", "add-participant", "hallway", "Ana")
	require.NoError(t, err)
	p, err := resolveProject(context.Background(), app, "Hallway")
	require.NoError(t, err)
	return p
}

func TestRootCmd_NoArgs_ShowsHelp(t *testing.T) {
	output, err := executeCmd(t, testApp(t))
	require.NoError(t, err)
	assert.Contains(t, output, "mofasa")
}

func TestFactorsCmd_List(t *testing.T) {
	output, err := executeCmd(t, testApp(t), "factors", "--section", "decision")
	require.NoError(t, err)
	assert.Contains(t, output, "Outcome Evaluation")
	assert.NotContains(t, output, "Robot Appearance")
}

func TestFactorsCmd_Tag(t *testing.T) {
	output, err := executeCmd(t, testApp(t), "factors", "Culture and Trust mattered")
	require.NoError(t, err)
	assert.Equal(t, "Culture\nTrust\n", output)
}

func TestFactorsCmd_BadSection(t *testing.T) {
	_, err := executeCmd(t, testApp(t), "factors", "--section", "nope")
	assert.ErrorIs(t, err, project.ErrInvalid)
}

func TestProjectCmd_CreateListShow(t *testing.T) {
	app := testApp(t)
	seedProject(t, app)

	output, err := executeCmd(t, app, "project", "list")
	require.NoError(t, err)
	assert.Contains(t, output, "Hallway")

	output, err = executeCmd(t, app, "project", "show", "Hallway")
	require.NoError(t, err)
	assert.Contains(t, output, "Robots in hallways")
	assert.Contains(t, output, "- Ana")
}

func TestProjectCmd_UnknownProject(t *testing.T) {
	_, err := executeCmd(t, testApp(t), "project", "show", "missing")
	assert.ErrorIs(t, err, project.ErrNotFound)
}

func TestExtractCmd(t *testing.T) {
	app := testApp(t)
	p := seedProject(t, app)

	_, err := executeCmd(t, app, "extract", p.ID, "Ana", "-q")
	assert.ErrorIs(t, err, extractor.ErrEmptyTranscript)

	file := filepath.Join(t.TempDir(), "ana.txt")
	require.NoError(t, os.WriteFile(file, []byte("We met the robot in the lab."), 0o644))
	_, err = executeCmd(t, app, "project", "interview", "Hallway", "ana", "--file", file)
	require.NoError(t, err)

	output, err := executeCmd(t, app, "extract", "Hallway", "Ana", "--batch-size", "5")
	require.NoError(t, err)
	assert.Contains(t, output, "15/15 questions")
	assert.Contains(t, output, "batch extraction: 15 answers, 0 failed, 2 skipped")

	got, err := app.Store.Get(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Lab", got.Scopes[0].Participants[0].Answer(project.Situation, "Where did the encounter with the robot take place?"))

	_, err = executeCmd(t, app, "extract", "Hallway", "Ana", "--mode", "parallel")
	assert.Error(t, err)
}

func TestSummarizeCmd(t *testing.T) {
	app := testApp(t)
	p := seedProject(t, app)

	_, err := executeCmd(t, app, "summarize", "Hallway", "Ana")
	assert.ErrorIs(t, err, extractor.ErrNoAnswers)

	part := p.Scopes[0].Participants[0]
	_, err = app.Processor.SetAnswer(context.Background(), p.ID, 0, part.ID, project.Identity, "occupation", "Nurse")
	require.NoError(t, err)

	output, err := executeCmd(t, app, "summarize", "Hallway", "Ana")
	require.NoError(t, err)
	assert.Equal(t, "Summary of the participant.\n", output)
}

func TestTallyCmd(t *testing.T) {
	app := testApp(t)
	seedProject(t, app)

	output, err := executeCmd(t, app, "tally", "Hallway")
	require.NoError(t, err)
	assert.Contains(t, output, "no rules")

	for _, rule := range []string{"Give way", "Wave"} {
		_, err = executeCmd(t, app, "project", "add-rule", "Hallway", rule)
		require.NoError(t, err)
	}
	_, err = executeCmd(t, app, "project", "select-rules", "Hallway", "Ana", "Wave")
	require.NoError(t, err)

	output, err = executeCmd(t, app, "tally", "Hallway")
	require.NoError(t, err)
	assert.Contains(t, output, "Wave")
	assert.Contains(t, output, "1/1")
	assert.Contains(t, output, "0/1")

	_, err = executeCmd(t, app, "project", "delete-rule", "Hallway", "Wave")
	require.NoError(t, err)
	output, err = executeCmd(t, app, "tally", "Hallway")
	require.NoError(t, err)
	assert.NotContains(t, output, "Wave")

	_, err = executeCmd(t, app, "tally", "Hallway", "--scope", "3")
	assert.ErrorIs(t, err, project.ErrNotFound)
}

func TestProjectCmd_AddScopeCarriesRobotAnswers(t *testing.T) {
	app := testApp(t)
	p := seedProject(t, app)
	part := p.Scopes[0].Participants[0]

	_, err := app.Processor.SetAnswer(context.Background(), p.ID, 0, part.ID, project.Situation, "Which robot was used in the study?", "Pepper")
	require.NoError(t, err)

	output, err := executeCmd(t, app, "project", "add-scope", "Hallway", "Crowded corridor")
	require.NoError(t, err)
	assert.Contains(t, output, "Added scope 2")

	got, err := app.Store.Get(context.Background(), p.ID)
	require.NoError(t, err)
	require.Len(t, got.Scopes, 2)
	assert.Equal(t, "Pepper", got.Scopes[1].Participants[0].Answer(project.Situation, "Which robot was used in the study?"))
}
