package wizard

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aaxonlabs/agentforge/internal/decompose"
	"github.com/aaxonlabs/agentforge/internal/state"
	"github.com/aaxonlabs/agentforge/pkg/models"
)

// scriptedGenerator pops canned responses in order, recording every prompt.
type scriptedGenerator struct {
	responses []string
	calls     int
	prompts   []string
}

func (g *scriptedGenerator) Generate(_ context.Context, prompt string, _ int64, _ float64) (string, error) {
	g.calls++
	g.prompts = append(g.prompts, prompt)
	if len(g.responses) == 0 {
		return "", errors.New("script exhausted")
	}
	r := g.responses[0]
	g.responses = g.responses[1:]
	return r, nil
}

const classifyResponse = `{"skill_level": "intermediate", "reason": "specific functional needs"}`

const fourSubtasks = `1. Parse invoice files into structured records
2. Validate vendor and amount fields
3. Store validated invoices in the tracker
4. Produce the summary report`

const threeSubtasks = `1. Parse invoice files into structured records
2. Store validated invoices in the tracker
3. Produce the summary report`

const fiveQuestions = `1. What file formats do your invoices arrive in?
2. Which vendor fields matter most for tracking?
3. How should duplicate invoices be handled?
4. What does the summary report need to contain?
5. Where should the tracker store its data?`

func TestWizardEndToEnd(t *testing.T) {
	gen := &scriptedGenerator{responses: []string{
		classifyResponse,
		fourSubtasks,
		threeSubtasks,
		fiveQuestions,
		"Build an invoice tracker that records vendor and amount for every invoice.",
		"vendor and amount fields found",
	}}
	c := New(gen, nil, nil)
	ctx := context.Background()

	if err := c.SubmitObjective(ctx, "Build an invoice tracker", "InvoiceAgent"); err != nil {
		t.Fatalf("submit objective: %v", err)
	}
	s := c.Session()
	if s.Stage != models.StageSubtasks {
		t.Fatalf("stage = %d, want %d", s.Stage, models.StageSubtasks)
	}
	if len(s.Subtasks) != 4 {
		t.Fatalf("got %d subtasks, want 4", len(s.Subtasks))
	}
	if s.SkillLevel != models.SkillIntermediate {
		t.Errorf("skill = %q", s.SkillLevel)
	}

	outcome, err := c.ApplyEdit(ctx, "Remove step 2")
	if err != nil {
		t.Fatalf("apply edit: %v", err)
	}
	if outcome != decompose.EditApplied {
		t.Fatalf("outcome = %v, want applied", outcome)
	}
	if s.Stage != models.StageSubtasks {
		t.Errorf("stage changed on edit: %d", s.Stage)
	}
	if len(s.Subtasks) != 3 {
		t.Fatalf("got %d subtasks after remove, want 3", len(s.Subtasks))
	}
	if s.Editing {
		t.Error("editing still open after successful edit")
	}

	if err := c.ContinueToFollowup(ctx); err != nil {
		t.Fatalf("continue: %v", err)
	}
	if len(s.Questions) != models.FollowupQuestionCount {
		t.Fatalf("got %d questions, want %d", len(s.Questions), models.FollowupQuestionCount)
	}

	c.SetAnswer(0, "Track vendor and amount")
	c.SetAnswer(1, "   ")
	callsBeforeSubmit := gen.calls
	if err := c.SubmitAnswers(ctx); err != nil {
		t.Fatalf("submit answers: %v", err)
	}
	if gen.calls != callsBeforeSubmit+1 {
		t.Errorf("refine made %d calls, want exactly 1", gen.calls-callsBeforeSubmit)
	}
	if s.RefinedObjective == "" {
		t.Error("refined objective not set")
	}
	if s.Stage != models.StageResults {
		t.Fatalf("stage = %d, want %d", s.Stage, models.StageResults)
	}

	if err := c.Results(ctx); err != nil {
		t.Fatalf("results: %v", err)
	}
	if !strings.Contains(s.GeneratedCode, "def agent_step_3") {
		t.Error("program missing step 3")
	}
	if strings.Contains(s.GeneratedCode, "def agent_step_4") {
		t.Error("program has a fourth step after the remove edit")
	}
	if !strings.Contains(s.GeneratedCode, `wf.add_edge("step_3", END)`) {
		t.Error("program missing terminal edge at step 3")
	}
	if len(s.Explanation) != 6 {
		t.Errorf("got %d explanation sections, want 6", len(s.Explanation))
	}

	// Cached: a second render makes no further gateway calls.
	callsAfter := gen.calls
	if err := c.Results(ctx); err != nil {
		t.Fatal(err)
	}
	if gen.calls != callsAfter {
		t.Errorf("second Results call hit the gateway %d more times", gen.calls-callsAfter)
	}
}

func TestSubmitObjectiveBlank(t *testing.T) {
	c := New(&scriptedGenerator{}, nil, nil)
	for _, objective := range []string{"", "   ", "\n\t"} {
		if err := c.SubmitObjective(context.Background(), objective, ""); !errors.Is(err, ErrBlankObjective) {
			t.Errorf("objective %q: err = %v, want ErrBlankObjective", objective, err)
		}
		if c.Session().Stage != models.StageObjective {
			t.Errorf("objective %q advanced the stage", objective)
		}
	}
}

func TestApplyEditUnchangedKeepsEditing(t *testing.T) {
	gen := &scriptedGenerator{responses: []string{
		classifyResponse,
		fourSubtasks,
		fourSubtasks, // remove instruction that removes nothing
	}}
	c := New(gen, nil, nil)
	ctx := context.Background()

	if err := c.SubmitObjective(ctx, "Build an invoice tracker", ""); err != nil {
		t.Fatal(err)
	}
	outcome, err := c.ApplyEdit(ctx, "Remove the reporting step")
	if !errors.Is(err, ErrEditUnchanged) {
		t.Fatalf("err = %v, want ErrEditUnchanged", err)
	}
	if outcome != decompose.EditRemoveBlocked {
		t.Errorf("outcome = %v, want remove blocked", outcome)
	}
	if !c.Session().Editing {
		t.Error("editing closed after a rejected edit")
	}
	if len(c.Session().Subtasks) != 4 {
		t.Errorf("subtasks mutated: %d", len(c.Session().Subtasks))
	}
}

func TestSubmitAnswersRequiresInput(t *testing.T) {
	gen := &scriptedGenerator{responses: []string{
		classifyResponse,
		fourSubtasks,
		fiveQuestions,
	}}
	c := New(gen, nil, nil)
	ctx := context.Background()

	if err := c.SubmitObjective(ctx, "Build an invoice tracker", ""); err != nil {
		t.Fatal(err)
	}
	if err := c.ContinueToFollowup(ctx); err != nil {
		t.Fatal(err)
	}

	c.SetAnswer(0, "   ")
	if err := c.SubmitAnswers(ctx); !errors.Is(err, ErrNothingProvided) {
		t.Fatalf("err = %v, want ErrNothingProvided", err)
	}
	if c.Session().Stage != models.StageFollowup {
		t.Error("stage advanced with nothing provided")
	}
	if c.Session().RefinedObjective != "" {
		t.Error("refined objective set with nothing provided")
	}

	// A database config with a host is enough on its own.
	c.AddDatabaseConfig(models.DatabaseConfig{Kind: models.DatabaseMySQL, Host: "db.example.com"})
	if err := c.SubmitAnswers(ctx); err != nil {
		t.Fatalf("submit with db config: %v", err)
	}
	if c.Session().Stage != models.StageResults {
		t.Errorf("stage = %d, want results", c.Session().Stage)
	}
	// No non-blank answers: refinement skips the gateway, objective stands.
	if c.Session().RefinedObjective != "Build an invoice tracker" {
		t.Errorf("refined objective = %q", c.Session().RefinedObjective)
	}
}

func TestSubmitAnswersFileIsEnough(t *testing.T) {
	gen := &scriptedGenerator{responses: []string{
		classifyResponse,
		fourSubtasks,
		fiveQuestions,
	}}
	c := New(gen, nil, nil)
	ctx := context.Background()

	if err := c.SubmitObjective(ctx, "Build an invoice tracker", ""); err != nil {
		t.Fatal(err)
	}
	if err := c.ContinueToFollowup(ctx); err != nil {
		t.Fatal(err)
	}
	c.AttachFile(models.File{Filename: "invoices.csv", QuestionIndex: 0})
	if err := c.SubmitAnswers(ctx); err != nil {
		t.Fatalf("submit with file: %v", err)
	}
}

func TestBackOnlyFromSubtasks(t *testing.T) {
	gen := &scriptedGenerator{responses: []string{classifyResponse, fourSubtasks}}
	c := New(gen, nil, nil)
	ctx := context.Background()

	if err := c.Back(); !errors.Is(err, ErrWrongStage) {
		t.Errorf("back from stage 1: err = %v, want ErrWrongStage", err)
	}

	if err := c.SubmitObjective(ctx, "Build an invoice tracker", ""); err != nil {
		t.Fatal(err)
	}
	if err := c.Back(); err != nil {
		t.Fatalf("back from stage 2: %v", err)
	}
	if c.Session().Stage != models.StageObjective {
		t.Errorf("stage = %d, want objective", c.Session().Stage)
	}
}

func TestRegenerateStaysInReview(t *testing.T) {
	gen := &scriptedGenerator{responses: []string{
		classifyResponse,
		fourSubtasks,
		threeSubtasks,
	}}
	c := New(gen, nil, nil)
	ctx := context.Background()

	if err := c.SubmitObjective(ctx, "Build an invoice tracker", ""); err != nil {
		t.Fatal(err)
	}
	if err := c.Regenerate(ctx); err != nil {
		t.Fatal(err)
	}
	if c.Session().Stage != models.StageSubtasks {
		t.Errorf("stage = %d, want subtasks", c.Session().Stage)
	}
	if len(c.Session().Subtasks) != 3 {
		t.Errorf("got %d subtasks after regenerate, want 3", len(c.Session().Subtasks))
	}
}

func TestResetStartsFreshSession(t *testing.T) {
	gen := &scriptedGenerator{responses: []string{classifyResponse, fourSubtasks}}
	c := New(gen, nil, nil)

	if err := c.SubmitObjective(context.Background(), "Build an invoice tracker", "InvoiceAgent"); err != nil {
		t.Fatal(err)
	}
	oldID := c.Session().ID

	c.Reset()
	s := c.Session()
	if s.ID == oldID {
		t.Error("reset kept the old session ID")
	}
	if s.Stage != models.StageObjective {
		t.Errorf("stage = %d, want objective", s.Stage)
	}
	if s.Objective != "" || len(s.Subtasks) != 0 {
		t.Error("reset kept session content")
	}
}

func TestPersistenceFailureDoesNotBlock(t *testing.T) {
	gen := &scriptedGenerator{responses: []string{classifyResponse, fourSubtasks}}
	// A store whose database is already closed fails every write.
	db, err := state.Open(filepath.Join(t.TempDir(), "closed.db"))
	if err != nil {
		t.Fatal(err)
	}
	if err := db.Migrate(); err != nil {
		t.Fatal(err)
	}
	db.Close()

	c := New(gen, db, nil)
	if err := c.SubmitObjective(context.Background(), "Build an invoice tracker", ""); err != nil {
		t.Fatalf("user action failed on persistence error: %v", err)
	}
	if c.Session().Stage != models.StageSubtasks {
		t.Error("stage did not advance despite persistence failure")
	}
}

func TestSnapshotPersistedOnTransitions(t *testing.T) {
	gen := &scriptedGenerator{responses: []string{
		classifyResponse,
		fourSubtasks,
		fiveQuestions,
	}}
	db, err := state.Open(filepath.Join(t.TempDir(), "wizard.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	if err := db.Migrate(); err != nil {
		t.Fatal(err)
	}

	c := New(gen, db, nil)
	ctx := context.Background()
	if err := c.SubmitObjective(ctx, "Build an invoice tracker", "InvoiceAgent"); err != nil {
		t.Fatal(err)
	}
	if err := c.ContinueToFollowup(ctx); err != nil {
		t.Fatal(err)
	}
	c.SetAnswer(0, "Track vendor and amount")
	if err := c.SubmitAnswers(ctx); err != nil {
		t.Fatal(err)
	}

	loaded, err := db.LoadSession(c.Session().ID)
	if err != nil {
		t.Fatal(err)
	}
	if loaded == nil {
		t.Fatal("session not persisted")
	}
	if loaded.Stage != models.StageResults {
		t.Errorf("persisted stage = %d, want results", loaded.Stage)
	}
	if loaded.Answers[0] != "Track vendor and amount" {
		t.Errorf("persisted answer = %q", loaded.Answers[0])
	}
}
