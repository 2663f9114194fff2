package wizard

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aaxonlabs/agentforge/internal/api"
	"github.com/aaxonlabs/agentforge/internal/codegen"
	"github.com/aaxonlabs/agentforge/internal/decompose"
	"github.com/aaxonlabs/agentforge/internal/followup"
	"github.com/aaxonlabs/agentforge/internal/ingest"
	"github.com/aaxonlabs/agentforge/internal/skill"
	"github.com/aaxonlabs/agentforge/internal/state"
	"github.com/aaxonlabs/agentforge/pkg/models"
)

var (
	// ErrBlankObjective is returned when the objective is empty or whitespace.
	ErrBlankObjective = errors.New("objective cannot be blank")
	// ErrNothingProvided is returned when the follow-up stage is submitted
	// with no answer, file, or database config to work with.
	ErrNothingProvided = errors.New("provide at least one answer, file, or database configuration")
	// ErrWrongStage is returned when an action is dispatched outside its stage.
	ErrWrongStage = errors.New("action not available in the current stage")
	// ErrEditUnchanged is returned when an edit instruction produced no
	// change; the edit box stays open.
	ErrEditUnchanged = errors.New("edit produced no changes")
)

// Controller owns one wizard session and dispatches user actions against
// it. All transitions are explicit; nothing happens in the background.
// Persistence is best-effort: a failed write is logged and never fails the
// user action that triggered it.
type Controller struct {
	gen     api.Generator
	store   state.SnapshotStore
	logger  *DebugLogger
	session *models.Session
}

// New creates a controller with a fresh stage-1 session. store and logger
// may be nil.
func New(gen api.Generator, store state.SnapshotStore, logger *DebugLogger) *Controller {
	if logger == nil {
		logger = NopLogger()
	}
	return &Controller{
		gen:     gen,
		store:   store,
		logger:  logger,
		session: newSession(),
	}
}

func newSession() *models.Session {
	return &models.Session{
		ID:        uuid.NewString(),
		Stage:     models.StageObjective,
		CreatedAt: time.Now(),
	}
}

// Resume replaces the controller's session with a previously stored one.
func (c *Controller) Resume(s *models.Session) {
	if s == nil {
		return
	}
	if !s.Stage.Valid() {
		s.Stage = models.StageObjective
	}
	c.session = s
	c.logger.Log("resumed session %s at stage %d", s.ID, s.Stage)
}

// Session exposes the live session record for rendering.
func (c *Controller) Session() *models.Session {
	return c.session
}

// SubmitObjective handles the stage-1 submit: classifies the skill tier,
// generates the subtask list, and advances to the review stage. A blank
// objective leaves the stage unchanged.
func (c *Controller) SubmitObjective(ctx context.Context, objective, agentName string) error {
	if c.session.Stage != models.StageObjective {
		return ErrWrongStage
	}
	objective = strings.TrimSpace(objective)
	if objective == "" {
		return ErrBlankObjective
	}

	c.session.Objective = objective
	c.session.AgentName = strings.TrimSpace(agentName)

	tier, reason := skill.Classify(ctx, c.gen, objective)
	c.session.SkillLevel = tier
	c.session.SkillReason = reason
	c.logger.Log("session %s classified %s: %s", c.session.ID, tier, reason)

	c.session.Subtasks = decompose.Generate(ctx, c.gen, objective, c.session.Files)
	c.session.Stage = models.StageSubtasks
	c.session.Editing = false
	c.saveSnapshot()
	return nil
}

// StartEdit opens the edit pseudo-state within the subtasks stage.
func (c *Controller) StartEdit() error {
	if c.session.Stage != models.StageSubtasks {
		return ErrWrongStage
	}
	c.session.Editing = true
	return nil
}

// CancelEdit leaves the edit pseudo-state without changes.
func (c *Controller) CancelEdit() {
	c.session.Editing = false
}

// ApplyEdit runs the edit instruction against the current subtask list.
// A changed list closes the edit box; an unchanged one keeps it open and
// returns ErrEditUnchanged so the caller can show why.
func (c *Controller) ApplyEdit(ctx context.Context, instruction string) (decompose.EditOutcome, error) {
	if c.session.Stage != models.StageSubtasks {
		return decompose.EditRequestFailed, ErrWrongStage
	}

	updated, outcome := decompose.EditList(ctx, c.gen, c.session.Subtasks, instruction)
	if outcome == decompose.EditApplied {
		c.session.Subtasks = updated
		c.session.Editing = false
		c.saveSnapshot()
		c.logger.Log("session %s edit applied, %d subtasks", c.session.ID, len(updated))
		return outcome, nil
	}

	c.session.Editing = true
	c.logger.Log("session %s edit rejected: %s", c.session.ID, outcome)
	return outcome, ErrEditUnchanged
}

// Regenerate re-runs subtask generation from the stored objective and stays
// in the review stage.
func (c *Controller) Regenerate(ctx context.Context) error {
	if c.session.Stage != models.StageSubtasks {
		return ErrWrongStage
	}
	c.session.Subtasks = decompose.Generate(ctx, c.gen, c.session.Objective, c.session.Files)
	c.session.Editing = false
	c.saveSnapshot()
	return nil
}

// ContinueToFollowup advances to stage 3 and generates the clarifying
// questions. No validation beyond being in the review stage.
func (c *Controller) ContinueToFollowup(ctx context.Context) error {
	if c.session.Stage != models.StageSubtasks {
		return ErrWrongStage
	}
	c.session.Questions = followup.GenerateQuestions(ctx, c.gen, c.session.Objective, c.session.SkillLevel, c.session.Files)
	c.session.Answers = make(map[int]string, len(c.session.Questions))
	c.session.Stage = models.StageFollowup
	c.session.Editing = false
	c.saveSnapshot()
	return nil
}

// SetAnswer records the answer for a question index.
func (c *Controller) SetAnswer(index int, answer string) {
	if c.session.Answers == nil {
		c.session.Answers = make(map[int]string)
	}
	c.session.Answers[index] = answer
}

// AttachFile adds an uploaded file to the session.
func (c *Controller) AttachFile(f models.File) {
	c.session.Files = append(c.session.Files, f)
}

// AddDatabaseConfig records a user-declared database target.
func (c *Controller) AddDatabaseConfig(cfg models.DatabaseConfig) {
	c.session.DatabaseConfigs = append(c.session.DatabaseConfigs, cfg)
}

// SubmitAnswers handles the stage-3 submit. It requires at least one
// non-blank answer, one uploaded file, or one database config carrying a
// host, database, or path; otherwise the stage is left untouched. On
// success it computes the refined objective, persists the snapshot, and
// advances to the results stage.
func (c *Controller) SubmitAnswers(ctx context.Context) error {
	if c.session.Stage != models.StageFollowup {
		return ErrWrongStage
	}
	if !c.hasFollowupInput() {
		return ErrNothingProvided
	}

	c.session.RefinedObjective = followup.RefineObjective(
		ctx, c.gen,
		c.session.Objective,
		c.session.Questions,
		c.session.Answers,
		c.session.SkillLevel,
		c.session.Files,
	)

	c.session.Stage = models.StageResults
	c.saveSnapshot()
	c.saveFollowup()
	return nil
}

func (c *Controller) hasFollowupInput() bool {
	if len(c.session.NonBlankAnswers()) > 0 {
		return true
	}
	if len(c.session.Files) > 0 {
		return true
	}
	for _, cfg := range c.session.DatabaseConfigs {
		if strings.TrimSpace(cfg.Host) != "" ||
			strings.TrimSpace(cfg.Database) != "" ||
			strings.TrimSpace(cfg.Path) != "" {
			return true
		}
	}
	return false
}

// Back returns from the subtasks review to the objective stage. It is the
// only backward transition; later stages only move forward or reset.
func (c *Controller) Back() error {
	if c.session.Stage != models.StageSubtasks {
		return ErrWrongStage
	}
	c.session.Stage = models.StageObjective
	c.session.Editing = false
	return nil
}

// Results computes the stage-4 artifacts, caching each in the session so
// repeated renders cost nothing. The gateway is only consulted for the
// file-requirement analysis; code and explanation are pure templating.
func (c *Controller) Results(ctx context.Context) error {
	if c.session.Stage != models.StageResults {
		return ErrWrongStage
	}

	if c.session.FileAnalysis == nil {
		analysis := ingest.Analyze(ctx, c.gen, c.answersByQuestion(), c.session.Files)
		if analysis == nil {
			// Analysis degraded; fall back to filenames mentioned in the
			// goal and answers.
			analysis = codegen.CandidateFiles(c.goal(), c.answersByQuestion())
		}
		if analysis == nil {
			analysis = []string{}
		}
		c.session.FileAnalysis = analysis
	}
	if c.session.GeneratedCode == "" {
		c.session.GeneratedCode = codegen.Render(c.goal(), c.session.AgentName, c.session.Subtasks, c.answersBySubtask())
	}
	if c.session.Explanation == nil {
		c.session.Explanation = codegen.Explain(c.goal(), c.session.AgentName, c.session.Subtasks)
	}
	c.saveSnapshot()
	return nil
}

// ClearResults drops the cached stage-4 artifacts so the next Results call
// recomputes them.
func (c *Controller) ClearResults() {
	c.session.FileAnalysis = nil
	c.session.GeneratedCode = ""
	c.session.Explanation = nil
}

// Reset discards the session entirely and starts a fresh stage-1 session
// under a new ID.
func (c *Controller) Reset() {
	c.logger.Log("session %s reset", c.session.ID)
	c.session = newSession()
}

// goal is the objective used for templating: the refined objective when the
// follow-up stage produced one, else the original.
func (c *Controller) goal() string {
	if c.session.RefinedObjective != "" {
		return c.session.RefinedObjective
	}
	return c.session.Objective
}

// answersByQuestion keys non-blank answers by their question text for the
// file analysis prompt.
func (c *Controller) answersByQuestion() map[string]string {
	out := make(map[string]string)
	for i, a := range c.session.NonBlankAnswers() {
		if i >= 0 && i < len(c.session.Questions) {
			out[c.session.Questions[i]] = a
		}
	}
	return out
}

// answersBySubtask keys non-blank answers by subtask text positionally, so
// the templated step routines can look up their requirements. Answers past
// the subtask count are dropped.
func (c *Controller) answersBySubtask() map[string]string {
	out := make(map[string]string)
	for i, a := range c.session.NonBlankAnswers() {
		if i >= 0 && i < len(c.session.Subtasks) {
			out[c.session.Subtasks[i]] = a
		}
	}
	return out
}

func (c *Controller) saveSnapshot() {
	if c.store == nil {
		return
	}
	if err := c.store.SaveSnapshot(c.session); err != nil {
		c.logger.Log("session %s snapshot save failed: %v", c.session.ID, err)
	}
}

func (c *Controller) saveFollowup() {
	if c.store == nil {
		return
	}
	if err := c.store.SaveFollowup(c.session); err != nil {
		c.logger.Log("session %s followup save failed: %v", c.session.ID, err)
	}
	for _, f := range c.session.Files {
		if err := c.store.SaveUploadedFile(c.session.ID, f); err != nil {
			c.logger.Log("session %s file save failed for %s: %v", c.session.ID, f.Filename, err)
		}
	}
}
