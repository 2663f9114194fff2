package models

import (
	"strings"
	"time"
)

// Stage identifies one of the four sequential phases of the wizard.
type Stage int

const (
	// StageObjective collects the user's goal description.
	StageObjective Stage = 1
	// StageSubtasks reviews and edits the generated subtask list.
	StageSubtasks Stage = 2
	// StageFollowup collects clarifying answers, files and database configs.
	StageFollowup Stage = 3
	// StageResults presents the analysis, generated code and explanation.
	StageResults Stage = 4
)

// Valid returns true if the stage is a known value.
func (s Stage) Valid() bool {
	return s >= StageObjective && s <= StageResults
}

// FollowupQuestionCount is the fixed number of clarifying questions
// generated per session.
const FollowupQuestionCount = 5

// Session is the unit of work for one traversal of the wizard. It is owned
// and mutated by the workflow controller; every stage transition operates on
// this record and nothing else.
type Session struct {
	// ID is the opaque stable identifier created once per session.
	ID string `json:"session_id"`
	// Stage is the current wizard phase.
	Stage Stage `json:"stage"`
	// AgentName names the generated agent program.
	AgentName string `json:"agent_name"`
	// Objective is the user's original goal description.
	Objective string `json:"objective"`
	// RefinedObjective is the objective after folding in follow-up Q&A and
	// file context. Empty until the follow-up stage completes.
	RefinedObjective string `json:"refined_objective,omitempty"`
	// SkillLevel is the classified skill tier for the objective.
	SkillLevel SkillLevel `json:"skill_level"`
	// SkillReason is the classifier's justification.
	SkillReason string `json:"skill_reason,omitempty"`
	// Subtasks is the ordered implementation step list. Never empty once
	// Stage >= StageSubtasks.
	Subtasks []string `json:"subtasks"`
	// Questions holds the clarifying questions, exactly
	// FollowupQuestionCount entries once generated.
	Questions []string `json:"followup_questions,omitempty"`
	// Answers maps question index to the user's answer. Blank answers are
	// dropped before persistence.
	Answers map[int]string `json:"followup_answers,omitempty"`
	// Files are uploads collected during the wizard.
	Files []File `json:"uploaded_files,omitempty"`
	// DatabaseConfigs are user-declared database targets.
	DatabaseConfigs []DatabaseConfig `json:"database_configs,omitempty"`
	// FileAnalysis holds per-file analysis notes computed in the results stage.
	FileAnalysis []string `json:"file_analysis,omitempty"`
	// GeneratedCode is the rendered program text, cached after first render.
	GeneratedCode string `json:"generated_code,omitempty"`
	// Explanation maps named sections to prose, cached after first render.
	Explanation map[string]string `json:"code_explanation,omitempty"`
	// Editing marks the transient edit pseudo-state within the subtasks stage.
	Editing bool `json:"-"`
	// CreatedAt is when the session was created.
	CreatedAt time.Time `json:"created_at"`
}

// NonBlankAnswers returns the answers with blank or whitespace-only entries
// dropped, keyed by question index.
func (s *Session) NonBlankAnswers() map[int]string {
	out := make(map[int]string)
	for i, a := range s.Answers {
		if strings.TrimSpace(a) != "" {
			out[i] = a
		}
	}
	return out
}

// CompleteDatabaseConfigs returns the database configs that carry enough
// fields to attempt a connection.
func (s *Session) CompleteDatabaseConfigs() []DatabaseConfig {
	var out []DatabaseConfig
	for _, c := range s.DatabaseConfigs {
		if c.Complete() {
			out = append(out, c)
		}
	}
	return out
}

// QuestionFiles returns the uploads attached to a specific question index.
func (s *Session) QuestionFiles(idx int) []File {
	var out []File
	for _, f := range s.Files {
		if f.QuestionIndex == idx {
			out = append(out, f)
		}
	}
	return out
}
