package state

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aaxonlabs/agentforge/pkg/models"
)

// SessionSummary is the listing row for stored sessions.
type SessionSummary struct {
	SessionID string    `json:"session_id"`
	Stage     int       `json:"stage"`
	AgentName string    `json:"agent_name"`
	Goal      string    `json:"goal"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SaveSnapshot writes the session's main record, keyed by session ID with
// insert-or-replace semantics. Subtasks are stored as JSON.
func (db *DB) SaveSnapshot(s *models.Session) error {
	subtasks, err := json.Marshal(s.Subtasks)
	if err != nil {
		return fmt.Errorf("marshal subtasks: %w", err)
	}

	now := formatTime(time.Now())
	created := s.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}

	_, err = db.Exec(`
		INSERT OR REPLACE INTO main_sessions
		(session_id, stage, agent_name, goal, refined_goal, subtasks, skill_level, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, s.ID, s.Stage, s.AgentName, s.Objective, s.RefinedObjective, string(subtasks), string(s.SkillLevel), formatTime(created), now)
	if err != nil {
		return fmt.Errorf("save session snapshot: %w", err)
	}
	return nil
}

// SaveFollowup writes the follow-up snapshot (questions, answers, refined
// objective) keyed by session ID with insert-or-replace semantics.
func (db *DB) SaveFollowup(s *models.Session) error {
	questions, err := json.Marshal(s.Questions)
	if err != nil {
		return fmt.Errorf("marshal questions: %w", err)
	}
	answers, err := json.Marshal(s.Answers)
	if err != nil {
		return fmt.Errorf("marshal answers: %w", err)
	}

	_, err = db.Exec(`
		INSERT OR REPLACE INTO followup_sessions
		(session_id, objective, skill_level, questions, answers, refined_objective)
		VALUES (?, ?, ?, ?, ?, ?)
	`, s.ID, s.Objective, string(s.SkillLevel), string(questions), string(answers), s.RefinedObjective)
	if err != nil {
		return fmt.Errorf("save followup session: %w", err)
	}
	return nil
}

// SaveUploadedFile appends a file record for the session. Extracted content
// is already capped by the ingest layer; the cap is re-applied here so a
// caller constructing files by hand cannot blow up the row.
func (db *DB) SaveUploadedFile(sessionID string, f models.File) error {
	content := models.TruncateText(f.ExtractedText, models.MaxExtractedChars)

	_, err := db.Exec(`
		INSERT INTO uploaded_files (session_id, filename, file_type, file_size, file_content)
		VALUES (?, ?, ?, ?, ?)
	`, sessionID, f.Filename, f.MIMEType, f.SizeBytes, content)
	if err != nil {
		return fmt.Errorf("save uploaded file: %w", err)
	}
	return nil
}

// LoadSession reconstructs a session from its stored records. Returns
// (nil, nil) when no session with the ID exists.
func (db *DB) LoadSession(id string) (*models.Session, error) {
	row := db.QueryRow(`
		SELECT session_id, stage, agent_name, goal, refined_goal, subtasks, skill_level, created_at
		FROM main_sessions WHERE session_id = ?
	`, id)

	var s models.Session
	var subtasks, createdAt string
	var skill string
	err := row.Scan(&s.ID, &s.Stage, &s.AgentName, &s.Objective, &s.RefinedObjective, &subtasks, &skill, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	if subtasks != "" {
		if err := json.Unmarshal([]byte(subtasks), &s.Subtasks); err != nil {
			return nil, fmt.Errorf("unmarshal subtasks: %w", err)
		}
	}
	s.SkillLevel = models.ParseSkillLevel(skill)
	s.CreatedAt, _ = parseTime(createdAt)

	if err := db.loadFollowup(&s); err != nil {
		return nil, err
	}
	if err := db.loadFiles(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (db *DB) loadFollowup(s *models.Session) error {
	row := db.QueryRow(`
		SELECT questions, answers FROM followup_sessions WHERE session_id = ?
	`, s.ID)

	var questions, answers sql.NullString
	err := row.Scan(&questions, &answers)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load followup session: %w", err)
	}

	if questions.Valid && questions.String != "" {
		if err := json.Unmarshal([]byte(questions.String), &s.Questions); err != nil {
			return fmt.Errorf("unmarshal questions: %w", err)
		}
	}
	if answers.Valid && answers.String != "" {
		if err := json.Unmarshal([]byte(answers.String), &s.Answers); err != nil {
			return fmt.Errorf("unmarshal answers: %w", err)
		}
	}
	return nil
}

func (db *DB) loadFiles(s *models.Session) error {
	rows, err := db.Query(`
		SELECT filename, file_type, file_size, file_content
		FROM uploaded_files WHERE session_id = ? ORDER BY id
	`, s.ID)
	if err != nil {
		return fmt.Errorf("load uploaded files: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var f models.File
		if err := rows.Scan(&f.Filename, &f.MIMEType, &f.SizeBytes, &f.ExtractedText); err != nil {
			return fmt.Errorf("scan uploaded file: %w", err)
		}
		f.QuestionIndex = -1
		s.Files = append(s.Files, f)
	}
	return rows.Err()
}

// ListSessions returns summaries of all stored sessions, newest first.
func (db *DB) ListSessions() ([]SessionSummary, error) {
	rows, err := db.Query(`
		SELECT session_id, stage, agent_name, goal, updated_at
		FROM main_sessions ORDER BY updated_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var summaries []SessionSummary
	for rows.Next() {
		var s SessionSummary
		var updatedAt string
		if err := rows.Scan(&s.SessionID, &s.Stage, &s.AgentName, &s.Goal, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		s.UpdatedAt, _ = parseTime(updatedAt)
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

// DeleteSession removes a session and its follow-up and file records.
func (db *DB) DeleteSession(id string) error {
	for _, q := range []string{
		"DELETE FROM uploaded_files WHERE session_id = ?",
		"DELETE FROM followup_sessions WHERE session_id = ?",
		"DELETE FROM main_sessions WHERE session_id = ?",
	} {
		if _, err := db.Exec(q, id); err != nil {
			return fmt.Errorf("delete session: %w", err)
		}
	}
	return nil
}
