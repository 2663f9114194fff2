package state

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/aaxonlabs/agentforge/pkg/models"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "agentforge.db"))
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := db.Migrate(); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestMigrateIdempotent(t *testing.T) {
	db := testDB(t)
	if err := db.Migrate(); err != nil {
		t.Fatalf("second migrate: %v", err)
	}

	var version int
	row := db.QueryRow("SELECT MAX(version) FROM schema_version")
	if err := row.Scan(&version); err != nil {
		t.Fatal(err)
	}
	if version != 3 {
		t.Errorf("schema version = %d, want 3", version)
	}
}

func TestSaveSnapshotInsertOrReplace(t *testing.T) {
	db := testDB(t)

	s := &models.Session{
		ID:         "sess-1",
		Stage:      models.StageSubtasks,
		AgentName:  "InvoiceAgent",
		Objective:  "track invoices",
		SkillLevel: models.SkillIntermediate,
		Subtasks:   []string{"extract data", "validate amounts"},
		CreatedAt:  time.Now(),
	}
	if err := db.SaveSnapshot(s); err != nil {
		t.Fatalf("first save: %v", err)
	}

	s.Stage = models.StageResults
	s.RefinedObjective = "track invoices with vendor rollups"
	if err := db.SaveSnapshot(s); err != nil {
		t.Fatalf("second save: %v", err)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM main_sessions").Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("got %d rows after re-save, want 1", count)
	}

	loaded, err := db.LoadSession("sess-1")
	if err != nil {
		t.Fatal(err)
	}
	if loaded == nil {
		t.Fatal("session not found after save")
	}
	if loaded.Stage != models.StageResults {
		t.Errorf("stage = %d, want %d", loaded.Stage, models.StageResults)
	}
	if loaded.RefinedObjective != "track invoices with vendor rollups" {
		t.Errorf("refined objective = %q", loaded.RefinedObjective)
	}
	if len(loaded.Subtasks) != 2 || loaded.Subtasks[0] != "extract data" {
		t.Errorf("subtasks round-trip wrong: %v", loaded.Subtasks)
	}
}

func TestSaveFollowupRoundTrip(t *testing.T) {
	db := testDB(t)

	s := &models.Session{
		ID:         "sess-2",
		Objective:  "automate reports",
		SkillLevel: models.SkillAdvanced,
		Questions:  []string{"What data sources?", "What cadence?"},
		Answers:    map[int]string{0: "a CSV export"},
	}
	if err := db.SaveSnapshot(s); err != nil {
		t.Fatal(err)
	}
	if err := db.SaveFollowup(s); err != nil {
		t.Fatal(err)
	}

	loaded, err := db.LoadSession("sess-2")
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded.Questions) != 2 {
		t.Fatalf("got %d questions, want 2", len(loaded.Questions))
	}
	if loaded.Answers[0] != "a CSV export" {
		t.Errorf("answer 0 = %q", loaded.Answers[0])
	}
}

func TestSaveUploadedFileCapsContent(t *testing.T) {
	db := testDB(t)

	s := &models.Session{ID: "sess-3", Objective: "process files"}
	if err := db.SaveSnapshot(s); err != nil {
		t.Fatal(err)
	}

	big := make([]byte, models.MaxExtractedChars+100)
	for i := range big {
		big[i] = 'x'
	}
	err := db.SaveUploadedFile("sess-3", models.File{
		Filename:      "big.txt",
		MIMEType:      "text/plain",
		SizeBytes:     int64(len(big)),
		ExtractedText: string(big),
	})
	if err != nil {
		t.Fatal(err)
	}

	loaded, err := db.LoadSession("sess-3")
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded.Files) != 1 {
		t.Fatalf("got %d files, want 1", len(loaded.Files))
	}
	if len(loaded.Files[0].ExtractedText) != models.MaxExtractedChars {
		t.Errorf("stored content length = %d, want %d", len(loaded.Files[0].ExtractedText), models.MaxExtractedChars)
	}
}

func TestLoadSessionMissing(t *testing.T) {
	db := testDB(t)
	s, err := db.LoadSession("nope")
	if err != nil {
		t.Fatal(err)
	}
	if s != nil {
		t.Error("expected nil for missing session")
	}
}

func TestListSessionsNewestFirst(t *testing.T) {
	db := testDB(t)

	if err := db.SaveSnapshot(&models.Session{ID: "old", Objective: "old goal"}); err != nil {
		t.Fatal(err)
	}
	// RFC3339 second resolution; make sure the timestamps differ.
	time.Sleep(1100 * time.Millisecond)
	if err := db.SaveSnapshot(&models.Session{ID: "new", Objective: "new goal"}); err != nil {
		t.Fatal(err)
	}

	summaries, err := db.ListSessions()
	if err != nil {
		t.Fatal(err)
	}
	if len(summaries) != 2 {
		t.Fatalf("got %d sessions, want 2", len(summaries))
	}
	if summaries[0].SessionID != "new" {
		t.Errorf("first summary = %q, want newest", summaries[0].SessionID)
	}
}

func TestDeleteSessionCascades(t *testing.T) {
	db := testDB(t)

	s := &models.Session{ID: "sess-4", Objective: "goal", Questions: []string{"Q?"}}
	if err := db.SaveSnapshot(s); err != nil {
		t.Fatal(err)
	}
	if err := db.SaveFollowup(s); err != nil {
		t.Fatal(err)
	}
	if err := db.SaveUploadedFile("sess-4", models.File{Filename: "f.txt"}); err != nil {
		t.Fatal(err)
	}

	if err := db.DeleteSession("sess-4"); err != nil {
		t.Fatal(err)
	}

	for _, table := range []string{"main_sessions", "followup_sessions", "uploaded_files"} {
		var count int
		if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&count); err != nil {
			t.Fatal(err)
		}
		if count != 0 {
			t.Errorf("%s still has %d rows after delete", table, count)
		}
	}
}

func TestPurgeOldSessions(t *testing.T) {
	db := testDB(t)

	if err := db.SaveSnapshot(&models.Session{ID: "stale", Objective: "goal"}); err != nil {
		t.Fatal(err)
	}
	// Backdate the row past the cutoff.
	old := formatTime(time.Now().Add(-48 * time.Hour))
	if _, err := db.Exec("UPDATE main_sessions SET updated_at = ? WHERE session_id = 'stale'", old); err != nil {
		t.Fatal(err)
	}
	if err := db.SaveSnapshot(&models.Session{ID: "fresh", Objective: "goal"}); err != nil {
		t.Fatal(err)
	}

	count, err := db.PurgeOldSessions(24 * time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("purged %d sessions, want 1", count)
	}

	summaries, err := db.ListSessions()
	if err != nil {
		t.Fatal(err)
	}
	if len(summaries) != 1 || summaries[0].SessionID != "fresh" {
		t.Errorf("remaining sessions = %v, want only fresh", summaries)
	}
}
