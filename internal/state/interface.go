// Package state provides SQLite-based persistence for wizard sessions.
package state

import (
	"io"

	"github.com/aaxonlabs/agentforge/pkg/models"
)

// SnapshotStore handles session-snapshot persistence.
type SnapshotStore interface {
	SaveSnapshot(s *models.Session) error
	SaveFollowup(s *models.Session) error
	SaveUploadedFile(sessionID string, f models.File) error
	LoadSession(id string) (*models.Session, error)
	ListSessions() ([]SessionSummary, error)
	DeleteSession(id string) error
}

// Migrator handles database schema migrations.
// Separating this allows clients to depend only on migration functionality.
type Migrator interface {
	// Migrate applies all pending schema migrations.
	Migrate() error
}

// Store defines the interface for session persistence.
// This interface allows the wizard controller to work with any backend
// without depending on the concrete SQLite implementation.
type Store interface {
	io.Closer
	Migrator
	SnapshotStore
}

// Compile-time verification that DB implements all interfaces.
var (
	_ Store         = (*DB)(nil)
	_ Migrator      = (*DB)(nil)
	_ SnapshotStore = (*DB)(nil)
)
