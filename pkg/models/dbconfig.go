package models

import "strings"

// DatabaseKind identifies the type of a user-declared database target.
type DatabaseKind string

const (
	// DatabaseNone indicates no database was configured.
	DatabaseNone DatabaseKind = "none"
	// DatabaseSQLite is a file-backed SQLite database.
	DatabaseSQLite DatabaseKind = "sqlite"
	// DatabaseMySQL is a networked MySQL database.
	DatabaseMySQL DatabaseKind = "mysql"
	// DatabasePostgres is a networked PostgreSQL database.
	DatabasePostgres DatabaseKind = "postgresql"
)

// Valid returns true if the kind is a known value.
func (k DatabaseKind) Valid() bool {
	switch k {
	case DatabaseNone, DatabaseSQLite, DatabaseMySQL, DatabasePostgres:
		return true
	default:
		return false
	}
}

// ParseDatabaseKind normalizes a database kind string. Unrecognized or empty
// values map to DatabaseNone.
func ParseDatabaseKind(s string) DatabaseKind {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(DatabaseSQLite):
		return DatabaseSQLite
	case string(DatabaseMySQL):
		return DatabaseMySQL
	case string(DatabasePostgres):
		return DatabasePostgres
	default:
		return DatabaseNone
	}
}

// DatabaseConfig is a user-declared external database target collected
// during the follow-up stage. It is only used for optional connectivity
// probing; the generated program never exercises it.
type DatabaseConfig struct {
	// Kind is the database type.
	Kind DatabaseKind `json:"type"`
	// QuestionIndex is the clarifying question this config was entered for.
	QuestionIndex int `json:"question_index"`
	// Path is the database file path (sqlite only).
	Path string `json:"path,omitempty"`
	// Host is the server hostname (mysql/postgresql).
	Host string `json:"host,omitempty"`
	// Port is the server port (mysql/postgresql).
	Port string `json:"port,omitempty"`
	// User is the login user (mysql/postgresql).
	User string `json:"user,omitempty"`
	// Password is the login password (mysql/postgresql).
	Password string `json:"password,omitempty"`
	// Database is the database name (mysql/postgresql).
	Database string `json:"database,omitempty"`
}

// Complete reports whether the config carries enough fields to attempt a
// connection. Incomplete configs are excluded from connectivity tests and
// table setup.
func (c DatabaseConfig) Complete() bool {
	switch c.Kind {
	case DatabaseSQLite:
		return strings.TrimSpace(c.Path) != ""
	case DatabaseMySQL, DatabasePostgres:
		return strings.TrimSpace(c.Host) != "" &&
			strings.TrimSpace(c.User) != "" &&
			strings.TrimSpace(c.Port) != "" &&
			strings.TrimSpace(c.Database) != ""
	default:
		return false
	}
}

// Display returns a short human-readable description of the config, used in
// status output and the results view.
func (c DatabaseConfig) Display() string {
	switch c.Kind {
	case DatabaseSQLite:
		if strings.TrimSpace(c.Path) == "" {
			return "SQLite: (no file specified)"
		}
		return "SQLite: " + c.Path
	case DatabaseMySQL, DatabasePostgres:
		if !c.Complete() {
			return strings.ToUpper(string(c.Kind)) + ": (incomplete configuration)"
		}
		return strings.ToUpper(string(c.Kind)) + ": " + c.User + "@" + c.Host + ":" + c.Port + "/" + c.Database
	default:
		return "No database configured"
	}
}
