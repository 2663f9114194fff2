// Package dbprobe opens and verifies the user-configured databases
// collected during the follow-up stage. It supports SQLite, MySQL and
// PostgreSQL through database/sql drivers.
package dbprobe

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/aaxonlabs/agentforge/pkg/models"
)

// Result records the outcome of probing one database config.
type Result struct {
	Config models.DatabaseConfig
	OK     bool
	Err    error
}

// DSN builds the database/sql driver name and source string for a config.
// The config must be Complete.
func DSN(cfg models.DatabaseConfig) (driver, dsn string, err error) {
	switch cfg.Kind {
	case models.DatabaseSQLite:
		return "sqlite", cfg.Path, nil
	case models.DatabaseMySQL:
		return "mysql", fmt.Sprintf("%s:%s@tcp(%s:%s)/%s", cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database), nil
	case models.DatabasePostgres:
		return "pgx", fmt.Sprintf("postgres://%s:%s@%s:%s/%s", cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database), nil
	}
	return "", "", fmt.Errorf("unsupported database kind %q", cfg.Kind)
}

// Open connects to the configured database.
func Open(cfg models.DatabaseConfig) (*sql.DB, error) {
	driver, dsn, err := DSN(cfg)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", cfg.Kind, err)
	}
	return db, nil
}

// Probe runs a SELECT 1 against every complete config and reports per-config
// results. Incomplete configs are skipped entirely; a failed probe never
// stops the rest of the batch.
func Probe(ctx context.Context, configs []models.DatabaseConfig) []Result {
	var results []Result
	for _, cfg := range configs {
		if !cfg.Complete() {
			continue
		}
		results = append(results, probeOne(ctx, cfg))
	}
	return results
}

func probeOne(ctx context.Context, cfg models.DatabaseConfig) Result {
	db, err := Open(cfg)
	if err != nil {
		return Result{Config: cfg, Err: err}
	}
	defer db.Close()

	var one int
	if err := db.QueryRowContext(ctx, "SELECT 1").Scan(&one); err != nil {
		return Result{Config: cfg, Err: fmt.Errorf("connection test failed: %w", err)}
	}
	return Result{Config: cfg, OK: true}
}

// SetupTables creates the workflow_data table in every complete config's
// database so generated programs have a landing place for step output.
// Failures are reported per config and do not stop the batch.
func SetupTables(ctx context.Context, configs []models.DatabaseConfig) []Result {
	const createTable = `
		CREATE TABLE IF NOT EXISTS workflow_data (
			id INTEGER PRIMARY KEY,
			session_id TEXT,
			question_index INTEGER,
			answer_data TEXT,
			file_content TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`

	var results []Result
	for _, cfg := range configs {
		if !cfg.Complete() {
			continue
		}
		db, err := Open(cfg)
		if err != nil {
			results = append(results, Result{Config: cfg, Err: err})
			continue
		}
		if _, err := db.ExecContext(ctx, createTable); err != nil {
			results = append(results, Result{Config: cfg, Err: fmt.Errorf("create tables: %w", err)})
		} else {
			results = append(results, Result{Config: cfg, OK: true})
		}
		db.Close()
	}
	return results
}
