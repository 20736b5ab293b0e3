// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store archives harvest runs in a SQLite database so results from
// successive runs can be compared and queried offline.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/profile-hunter/pkg/types"
)

// Store is a SQLite run archive.
type Store struct {
	db *sql.DB
}

// Open opens or creates the archive at path and ensures the schema exists.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating archive directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			organization TEXT NOT NULL,
			timestamp TEXT NOT NULL,
			api_requests INTEGER NOT NULL,
			profiles_found INTEGER NOT NULL,
			queries_total INTEGER NOT NULL,
			queries_failed INTEGER NOT NULL,
			aborted INTEGER NOT NULL,
			execution_time_seconds REAL NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS profiles (
			run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			name TEXT NOT NULL,
			linkedin_url TEXT NOT NULL,
			role_snippet TEXT,
			generated_email TEXT,
			query TEXT,
			PRIMARY KEY (run_id, linkedin_url)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_organization ON runs(organization)`,
		`CREATE INDEX IF NOT EXISTS idx_profiles_url ON profiles(linkedin_url)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// SaveRun records a run and its profiles in one transaction and returns
// the new run id.
func (s *Store) SaveRun(ctx context.Context, m types.RunMetrics, profiles []types.ProfileRecord) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (organization, timestamp, api_requests, profiles_found,
			queries_total, queries_failed, aborted, execution_time_seconds)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		m.Organization, m.Timestamp, m.APIRequests, m.ProfilesFound,
		m.QueriesTotal, m.QueriesFailed, m.Aborted, m.ExecutionTimeSeconds,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading run id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO profiles (run_id, position, name, linkedin_url, role_snippet, generated_email, query)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, p := range profiles {
		var email sql.NullString
		if p.GeneratedEmail != nil {
			email = sql.NullString{String: *p.GeneratedEmail, Valid: true}
		}
		if _, err := stmt.ExecContext(ctx, runID, i, p.Name, p.LinkedInURL, p.RoleSnippet, email, p.Query); err != nil {
			return 0, fmt.Errorf("inserting profile %s: %w", p.LinkedInURL, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing run: %w", err)
	}
	return runID, nil
}

// Run is an archived run.
type Run struct {
	ID      int64
	Metrics types.RunMetrics
}

// Runs lists archived runs for organization, newest first. An empty
// organization lists every run.
func (s *Store) Runs(ctx context.Context, organization string) ([]Run, error) {
	query := `SELECT id, organization, timestamp, api_requests, profiles_found,
			queries_total, queries_failed, aborted, execution_time_seconds
		FROM runs`
	var args []any
	if organization != "" {
		query += ` WHERE organization = ?`
		args = append(args, organization)
	}
	query += ` ORDER BY id DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		m := &r.Metrics
		if err := rows.Scan(&r.ID, &m.Organization, &m.Timestamp, &m.APIRequests, &m.ProfilesFound,
			&m.QueriesTotal, &m.QueriesFailed, &m.Aborted, &m.ExecutionTimeSeconds); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Profiles returns the profiles of a run in their original output order.
func (s *Store) Profiles(ctx context.Context, runID int64) ([]types.ProfileRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, linkedin_url, role_snippet, generated_email, query
		 FROM profiles WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying profiles: %w", err)
	}
	defer rows.Close()

	var out []types.ProfileRecord
	for rows.Next() {
		var (
			p       types.ProfileRecord
			snippet sql.NullString
			email   sql.NullString
			query   sql.NullString
		)
		if err := rows.Scan(&p.Name, &p.LinkedInURL, &snippet, &email, &query); err != nil {
			return nil, fmt.Errorf("scanning profile: %w", err)
		}
		p.RoleSnippet = snippet.String
		p.Query = query.String
		if email.Valid {
			e := email.String
			p.GeneratedEmail = &e
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
