package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hyperengineering/statefacts/internal/types"
	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"
)

// SQLiteStore persists fact overlays as one row per state, with the facts
// held as a JSON array.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLiteStore instance.
// It initializes the database with WAL mode, applies pragmas, and runs migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	// Ensure parent directory exists
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dsn(dbPath))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// An in-memory database lives per connection.
	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if err := enablePragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable pragmas: %w", err)
	}

	if err := RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// dsn applies per-connection pragmas to every pooled connection, not just
// the one enablePragmas happens to run on.
func dsn(dbPath string) string {
	if dbPath == ":memory:" {
		return dbPath
	}
	return dbPath + "?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)&_pragma=synchronous(NORMAL)"
}

// enablePragmas sets SQLite pragmas for optimal performance and safety.
func enablePragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
		"PRAGMA synchronous=NORMAL",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("execute %s: %w", pragma, err)
		}
	}

	return nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// scanOverlay scans a row into a FactOverlay, parsing the facts JSON.
func scanOverlay(scanner interface{ Scan(...any) error }) (*types.FactOverlay, error) {
	var doc types.FactOverlay
	var factsJSON string
	var createdAt, updatedAt string

	if err := scanner.Scan(&doc.ID, &doc.StateCode, &factsJSON, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(factsJSON), &doc.FunFacts); err != nil {
		return nil, fmt.Errorf("parse fun_facts JSON: %w", err)
	}
	if doc.FunFacts == nil {
		doc.FunFacts = []string{}
	}

	if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		doc.CreatedAt = t
	}
	if t, err := time.Parse(time.RFC3339Nano, updatedAt); err == nil {
		doc.UpdatedAt = t
	}

	return &doc, nil
}

// Get retrieves the overlay for a state code.
func (s *SQLiteStore) Get(ctx context.Context, code string) (*types.FactOverlay, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, state_code, fun_facts, created_at, updated_at
		FROM fact_overlays
		WHERE state_code = ?
	`, code)

	doc, err := scanOverlay(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan row: %w", err)
	}

	return doc, nil
}

// Put upserts the overlay keyed by state code. The document ID and creation
// time of an existing row are preserved.
func (s *SQLiteStore) Put(ctx context.Context, doc *types.FactOverlay) error {
	now := time.Now().UTC()
	if doc.ID == "" {
		doc.ID = ulid.Make().String()
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = now
	}
	doc.UpdatedAt = now
	if doc.FunFacts == nil {
		doc.FunFacts = []string{}
	}

	factsJSON, err := json.Marshal(doc.FunFacts)
	if err != nil {
		return fmt.Errorf("marshal fun_facts: %w", err)
	}

	var id, createdAt string
	err = s.db.QueryRowContext(ctx, `
		INSERT INTO fact_overlays (id, state_code, fun_facts, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(state_code) DO UPDATE SET
			fun_facts = excluded.fun_facts,
			updated_at = excluded.updated_at
		RETURNING id, created_at
	`, doc.ID, doc.StateCode, string(factsJSON),
		doc.CreatedAt.Format(time.RFC3339Nano), doc.UpdatedAt.Format(time.RFC3339Nano)).Scan(&id, &createdAt)
	if err != nil {
		return fmt.Errorf("upsert overlay: %w", err)
	}

	doc.ID = id
	if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		doc.CreatedAt = t
	}

	return nil
}

// Delete removes the overlay for a state code.
func (s *SQLiteStore) Delete(ctx context.Context, code string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM fact_overlays WHERE state_code = ?`, code)
	if err != nil {
		return fmt.Errorf("delete overlay: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// List returns every overlay ordered by document ID.
func (s *SQLiteStore) List(ctx context.Context) ([]types.FactOverlay, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, state_code, fun_facts, created_at, updated_at
		FROM fact_overlays
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query overlays: %w", err)
	}
	defer rows.Close()

	docs := []types.FactOverlay{}
	for rows.Next() {
		doc, err := scanOverlay(rows)
		if err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		docs = append(docs, *doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return docs, nil
}

// Count returns the number of stored overlays.
func (s *SQLiteStore) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM fact_overlays").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count overlays: %w", err)
	}
	return count, nil
}

// Maintain folds the WAL back into the database file and refreshes query
// planner statistics.
func (s *SQLiteStore) Maintain(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
		return fmt.Errorf("wal checkpoint: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, "PRAGMA optimize"); err != nil {
		return fmt.Errorf("optimize: %w", err)
	}
	return nil
}
