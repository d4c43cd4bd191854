// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists generated tailoring examples in a SQLite database.
// The store assigns the sequence numbers used in document frontmatter and
// lets repeat requests for a URL reuse the stored document instead of
// re-paying the provider call.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/TAI-src/retrieve-tailor-example/pkg/types"
)

const (
	indexDir = "index"
	dbFile   = "examples.db"
)

// Record is one stored example: the assigned id, the source URL it was
// generated from, and the rendered document.
type Record struct {
	ID        int64
	SourceURL string
	Title     string
	Document  string
	CreatedAt time.Time
}

// Store manages the examples SQLite database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// New opens or creates the database at dataDir/index/examples.db, creating
// the schema if it does not exist.
func New(cfg types.StoreConfig) (*Store, error) {
	dbDir := filepath.Join(cfg.DataDir, indexDir)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dbDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, maxResults: maxResults}
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
	stmt := `CREATE TABLE IF NOT EXISTS examples (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		source_url TEXT NOT NULL UNIQUE,
		title TEXT,
		document TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`
	if _, err := s.db.Exec(stmt); err != nil {
		return fmt.Errorf("executing schema statement: %w", err)
	}
	return nil
}

// ClaimID reserves the id for an example about to be generated by
// inserting a placeholder row for its source URL. The database assigns the
// id, so concurrent claims for different URLs always receive distinct ids;
// a second claim for a URL already in flight fails on the UNIQUE
// constraint. Claimed rows are invisible to lookups until Save completes
// them; Release frees a claim whose generation failed.
func (s *Store) ClaimID(ctx context.Context, sourceURL string) (int64, error) {
	created := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO examples (source_url, title, document, created_at)
		 VALUES (?, '', '', ?)`,
		sourceURL, created)
	if err != nil {
		return 0, fmt.Errorf("claiming id for %s: %w", sourceURL, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading claimed id: %w", err)
	}
	return id, nil
}

// Release deletes a claimed placeholder row. Completed records are left
// alone. The AUTOINCREMENT schema never reuses a released id.
func (s *Store) Release(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM examples WHERE id = ? AND document = ''`, id); err != nil {
		return fmt.Errorf("releasing id %d: %w", id, err)
	}
	return nil
}

// Save stores a record. A record carrying a claimed id completes its
// placeholder row; a record without one is inserted fresh. A duplicate
// source URL is an error, never a silent replacement.
func (s *Store) Save(ctx context.Context, rec *Record) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	created := rec.CreatedAt.UTC().Format(time.RFC3339)

	if rec.ID > 0 {
		res, err := s.db.ExecContext(ctx,
			`UPDATE examples SET source_url = ?, title = ?, document = ?, created_at = ?
			 WHERE id = ?`,
			rec.SourceURL, rec.Title, rec.Document, created, rec.ID)
		if err != nil {
			return fmt.Errorf("saving example %d: %w", rec.ID, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("saving example %d: %w", rec.ID, err)
		}
		if n == 0 {
			return fmt.Errorf("saving example %d: id was never claimed", rec.ID)
		}
		return nil
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO examples (source_url, title, document, created_at)
		 VALUES (?, ?, ?, ?)`,
		rec.SourceURL, rec.Title, rec.Document, created)
	if err != nil {
		return fmt.Errorf("inserting example: %w", err)
	}
	rec.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading inserted id: %w", err)
	}
	return nil
}

// GetByURL returns the stored example for a source URL, or nil when none
// exists.
func (s *Store) GetByURL(ctx context.Context, sourceURL string) (*Record, error) {
	return s.get(ctx, `SELECT id, source_url, title, document, created_at
		FROM examples WHERE source_url = ? AND document != ''`, sourceURL)
}

// GetByID returns the stored example with the given id, or nil when none
// exists.
func (s *Store) GetByID(ctx context.Context, id int64) (*Record, error) {
	return s.get(ctx, `SELECT id, source_url, title, document, created_at
		FROM examples WHERE id = ? AND document != ''`, id)
}

func (s *Store) get(ctx context.Context, query string, arg any) (*Record, error) {
	var rec Record
	var created string
	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&rec.ID, &rec.SourceURL, &rec.Title, &rec.Document, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying example: %w", err)
	}
	if t, parseErr := time.Parse(time.RFC3339, created); parseErr == nil {
		rec.CreatedAt = t
	}
	return &rec, nil
}

// List returns stored examples in descending id order, capped at the
// configured maximum.
func (s *Store) List(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, source_url, title, document, created_at
		 FROM examples WHERE document != '' ORDER BY id DESC LIMIT ?`, s.maxResults)
	if err != nil {
		return nil, fmt.Errorf("listing examples: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		var created string
		if err := rows.Scan(&rec.ID, &rec.SourceURL, &rec.Title, &rec.Document, &created); err != nil {
			return nil, fmt.Errorf("scanning example row: %w", err)
		}
		if t, parseErr := time.Parse(time.RFC3339, created); parseErr == nil {
			rec.CreatedAt = t
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
