// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store keeps an append-only SQLite log of runs: the query, its
// counts, and the papers it retained. Repeating a query adds a new run;
// papers are never merged across runs.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/pharma-papers/internal/pipeline"
	"github.com/pdiddy/pharma-papers/pkg/types"
)

const defaultRunLimit = 20

// ErrRunNotFound is returned by Load for an unknown run id.
var ErrRunNotFound = errors.New("run not found")

// Store wraps the run database.
type Store struct {
	db *sql.DB
}

// Run is one stored pipeline run.
type Run struct {
	ID        int64     `json:"id" yaml:"id"`
	Query     string    `json:"query" yaml:"query"`
	Found     int       `json:"found" yaml:"found"`
	Fetched   int       `json:"fetched" yaml:"fetched"`
	Retained  int       `json:"retained" yaml:"retained"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// Open opens or creates the database at path and ensures the schema exists.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
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
			query TEXT NOT NULL,
			max_results INTEGER,
			found INTEGER,
			fetched INTEGER,
			retained INTEGER,
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS papers (
			run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			pmid TEXT,
			title TEXT,
			year TEXT,
			pub_date TEXT,
			authors TEXT,
			companies TEXT,
			email TEXT,
			PRIMARY KEY (run_id, position)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_papers_pmid ON papers(pmid)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// SaveRun records res as a new run in one transaction and returns its id.
func (s *Store) SaveRun(ctx context.Context, res pipeline.Result) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	created := res.Timestamp
	if created.IsZero() {
		created = time.Now().UTC()
	}

	r, err := tx.ExecContext(ctx,
		`INSERT INTO runs (query, max_results, found, fetched, retained, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		res.Query.Text, res.Query.MaxResults, res.Found, res.Fetched, res.Retained(),
		created.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}
	runID, err := r.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading run id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO papers (run_id, position, pmid, title, year, pub_date, authors, companies, email)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing paper insert: %w", err)
	}
	defer stmt.Close()

	for i, p := range res.Papers {
		authors, err := json.Marshal(nonNil(p.NonAcademicAuthors))
		if err != nil {
			return 0, fmt.Errorf("marshaling authors: %w", err)
		}
		companies, err := json.Marshal(nonNil(p.Companies))
		if err != nil {
			return 0, fmt.Errorf("marshaling companies: %w", err)
		}
		if _, err := stmt.ExecContext(ctx, runID, i, p.PMID, p.Title, p.PublicationYear,
			p.PublicationDate, string(authors), string(companies), p.CorrespondingEmail); err != nil {
			return 0, fmt.Errorf("inserting paper %s: %w", p.PMID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing run: %w", err)
	}
	return runID, nil
}

// Runs lists the most recent runs, newest first. limit <= 0 uses 20.
func (s *Store) Runs(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = defaultRunLimit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, query, found, fetched, retained, created_at
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r       Run
			created string
		)
		if err := rows.Scan(&r.ID, &r.Query, &r.Found, &r.Fetched, &r.Retained, &created); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if t, err := time.Parse(time.RFC3339Nano, created); err == nil {
			r.CreatedAt = t
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Load rebuilds the pipeline result saved as runID. Discarded is derived
// from the stored counts.
func (s *Store) Load(ctx context.Context, runID int64) (pipeline.Result, error) {
	var (
		res     pipeline.Result
		created string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT query, max_results, found, fetched, created_at FROM runs WHERE id = ?`, runID,
	).Scan(&res.Query.Text, &res.Query.MaxResults, &res.Found, &res.Fetched, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return res, fmt.Errorf("run %d: %w", runID, ErrRunNotFound)
	}
	if err != nil {
		return res, fmt.Errorf("querying run %d: %w", runID, err)
	}
	if t, err := time.Parse(time.RFC3339Nano, created); err == nil {
		res.Timestamp = t
	}

	res.Papers, err = s.Papers(ctx, runID)
	if err != nil {
		return res, err
	}
	res.Discarded = res.Fetched - res.Retained()
	return res, nil
}

// Papers returns the papers saved with runID in their original order.
func (s *Store) Papers(ctx context.Context, runID int64) ([]types.FilteredPaper, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT pmid, title, year, pub_date, authors, companies, email
		 FROM papers WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying papers: %w", err)
	}
	defer rows.Close()

	var papers []types.FilteredPaper
	for rows.Next() {
		var (
			p                  types.FilteredPaper
			authors, companies string
		)
		if err := rows.Scan(&p.PMID, &p.Title, &p.PublicationYear, &p.PublicationDate,
			&authors, &companies, &p.CorrespondingEmail); err != nil {
			return nil, fmt.Errorf("scanning paper: %w", err)
		}
		if err := json.Unmarshal([]byte(authors), &p.NonAcademicAuthors); err != nil {
			return nil, fmt.Errorf("decoding authors of %s: %w", p.PMID, err)
		}
		if err := json.Unmarshal([]byte(companies), &p.Companies); err != nil {
			return nil, fmt.Errorf("decoding companies of %s: %w", p.PMID, err)
		}
		papers = append(papers, p)
	}
	return papers, rows.Err()
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
