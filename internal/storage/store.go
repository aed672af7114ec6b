// Package storage keeps a small run history in an embedded sqlite database:
// what was fetched, when, for which category and timeframe, and where the
// artifact landed. Since summary files are keyed by timeframe only, the run
// log is the one place a cross-category overwrite stays visible.
package storage

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Run is one completed pipeline run.
type Run struct {
	ID           int64
	Category     string
	Timeframe    string
	AnchorDate   string
	Fetched      int
	Kept         int
	Summaries    int
	FallbackUsed bool
	Path         string
	CreatedAt    time.Time
}

// Store wraps the sqlite run-history database.
type Store struct {
	db *sql.DB
}

// Open opens (and if needed creates) the database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		category TEXT NOT NULL,
		timeframe TEXT NOT NULL,
		anchor_date TEXT NOT NULL,
		fetched INTEGER NOT NULL,
		kept INTEGER NOT NULL,
		summaries INTEGER NOT NULL,
		fallback_used INTEGER NOT NULL,
		path TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs (created_at);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to init schema: %w", err)
	}
	return nil
}

// RecordRun appends one run to the history.
func (s *Store) RecordRun(r Run) error {
	_, err := s.db.Exec(`
		INSERT INTO runs (category, timeframe, anchor_date, fetched, kept, summaries, fallback_used, path, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Category, r.Timeframe, r.AnchorDate, r.Fetched, r.Kept, r.Summaries, r.FallbackUsed, r.Path, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}
	return nil
}

// RecentRuns returns the newest runs, most recent first.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	rows, err := s.db.Query(`
		SELECT id, category, timeframe, anchor_date, fetched, kept, summaries, fallback_used, path, created_at
		FROM runs ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Category, &r.Timeframe, &r.AnchorDate, &r.Fetched, &r.Kept, &r.Summaries, &r.FallbackUsed, &r.Path, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

func (s *Store) Close() error {
	return s.db.Close()
}
