// Package storage provides SQLite-based persistence for finished game
// sessions. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies.
//
// Only session summaries are stored. Board state is never persisted, so a
// recorded session cannot be resumed.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Outcome records how a session ended.
type Outcome string

const (
	OutcomeGameOver  Outcome = "game_over" // No legal move remained
	OutcomeQuit      Outcome = "quit"      // Player left mid-game
	OutcomeStalled   Outcome = "stalled"   // Autoplay strategy stopped changing the board
	OutcomeCancelled Outcome = "cancelled" // Autoplay run was cancelled
)

// Run is the summary of one finished session.
type Run struct {
	ID        int64
	RunID     string // uuid, assigned by SaveRun when empty
	Variant   string // registry id, e.g. "2048_5x5"
	Width     int
	Seed      int64
	Moves     int
	Merges    int
	MaxRank   int // -1 for an empty board
	Outcome   Outcome
	CreatedAt time.Time
}

// Stats aggregates the recorded runs of one variant.
type Stats struct {
	Variant     string
	Runs        int
	Completed   int // Runs that reached game over
	BestMaxRank int // -1 when nothing is recorded
	TotalMoves  int64
	LastPlayed  time.Time
}

// Store manages the SQLite database connection for session history.
type Store struct {
	db *sql.DB
}

// DefaultPath is the history database used when none is configured.
const DefaultPath = "~/.tilemerge/history.db"

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL UNIQUE,
			variant TEXT NOT NULL,
			width INTEGER NOT NULL,
			seed INTEGER NOT NULL DEFAULT 0,
			moves INTEGER NOT NULL DEFAULT 0,
			merges INTEGER NOT NULL DEFAULT 0,
			max_rank INTEGER NOT NULL DEFAULT -1,
			outcome TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_variant ON runs(variant);
		CREATE INDEX IF NOT EXISTS idx_runs_recent ON runs(variant, id DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a finished session and returns it with ID, RunID and
// CreatedAt filled in.
func (s *Store) SaveRun(run Run) (Run, error) {
	if run.Variant == "" {
		return run, errors.New("storage: run has no variant")
	}
	if run.RunID == "" {
		run.RunID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	result, err := s.db.Exec(
		`INSERT INTO runs (run_id, variant, width, seed, moves, merges, max_rank, outcome, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.RunID, run.Variant, run.Width, run.Seed, run.Moves, run.Merges, run.MaxRank,
		string(run.Outcome), run.CreatedAt.Format(timeLayout),
	)
	if err != nil {
		return run, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return run, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	run.ID = id
	return run, nil
}

// RecentRuns returns the latest runs, newest first. An empty variant
// returns runs of every variant. A non-positive limit defaults to 20.
func (s *Store) RecentRuns(variant string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, run_id, variant, width, seed, moves, merges, max_rank, outcome, created_at
		 FROM runs
		 WHERE ? = '' OR variant = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		variant, variant, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var outcome string
		var createdAt any
		if err := rows.Scan(&r.ID, &r.RunID, &r.Variant, &r.Width, &r.Seed,
			&r.Moves, &r.Merges, &r.MaxRank, &outcome, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Outcome = Outcome(outcome)
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// RunByID looks up a run by its uuid. It returns nil when none matches.
func (s *Store) RunByID(runID string) (*Run, error) {
	var r Run
	var outcome string
	var createdAt any

	err := s.db.QueryRow(
		`SELECT id, run_id, variant, width, seed, moves, merges, max_rank, outcome, created_at
		 FROM runs WHERE run_id = ?`,
		runID,
	).Scan(&r.ID, &r.RunID, &r.Variant, &r.Width, &r.Seed,
		&r.Moves, &r.Merges, &r.MaxRank, &outcome, &createdAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}

	r.Outcome = Outcome(outcome)
	r.CreatedAt = parseTime(createdAt)
	return &r, nil
}

// Stats aggregates the runs of one variant.
func (s *Store) Stats(variant string) (*Stats, error) {
	stats := &Stats{Variant: variant}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END), 0),
		        COALESCE(MAX(max_rank), -1),
		        COALESCE(SUM(moves), 0),
		        MAX(created_at)
		 FROM runs WHERE variant = ?`,
		string(OutcomeGameOver), variant,
	).Scan(&stats.Runs, &stats.Completed, &stats.BestMaxRank, &stats.TotalMoves, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// Variants lists every variant with at least one recorded run.
func (s *Store) Variants() ([]string, error) {
	rows, err := s.db.Query(`SELECT DISTINCT variant FROM runs ORDER BY variant`)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot list variants: %w", err)
	}
	defer rows.Close()

	var variants []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		variants = append(variants, v)
	}
	return variants, rows.Err()
}

// ClearRuns deletes all runs for the given variant.
func (s *Store) ClearRuns(variant string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE variant = ?", variant)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

const timeLayout = "2006-01-02 15:04:05"

// parseTime handles both time.Time and string columns.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse(timeLayout, v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
