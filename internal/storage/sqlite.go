// Package storage provides SQLite-based persistence for the high score and
// run history. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrUnavailable marks every failure to read or write the store.
// Callers treat it as non-fatal.
var ErrUnavailable = errors.New("storage: unavailable")

// Store manages the SQLite database connection.
// It is safe for concurrent use by multiple sessions.
type Store struct {
	db *sql.DB
}

// Run is one finished game.
type Run struct {
	ID           int64     `json:"id"`
	Score        int       `json:"score"`
	DurationSecs int       `json:"duration_secs"`
	Growth       int       `json:"growth"`
	Efficiency   int       `json:"efficiency"`
	Difficulty   string    `json:"difficulty"`
	Cause        string    `json:"cause"`
	CreatedAt    time.Time `json:"created_at"`
}

// Summary aggregates the run history.
type Summary struct {
	Runs       int
	HighScore  int
	AvgScore   float64
	LastPlayed time.Time
}

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

	// Create parent directories
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
		CREATE TABLE IF NOT EXISTS high_score (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			score INTEGER NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			score INTEGER NOT NULL,
			duration_secs INTEGER NOT NULL DEFAULT 0,
			growth INTEGER NOT NULL DEFAULT 0,
			efficiency INTEGER NOT NULL DEFAULT 0,
			difficulty TEXT NOT NULL,
			cause TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(score DESC);
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

// LoadHighScore returns the stored best score, or 0 if none was saved.
func (s *Store) LoadHighScore() (int, error) {
	var score int
	err := s.db.QueryRow("SELECT score FROM high_score WHERE id = 1").Scan(&score)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%w: cannot load high score: %w", ErrUnavailable, err)
	}
	return score, nil
}

// SaveHighScore stores score as the new best.
func (s *Store) SaveHighScore(score int) error {
	_, err := s.db.Exec(
		`INSERT INTO high_score (id, score, updated_at) VALUES (1, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(id) DO UPDATE SET score = excluded.score, updated_at = excluded.updated_at`,
		score,
	)
	if err != nil {
		return fmt.Errorf("%w: cannot save high score: %w", ErrUnavailable, err)
	}
	return nil
}

// RecordRun appends a finished run to the history.
func (s *Store) RecordRun(r Run) error {
	_, err := s.db.Exec(
		`INSERT INTO runs (score, duration_secs, growth, efficiency, difficulty, cause)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.Score, r.DurationSecs, r.Growth, r.Efficiency, r.Difficulty, r.Cause,
	)
	if err != nil {
		return fmt.Errorf("%w: cannot record run: %w", ErrUnavailable, err)
	}
	return nil
}

// TopRuns retrieves the best N runs, highest score first.
func (s *Store) TopRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, score, duration_secs, growth, efficiency, difficulty, cause, created_at
		 FROM runs
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot query runs: %w", ErrUnavailable, err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Score, &r.DurationSecs, &r.Growth, &r.Efficiency,
			&r.Difficulty, &r.Cause, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: cannot scan row: %w", ErrUnavailable, err)
		}
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: row iteration error: %w", ErrUnavailable, err)
	}

	return runs, nil
}

// Summary aggregates the run history.
func (s *Store) Summary() (Summary, error) {
	var sum Summary
	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0), MAX(created_at)
		 FROM runs`,
	).Scan(&sum.Runs, &sum.HighScore, &sum.AvgScore, &lastPlayed)
	if err != nil {
		return Summary{}, fmt.Errorf("%w: cannot summarise runs: %w", ErrUnavailable, err)
	}
	sum.LastPlayed = parseTime(lastPlayed)
	return sum, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
