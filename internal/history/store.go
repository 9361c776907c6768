// Package history records past gentags runs in a local SQLite
// database. Each row captures what a run was asked to do and how it
// went; the matched file list itself is never persisted, so history is
// bookkeeping, not a scan cache.
package history

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"database/sql"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Run statuses.
const (
	StatusOK        = "ok"
	StatusIndexOnly = "index-only"
	StatusFailed    = "failed"
)

// Run is a single recorded gentags invocation.
type Run struct {
	ID        string
	StartedAt time.Time
	Duration  time.Duration
	Dirs      []string
	Types     []string
	Excludes  []string
	Depth     int
	IndexFile string
	FileCount int
	Status    string
	Error     string
}

// Store manages the SQLite database holding run history.
type Store struct {
	db     *sql.DB
	dbPath string
}

// NewStore opens (and initializes if needed) the history database at
// dbPath. Pass ":memory:" for an ephemeral store.
func NewStore(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return &Store{db: db, dbPath: dbPath}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// RecordRun inserts a run into the history. A missing ID is filled in
// with a fresh UUID; the (possibly generated) ID is returned.
func (s *Store) RecordRun(run Run) (string, error) {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}

	dirs, err := json.Marshal(run.Dirs)
	if err != nil {
		return "", fmt.Errorf("marshal dirs: %w", err)
	}
	types, err := json.Marshal(run.Types)
	if err != nil {
		return "", fmt.Errorf("marshal types: %w", err)
	}
	excludes, err := json.Marshal(run.Excludes)
	if err != nil {
		return "", fmt.Errorf("marshal excludes: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO runs (id, started_at, duration_ms, dirs, types, excludes, depth, index_file, file_count, status, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.StartedAt,
		run.Duration.Milliseconds(),
		string(dirs),
		string(types),
		string(excludes),
		run.Depth,
		run.IndexFile,
		run.FileCount,
		run.Status,
		run.Error,
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	return run.ID, nil
}

// RecentRuns returns up to limit runs, newest first. limit <= 0 means
// no limit.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	query := `
		SELECT id, started_at, duration_ms, dirs, types, excludes, depth, index_file, file_count, status, error
		FROM runs
		ORDER BY started_at DESC`
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var durationMs int64
		var dirs, types, excludes string

		if err := rows.Scan(
			&run.ID,
			&run.StartedAt,
			&durationMs,
			&dirs,
			&types,
			&excludes,
			&run.Depth,
			&run.IndexFile,
			&run.FileCount,
			&run.Status,
			&run.Error,
		); err != nil {
			return nil, fmt.Errorf("scan run row: %w", err)
		}

		run.Duration = time.Duration(durationMs) * time.Millisecond
		if err := json.Unmarshal([]byte(dirs), &run.Dirs); err != nil {
			return nil, fmt.Errorf("unmarshal dirs: %w", err)
		}
		if err := json.Unmarshal([]byte(types), &run.Types); err != nil {
			return nil, fmt.Errorf("unmarshal types: %w", err)
		}
		if err := json.Unmarshal([]byte(excludes), &run.Excludes); err != nil {
			return nil, fmt.Errorf("unmarshal excludes: %w", err)
		}

		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// Count returns the total number of recorded runs.
func (s *Store) Count() (int, error) {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM runs").Scan(&count); err != nil {
		return 0, fmt.Errorf("count runs: %w", err)
	}
	return count, nil
}

// Clear deletes all recorded runs and returns how many were removed.
func (s *Store) Clear() (int64, error) {
	result, err := s.db.Exec("DELETE FROM runs")
	if err != nil {
		return 0, fmt.Errorf("clear runs: %w", err)
	}
	return result.RowsAffected()
}
