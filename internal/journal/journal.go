package journal

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Outcome labels for processed entries.
const (
	OutcomeUpdated = "updated"
	OutcomeSkipped = "skipped"
)

// Store manages run-history persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Run summarizes one batch run.
type Run struct {
	ID          string
	CatalogPath string
	StartedAt   time.Time
	FinishedAt  *time.Time
	Pending     int
	Updated     int
	Skipped     int
	Interrupted bool
}

// EntryOutcome records what happened to a single catalog entry during a run.
type EntryOutcome struct {
	RunID      string
	EntryName  string
	AudioFile  string
	Outcome    string
	Detail     string
	RecordedAt time.Time
}

// Open initializes or connects to the journal database at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("ensure journal directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// BeginRun records the start of a batch run and returns its identifier.
func (s *Store) BeginRun(ctx context.Context, catalogPath string, pending int) (string, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO runs (id, catalog_path, started_at, pending) VALUES (?, ?, ?, ?)",
		id, catalogPath, now(), pending,
	)
	if err != nil {
		return "", fmt.Errorf("record run start: %w", err)
	}
	return id, nil
}

// RecordOutcome appends one processed-entry outcome to the run.
func (s *Store) RecordOutcome(ctx context.Context, runID, entryName, audioFile, outcome, detail string) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO outcomes (run_id, entry_name, audio_file, outcome, detail, recorded_at) VALUES (?, ?, ?, ?, ?, ?)",
		runID, entryName, audioFile, outcome, detail, now(),
	)
	if err != nil {
		return fmt.Errorf("record outcome: %w", err)
	}
	return nil
}

// FinishRun closes out a run with its final counters.
func (s *Store) FinishRun(ctx context.Context, runID string, updated, skipped int, interrupted bool) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE runs SET finished_at = ?, updated = ?, skipped = ?, interrupted = ? WHERE id = ?",
		now(), updated, skipped, boolToInt(interrupted), runID,
	)
	if err != nil {
		return fmt.Errorf("record run finish: %w", err)
	}
	affected, err := res.RowsAffected()
	if err == nil && affected == 0 {
		return fmt.Errorf("finish run: unknown run id %q", runID)
	}
	return nil
}

// RecentRuns returns the most recent runs, newest first.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, catalog_path, started_at, finished_at, pending, updated, skipped, interrupted
		 FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			run         Run
			started     string
			finished    sql.NullString
			interrupted int
		)
		if err := rows.Scan(&run.ID, &run.CatalogPath, &started, &finished, &run.Pending, &run.Updated, &run.Skipped, &interrupted); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.StartedAt = parseTime(started)
		if finished.Valid {
			ts := parseTime(finished.String)
			run.FinishedAt = &ts
		}
		run.Interrupted = interrupted != 0
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Outcomes returns the per-entry outcomes for a run in recorded order.
func (s *Store) Outcomes(ctx context.Context, runID string) ([]EntryOutcome, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, entry_name, audio_file, outcome, detail, recorded_at
		 FROM outcomes WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("query outcomes: %w", err)
	}
	defer rows.Close()

	var outcomes []EntryOutcome
	for rows.Next() {
		var (
			outcome  EntryOutcome
			recorded string
		)
		if err := rows.Scan(&outcome.RunID, &outcome.EntryName, &outcome.AudioFile, &outcome.Outcome, &outcome.Detail, &recorded); err != nil {
			return nil, fmt.Errorf("scan outcome: %w", err)
		}
		outcome.RecordedAt = parseTime(recorded)
		outcomes = append(outcomes, outcome)
	}
	return outcomes, rows.Err()
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func parseTime(value string) time.Time {
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}
	}
	return ts
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
