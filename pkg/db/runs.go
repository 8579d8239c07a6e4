package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Run represents one scrape invocation.
type Run struct {
	RunID        int64
	RunKey       string
	CreatedAt    time.Time
	WordCount    int
	SuccessCount int
	FailedCount  int
	EntryCount   int
	ParseMode    string
	OutputDir    string
}

// RunResult is the outcome of one word within a run.
type RunResult struct {
	WordID         int64
	Word           string
	Status         string
	StatusCode     int
	ErrorType      string
	ErrorMessage   string
	EntryCount     int
	DiscardedCount int
	FromCache      bool
}

const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// CreateRun inserts a run with a fresh uuid key.
func (db *DB) CreateRun(wordCount int, parseMode, outputDir string) (*Run, error) {
	key := uuid.NewString()
	result, err := db.Exec(`
		INSERT INTO runs (run_key, word_count, parse_mode, output_dir)
		VALUES (?, ?, ?, ?)
	`, key, wordCount, parseMode, outputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create run: %w", err)
	}

	runID, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get run ID: %w", err)
	}
	return db.GetRun(runID)
}

// UpdateRunStats updates the counters of a run.
func (db *DB) UpdateRunStats(runID int64, successCount, failedCount, entryCount int) error {
	_, err := db.Exec(`
		UPDATE runs
		SET success_count = ?, failed_count = ?, entry_count = ?
		WHERE run_id = ?
	`, successCount, failedCount, entryCount, runID)
	if err != nil {
		return fmt.Errorf("failed to update run stats: %w", err)
	}
	return nil
}

// InsertRunResult records the result of a word in a run. A second result for
// the same word replaces the first.
func (db *DB) InsertRunResult(runID int64, r RunResult) error {
	_, err := db.Exec(`
		INSERT INTO run_results (run_id, word_id, status, status_code, error_type, error_message, entry_count, discarded_count, from_cache)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(run_id, word_id) DO UPDATE SET
			status = excluded.status,
			status_code = excluded.status_code,
			error_type = excluded.error_type,
			error_message = excluded.error_message,
			entry_count = excluded.entry_count,
			discarded_count = excluded.discarded_count,
			from_cache = excluded.from_cache
	`, runID, r.WordID, r.Status, r.StatusCode, NewNullString(r.ErrorType), NewNullString(r.ErrorMessage),
		r.EntryCount, r.DiscardedCount, r.FromCache)
	if err != nil {
		return fmt.Errorf("failed to insert run result: %w", err)
	}
	return nil
}

const runColumns = `run_id, run_key, created_at, word_count, success_count, failed_count, entry_count, parse_mode, output_dir`

func scanRun(row interface{ Scan(...any) error }) (*Run, error) {
	var run Run
	var mode sql.NullString
	err := row.Scan(&run.RunID, &run.RunKey, &run.CreatedAt, &run.WordCount,
		&run.SuccessCount, &run.FailedCount, &run.EntryCount, &mode, &run.OutputDir)
	if err != nil {
		return nil, err
	}
	run.ParseMode = mode.String
	return &run, nil
}

// GetRun retrieves a run by its ID
func (db *DB) GetRun(runID int64) (*Run, error) {
	run, err := scanRun(db.QueryRow("SELECT "+runColumns+" FROM runs WHERE run_id = ?", runID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run %d: %w", runID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return run, nil
}

// ListRuns returns the most recent runs first. limit <= 0 returns all.
func (db *DB) ListRuns(limit int) ([]Run, error) {
	query := "SELECT " + runColumns + " FROM runs ORDER BY run_id DESC"
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, *run)
	}
	return runs, rows.Err()
}

// GetRunResults retrieves the per-word results of a run in insertion order.
func (db *DB) GetRunResults(runID int64) ([]RunResult, error) {
	rows, err := db.Query(`
		SELECT r.word_id, w.word, r.status, r.status_code, r.error_type, r.error_message,
			r.entry_count, r.discarded_count, r.from_cache
		FROM run_results r
		JOIN words w ON w.word_id = r.word_id
		WHERE r.run_id = ?
		ORDER BY r.result_id
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get run results: %w", err)
	}
	defer rows.Close()

	var results []RunResult
	for rows.Next() {
		var r RunResult
		var statusCode sql.NullInt64
		var errorType, errorMessage sql.NullString
		if err := rows.Scan(&r.WordID, &r.Word, &r.Status, &statusCode, &errorType, &errorMessage,
			&r.EntryCount, &r.DiscardedCount, &r.FromCache); err != nil {
			return nil, fmt.Errorf("failed to scan run result: %w", err)
		}
		r.StatusCode = int(statusCode.Int64)
		r.ErrorType = errorType.String
		r.ErrorMessage = errorMessage.String
		results = append(results, r)
	}
	return results, rows.Err()
}
