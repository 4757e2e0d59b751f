package history

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"romshelf/internal/config"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current schema version. Bump this when the schema
// changes; users must delete the database afterwards.
const schemaVersion = 1

// ErrSchemaMismatch indicates the database schema version doesn't match the
// expected version.
var ErrSchemaMismatch = errors.New("schema version mismatch")

// Store persists scan runs and their per-file results in SQLite.
type Store struct {
	db   *sql.DB
	path string
}

const (
	sqliteBusyCode          = 5
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond
)

func ensureContext(ctx context.Context) context.Context {
	if ctx != nil {
		return ctx
	}
	return context.Background()
}

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code() == sqliteBusyCode {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

func retryOnBusy(ctx context.Context, op func() error) error {
	delay := busyRetryInitialBackoff
	var lastErr error
	for attempt := 0; attempt < busyRetryAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !isSQLiteBusy(lastErr) || attempt == busyRetryAttempts-1 {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		if next := delay * 2; next <= busyRetryMaxBackoff {
			delay = next
		}
	}
	return lastErr
}

func (s *Store) execWithRetry(ctx context.Context, query string, args ...any) error {
	ctx = ensureContext(ctx)
	return retryOnBusy(ctx, func() error {
		_, err := s.db.ExecContext(ctx, query, args...)
		return err
	})
}

// Open initializes or connects to the scan history database under the
// configured data directory.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := filepath.Join(cfg.Paths.DataDir, "history.db")
	db, err := sql.Open("sqlite", dbPath)
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

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database connection.
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

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		return s.createSchema(ctx)
	}

	var version int
	err = s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}

	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (delete %s)",
			ErrSchemaMismatch, version, schemaVersion, s.path)
	}

	return nil
}

func (s *Store) createSchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}
	return nil
}

// RecordRun persists a completed run together with its per-file results.
func (s *Store) RecordRun(ctx context.Context, run Run, results []FileResult) error {
	ctx = ensureContext(ctx)
	return retryOnBusy(ctx, func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin run tx: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO scan_runs (
                id, root, system_name, started_at, finished_at,
                rename_files, remove_invalid, dedup_files,
                matched, mismatched, unmatched, renamed, deleted, failed
            ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			run.ID,
			run.Root,
			run.SystemName,
			run.StartedAt.UTC().Format(time.RFC3339Nano),
			run.FinishedAt.UTC().Format(time.RFC3339Nano),
			boolToInt(run.RenameFiles),
			boolToInt(run.RemoveInvalid),
			boolToInt(run.DedupFiles),
			run.Matched,
			run.Mismatched,
			run.Unmatched,
			run.Renamed,
			run.Deleted,
			run.Failed,
		); err != nil {
			return fmt.Errorf("insert run: %w", err)
		}

		for _, result := range results {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO scan_results (run_id, path, outcome, action, detail, logged_at)
                 VALUES (?, ?, ?, ?, ?, ?)`,
				run.ID,
				result.Path,
				result.Outcome,
				result.Action,
				result.Detail,
				run.FinishedAt.UTC().Format(time.RFC3339Nano),
			); err != nil {
				return fmt.Errorf("insert result: %w", err)
			}
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit run: %w", err)
		}
		return nil
	})
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	ctx = ensureContext(ctx)
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, root, system_name, started_at, finished_at,
                rename_files, remove_invalid, dedup_files,
                matched, mismatched, unmatched, renamed, deleted, failed
         FROM scan_runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// GetRun returns a single run and its per-file results.
func (s *Store) GetRun(ctx context.Context, id string) (Run, []FileResult, error) {
	ctx = ensureContext(ctx)
	row := s.db.QueryRowContext(ctx,
		`SELECT id, root, system_name, started_at, finished_at,
                rename_files, remove_invalid, dedup_files,
                matched, mismatched, unmatched, renamed, deleted, failed
         FROM scan_runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, nil, fmt.Errorf("run %s not found", id)
	}
	if err != nil {
		return Run{}, nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, path, outcome, action, detail, logged_at
         FROM scan_results WHERE run_id = ? ORDER BY path`, id)
	if err != nil {
		return Run{}, nil, fmt.Errorf("list results: %w", err)
	}
	defer rows.Close()

	var results []FileResult
	for rows.Next() {
		var (
			result FileResult
			logged string
		)
		if err := rows.Scan(&result.RunID, &result.Path, &result.Outcome, &result.Action, &result.Detail, &logged); err != nil {
			return Run{}, nil, fmt.Errorf("scan result row: %w", err)
		}
		result.LoggedAt, _ = time.Parse(time.RFC3339Nano, logged)
		results = append(results, result)
	}
	return run, results, rows.Err()
}

// Prune removes the oldest runs until at most keep remain. Results follow
// their run via the foreign key cascade.
func (s *Store) Prune(ctx context.Context, keep int) error {
	if keep <= 0 {
		return nil
	}
	return s.execWithRetry(ensureContext(ctx),
		`DELETE FROM scan_runs WHERE id NOT IN (
            SELECT id FROM scan_runs ORDER BY started_at DESC LIMIT ?
        )`, keep)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (Run, error) {
	var (
		run                   Run
		started, finished     string
		rename, remove, dedup int
	)
	if err := row.Scan(
		&run.ID, &run.Root, &run.SystemName, &started, &finished,
		&rename, &remove, &dedup,
		&run.Matched, &run.Mismatched, &run.Unmatched,
		&run.Renamed, &run.Deleted, &run.Failed,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, err
		}
		return Run{}, fmt.Errorf("scan run row: %w", err)
	}
	run.StartedAt, _ = time.Parse(time.RFC3339Nano, started)
	run.FinishedAt, _ = time.Parse(time.RFC3339Nano, finished)
	run.RenameFiles = rename != 0
	run.RemoveInvalid = remove != 0
	run.DedupFiles = dedup != 0
	return run, nil
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
