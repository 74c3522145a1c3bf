package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3" // registers "sqlite3" (cgo)
	_ "modernc.org/sqlite"          // registers "sqlite" (pure Go)

	"loci-hq/lrol/pkg/config"
	"loci-hq/lrol/pkg/history"
)

const (
	// DriverCGO selects github.com/mattn/go-sqlite3.
	DriverCGO = "sqlite3"

	// DriverPureGo selects modernc.org/sqlite.
	DriverPureGo = "sqlite"
)

// SQLiteStore implements history.Store on SQLite.
type SQLiteStore struct {
	db     *sql.DB
	config *config.SQLiteConfig
	logger *slog.Logger
}

var _ history.Store = (*SQLiteStore)(nil)

// NewSQLiteStore opens the database, applies pragmas and creates the schema.
func NewSQLiteStore(cfg *config.SQLiteConfig, logger *slog.Logger) (*SQLiteStore, error) {
	if cfg == nil {
		return nil, newStorageError("sqlite", "open", fmt.Errorf("config is required"))
	}
	if cfg.Path == "" {
		return nil, newStorageError("sqlite", "open", fmt.Errorf("path is required"))
	}
	driver := cfg.Driver
	if driver == "" {
		driver = DriverPureGo
	}
	if driver != DriverCGO && driver != DriverPureGo {
		return nil, newStorageError("sqlite", "open", fmt.Errorf("unknown driver %q", driver))
	}
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "history.storage.sqlite")

	if cfg.Path != ":memory:" {
		if dir := filepath.Dir(cfg.Path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, newStorageError("sqlite", "create_dir", err)
			}
		}
	}

	db, err := sql.Open(driver, cfg.Path)
	if err != nil {
		return nil, newStorageError("sqlite", "open", err)
	}
	// One connection keeps pragmas and :memory: databases consistent, and
	// SQLite has a single writer anyway.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	s := &SQLiteStore{db: db, config: cfg, logger: logger}
	if err := s.initialize(); err != nil {
		_ = db.Close()
		return nil, err
	}

	logger.Debug("history store opened",
		"driver", driver,
		"path", cfg.Path,
		"wal_mode", cfg.WALMode,
	)
	return s, nil
}

func (s *SQLiteStore) initialize() error {
	if s.config.WALMode {
		if _, err := s.db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
			return newStorageError("sqlite", "enable_wal", err)
		}
	}
	if ms := s.config.BusyTimeout.Milliseconds(); ms > 0 {
		if _, err := s.db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d;", ms)); err != nil {
			return newStorageError("sqlite", "set_busy_timeout", err)
		}
	}

	if _, err := s.db.Exec(schema); err != nil {
		return newStorageError("sqlite", "create_schema", err)
	}
	if _, err := s.db.Exec(insertSchemaVersion, SchemaVersion); err != nil {
		return newStorageError("sqlite", "insert_schema_version", err)
	}

	var version int
	if err := s.db.QueryRow(getSchemaVersion).Scan(&version); err != nil {
		return newStorageError("sqlite", "get_schema_version", err)
	}
	if version != SchemaVersion {
		return newStorageError("sqlite", "schema_version_mismatch",
			fmt.Errorf("expected schema version %d, got %d", SchemaVersion, version))
	}
	return nil
}

// Ping checks that the database is reachable. It serves as a health check.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return newStorageError("sqlite", "ping", err)
	}
	return nil
}

// SaveRun implements history.Store.
func (s *SQLiteStore) SaveRun(ctx context.Context, run *history.Run, results []history.FileResult) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return newStorageError("sqlite", "save_run", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, started_at, duration_ns, source, commit_sha, files, valid, invalid)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.StartedAt.UnixNano(), int64(run.Duration), run.Source, run.Commit,
		run.Files, run.Valid, run.Invalid,
	)
	if err != nil {
		return newStorageError("sqlite", "save_run", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO file_results (run_id, path, valid, error, parser_error, analyzer_errors, model_id, digest)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return newStorageError("sqlite", "save_run", err)
	}
	defer stmt.Close()

	for _, fr := range results {
		analyzerErrors, err := json.Marshal(nonNil(fr.AnalyzerErrors))
		if err != nil {
			return newStorageError("sqlite", "save_run", err)
		}
		_, err = stmt.ExecContext(ctx,
			run.ID, fr.Path, boolToInt(fr.Valid), fr.Error, fr.ParserError,
			string(analyzerErrors), fr.ModelID, fr.Digest,
		)
		if err != nil {
			return newStorageError("sqlite", "save_run", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return newStorageError("sqlite", "save_run", err)
	}
	return nil
}

const runColumns = `id, started_at, duration_ns, source, commit_sha, files, valid, invalid`

// GetRun implements history.Store.
func (s *SQLiteStore) GetRun(ctx context.Context, id string) (*history.Run, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, history.ErrRunNotFound
	}
	if err != nil {
		return nil, newStorageError("sqlite", "get_run", err)
	}
	return run, nil
}

// ListRuns implements history.Store.
func (s *SQLiteStore) ListRuns(ctx context.Context, limit int) ([]*history.Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs ORDER BY started_at DESC, id DESC`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, newStorageError("sqlite", "list_runs", err)
	}
	defer rows.Close()

	runs := []*history.Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, newStorageError("sqlite", "scan", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, newStorageError("sqlite", "list_runs", err)
	}
	return runs, nil
}

// FileResults implements history.Store.
func (s *SQLiteStore) FileResults(ctx context.Context, runID string) ([]history.FileResult, error) {
	if _, err := s.GetRun(ctx, runID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id, path, valid, error, parser_error, analyzer_errors, model_id, digest
		FROM file_results WHERE run_id = ? ORDER BY path`, runID)
	if err != nil {
		return nil, newStorageError("sqlite", "file_results", err)
	}
	defer rows.Close()

	results := []history.FileResult{}
	for rows.Next() {
		var fr history.FileResult
		var valid int64
		var analyzerErrors string
		if err := rows.Scan(&fr.RunID, &fr.Path, &valid, &fr.Error, &fr.ParserError,
			&analyzerErrors, &fr.ModelID, &fr.Digest); err != nil {
			return nil, newStorageError("sqlite", "scan", err)
		}
		fr.Valid = valid != 0
		if err := json.Unmarshal([]byte(analyzerErrors), &fr.AnalyzerErrors); err != nil {
			return nil, newStorageError("sqlite", "scan", err)
		}
		if len(fr.AnalyzerErrors) == 0 {
			fr.AnalyzerErrors = nil
		}
		results = append(results, fr)
	}
	if err := rows.Err(); err != nil {
		return nil, newStorageError("sqlite", "file_results", err)
	}
	return results, nil
}

// DeleteBefore implements history.Store.
func (s *SQLiteStore) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	return s.deleteWhere(ctx, "delete_before",
		`SELECT id FROM runs WHERE started_at < ?`, cutoff.UnixNano())
}

// DeleteOldest implements history.Store.
func (s *SQLiteStore) DeleteOldest(ctx context.Context, n int64) (int64, error) {
	if n <= 0 {
		return 0, nil
	}
	return s.deleteWhere(ctx, "delete_oldest",
		`SELECT id FROM runs ORDER BY started_at ASC, id ASC LIMIT ?`, n)
}

// deleteWhere removes the runs selected by idQuery together with their
// file results.
func (s *SQLiteStore) deleteWhere(ctx context.Context, op, idQuery string, args ...any) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, newStorageError("sqlite", op, err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM file_results WHERE run_id IN (`+idQuery+`)`, args...); err != nil {
		return 0, newStorageError("sqlite", op, err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM runs WHERE id IN (`+idQuery+`)`, args...)
	if err != nil {
		return 0, newStorageError("sqlite", op, err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, newStorageError("sqlite", op, err)
	}
	if err := tx.Commit(); err != nil {
		return 0, newStorageError("sqlite", op, err)
	}
	return deleted, nil
}

// Count implements history.Store.
func (s *SQLiteStore) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM runs`).Scan(&n); err != nil {
		return 0, newStorageError("sqlite", "count", err)
	}
	return n, nil
}

// Close implements history.Store.
func (s *SQLiteStore) Close() error {
	if err := s.db.Close(); err != nil {
		return newStorageError("sqlite", "close", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*history.Run, error) {
	var run history.Run
	var startedAt, duration int64
	err := row.Scan(&run.ID, &startedAt, &duration, &run.Source, &run.Commit,
		&run.Files, &run.Valid, &run.Invalid)
	if err != nil {
		return nil, err
	}
	run.StartedAt = time.Unix(0, startedAt)
	run.Duration = time.Duration(duration)
	return &run, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// isCGOUnavailable reports whether err comes from a go-sqlite3 build without
// cgo.
func isCGOUnavailable(err error) bool {
	return err != nil && strings.Contains(err.Error(), "CGO_ENABLED=0")
}
