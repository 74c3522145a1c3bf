package storage

// SchemaVersion is the current history database schema version.
const SchemaVersion = 1

// Timestamps are stored as unix nanoseconds so both SQLite drivers read
// them back identically.
const schema = `
CREATE TABLE IF NOT EXISTS runs (
    id          TEXT PRIMARY KEY,
    started_at  INTEGER NOT NULL,
    duration_ns INTEGER NOT NULL DEFAULT 0,
    source      TEXT    NOT NULL,
    commit_sha  TEXT    NOT NULL DEFAULT '',
    files       INTEGER NOT NULL,
    valid       INTEGER NOT NULL,
    invalid     INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS file_results (
    run_id          TEXT    NOT NULL,
    path            TEXT    NOT NULL,
    valid           INTEGER NOT NULL,
    error           TEXT    NOT NULL DEFAULT '',
    parser_error    TEXT    NOT NULL DEFAULT '',
    analyzer_errors TEXT    NOT NULL DEFAULT '[]',
    model_id        TEXT    NOT NULL DEFAULT '',
    digest          TEXT    NOT NULL DEFAULT '',
    PRIMARY KEY (run_id, path)
);

CREATE TABLE IF NOT EXISTS schema_version (
    version    INTEGER PRIMARY KEY,
    applied_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);
CREATE INDEX IF NOT EXISTS idx_file_results_model_id ON file_results(model_id);
`

const insertSchemaVersion = `
INSERT INTO schema_version (version, applied_at)
VALUES (?, datetime('now'))
ON CONFLICT(version) DO NOTHING;
`

const getSchemaVersion = `SELECT version FROM schema_version ORDER BY version DESC LIMIT 1;`
