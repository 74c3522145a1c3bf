package config

import "time"

// Config is the root configuration structure for the lrol toolchain.
// It contains the parser and analyzer settings, batch validation, rule
// sources, validation history and telemetry.
type Config struct {
	// Parser contains document parser limits.
	Parser ParserConfig `yaml:"parser"`

	// Analyzer contains semantic analysis settings including vocabulary
	// overrides.
	Analyzer AnalyzerConfig `yaml:"analyzer"`

	// Validation contains batch validation settings for directories.
	Validation ValidationConfig `yaml:"validation"`

	// Watch contains settings for re-validating rule files on change.
	Watch WatchConfig `yaml:"watch"`

	// History contains configuration for recording validation runs.
	History HistoryConfig `yaml:"history"`

	// Git contains configuration for validating rules from a Git repository.
	Git GitConfig `yaml:"git"`

	// Telemetry contains configuration for observability including logging,
	// metrics, and distributed tracing.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ParserConfig contains document parser configuration.
type ParserConfig struct {
	// MaxFileSize is the largest rule file, in bytes, the parser accepts.
	// Default: 10485760 (10MB)
	MaxFileSize int64 `yaml:"max_file_size"`

	// ContextLines is how many source lines surround the error line in the
	// context snippet of a syntax error. A negative value disables it.
	// Default: 2
	ContextLines int `yaml:"context_lines"`
}

// AnalyzerConfig contains semantic analyzer configuration.
type AnalyzerConfig struct {
	// DedupeWeightCheck reports an out-of-range weight once instead of
	// once per check pass.
	// Default: false
	DedupeWeightCheck bool `yaml:"dedupe_weight_check"`

	// ComparisonOperators replaces the accepted comparison operators.
	// Empty keeps the built-in set (>, <, >=, <=, ==, !=, IN, NOT IN, LIKE, NOT LIKE).
	ComparisonOperators []string `yaml:"comparison_operators"`

	// AggregationKinds replaces the accepted aggregation kinds.
	// Empty keeps the built-in set: sum, count, avg, min, max
	AggregationKinds []string `yaml:"aggregation_kinds"`

	// RecommendedActions lists the action types insights reports do not warn
	// about. Empty keeps flag_transaction, block_transaction and send_alert.
	RecommendedActions []string `yaml:"recommended_actions"`
}

// ValidationConfig contains batch validation configuration.
type ValidationConfig struct {
	// Workers is the number of files validated concurrently.
	// Default: number of CPUs
	Workers int `yaml:"workers"`

	// CacheSize is the number of reports kept in the content-addressed
	// report cache. 0 disables the cache.
	// Default: 1024
	CacheSize int `yaml:"cache_size"`

	// FollowSymlinks resolves symbolic links while scanning directories.
	// Default: false
	FollowSymlinks bool `yaml:"follow_symlinks"`

	// SkipHidden ignores files and directories whose names start with a dot.
	// Default: true
	SkipHidden bool `yaml:"skip_hidden"`

	// Recursive descends into subdirectories.
	// Default: false
	Recursive bool `yaml:"recursive"`
}

// WatchConfig contains file watch configuration.
type WatchConfig struct {
	// Debounce is how long to wait after the last change event before
	// re-validating.
	// Default: 100ms
	Debounce time.Duration `yaml:"debounce"`
}

// HistoryConfig contains validation history configuration.
type HistoryConfig struct {
	// Enabled controls whether validation runs are recorded.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Backend specifies the history store.
	// Options: "memory", "sqlite"
	// Default: "sqlite"
	Backend string `yaml:"backend"`

	// SQLite contains SQLite-specific configuration.
	SQLite SQLiteConfig `yaml:"sqlite"`

	// Retention contains retention policy configuration.
	Retention RetentionConfig `yaml:"retention"`
}

// SQLiteConfig contains SQLite-specific configuration.
type SQLiteConfig struct {
	// Driver selects the database/sql driver.
	// Options: "sqlite3" (mattn/go-sqlite3, cgo), "sqlite" (modernc.org/sqlite)
	// Default: "sqlite"
	Driver string `yaml:"driver"`

	// Path is the file path for the SQLite database.
	// Default: "data/history.db"
	Path string `yaml:"path"`

	// WALMode enables Write-Ahead Logging mode.
	// Default: true
	WALMode bool `yaml:"wal_mode"`

	// BusyTimeout is the duration to wait when the database is locked.
	// Default: 5s
	BusyTimeout time.Duration `yaml:"busy_timeout"`
}

// RetentionConfig contains history retention configuration.
type RetentionConfig struct {
	// Days is the number of days to keep validation runs.
	// 0 keeps runs forever.
	// Default: 30
	Days int `yaml:"days"`

	// MaxRecords is the maximum number of runs to keep. 0 means unlimited.
	// Default: 0
	MaxRecords int64 `yaml:"max_records"`

	// Schedule is a cron expression for scheduled pruning.
	// Default: "0 3 * * *" (daily at 3 AM)
	Schedule string `yaml:"schedule"`
}

// GitConfig configures loading rule files from a Git repository.
type GitConfig struct {
	// Repository URL (HTTPS or SSH).
	// Example: "https://github.com/company/rules.git"
	Repository string `yaml:"repository"`

	// Branch to check out.
	// Default: "main"
	Branch string `yaml:"branch"`

	// Path within the repository to the rule files.
	// Default: "" (root directory)
	Path string `yaml:"path"`

	// Auth configures Git authentication.
	Auth GitAuthConfig `yaml:"auth"`

	// Clone configures repository cloning.
	Clone GitCloneConfig `yaml:"clone"`

	// Timeout for Git operations.
	// Default: 30s
	Timeout time.Duration `yaml:"timeout"`
}

// GitAuthConfig configures Git authentication.
type GitAuthConfig struct {
	// Type: "token", "ssh", "none"
	// Default: "none"
	Type string `yaml:"type"`

	// Token for HTTPS authentication.
	// Required when Type is "token".
	Token string `yaml:"token"`

	// SSHKeyPath for SSH authentication.
	// Required when Type is "ssh".
	SSHKeyPath string `yaml:"ssh_key_path"`

	// SSHKeyPassphrase for encrypted SSH keys.
	SSHKeyPassphrase string `yaml:"ssh_key_passphrase"`
}

// GitCloneConfig configures repository cloning.
type GitCloneConfig struct {
	// LocalPath where the repository is cloned.
	// Default: system temp directory
	LocalPath string `yaml:"local_path"`

	// Depth for shallow clones (0 = full clone).
	// Default: 1
	Depth int `yaml:"depth"`

	// CleanOnStart removes the local repository before cloning.
	// Default: false
	CleanOnStart bool `yaml:"clean_on_start"`
}

// TelemetryConfig contains observability configuration.
type TelemetryConfig struct {
	// Logging contains logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains metrics collection configuration.
	Metrics MetricsConfig `yaml:"metrics"`

	// Tracing contains distributed tracing configuration.
	Tracing TracingConfig `yaml:"tracing"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level to emit.
	// Options: "debug", "info", "warn", "error"
	// Default: "warn"
	Level string `yaml:"level"`

	// Format controls the log output format.
	// Options: "json", "text", "console"
	// Default: "console"
	Format string `yaml:"format"`

	// AddSource includes file and line number in log entries.
	// Default: false
	AddSource bool `yaml:"add_source"`

	// File writes logs to a rotated file instead of stderr.
	File string `yaml:"file"`

	// MaxSizeMB is the size at which the log file is rotated.
	// Default: 100
	MaxSizeMB int `yaml:"max_size_mb"`

	// MaxBackups is the number of rotated files to keep.
	// Default: 3
	MaxBackups int `yaml:"max_backups"`

	// MaxAgeDays is how long rotated files are kept.
	// Default: 28
	MaxAgeDays int `yaml:"max_age_days"`
}

// MetricsConfig contains metrics collection configuration.
type MetricsConfig struct {
	// Enabled controls whether metrics are collected and served.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// ListenAddress is where the watch command serves metrics.
	// Default: "127.0.0.1:9090"
	ListenAddress string `yaml:"listen_address"`

	// Path is the HTTP path for the Prometheus metrics endpoint.
	// Default: "/metrics"
	Path string `yaml:"path"`

	// Namespace is the metric name prefix.
	// Default: "lrol"
	Namespace string `yaml:"namespace"`

	// Subsystem is the metric subsystem name.
	// Default: "validator"
	Subsystem string `yaml:"subsystem"`
}

// TracingConfig contains distributed tracing configuration.
type TracingConfig struct {
	// Enabled controls whether distributed tracing is active.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Sampler determines the sampling strategy.
	// Options: "always", "never", "ratio"
	// Default: "ratio"
	Sampler string `yaml:"sampler"`

	// SampleRatio is the fraction of traces to sample (0.0 to 1.0).
	// Default: 0.1
	SampleRatio float64 `yaml:"sample_ratio"`

	// Endpoint is the OTLP gRPC collector endpoint.
	// Example: "localhost:4317"
	Endpoint string `yaml:"endpoint"`

	// ServiceName is the service name in traces.
	// Default: "lrol"
	ServiceName string `yaml:"service_name"`

	// Insecure disables TLS for the OTLP connection.
	// Default: true
	Insecure bool `yaml:"insecure"`

	// Timeout is the timeout for OTLP exports.
	// Default: 10s
	Timeout time.Duration `yaml:"timeout"`
}
