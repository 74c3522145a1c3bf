package config

import (
	"runtime"
	"time"
)

// Default values for configuration fields.
const (
	// Parser defaults
	DefaultMaxFileSize  = int64(10 * 1024 * 1024) // 10MB
	DefaultContextLines = 2

	// Validation defaults
	DefaultValidationCacheSize  = 1024
	DefaultValidationSkipHidden = true

	// Watch defaults
	DefaultWatchDebounce = 100 * time.Millisecond

	// History defaults
	DefaultHistoryBackend           = "sqlite"
	DefaultHistorySQLiteDriver      = "sqlite"
	DefaultHistorySQLitePath        = "data/history.db"
	DefaultHistorySQLiteWALMode     = true
	DefaultHistorySQLiteBusyTimeout = 5 * time.Second
	DefaultHistoryRetentionDays     = 30
	DefaultHistoryRetentionSchedule = "0 3 * * *"

	// Git defaults
	DefaultGitBranch     = "main"
	DefaultGitAuthType   = "none"
	DefaultGitCloneDepth = 1
	DefaultGitTimeout    = 30 * time.Second

	// Telemetry defaults
	DefaultLoggingLevel         = "warn"
	DefaultLoggingFormat        = "console"
	DefaultLoggingMaxSizeMB     = 100
	DefaultLoggingMaxBackups    = 3
	DefaultLoggingMaxAgeDays    = 28
	DefaultMetricsListenAddress = "127.0.0.1:9090"
	DefaultMetricsPath          = "/metrics"
	DefaultMetricsNamespace     = "lrol"
	DefaultMetricsSubsystem     = "validator"
	DefaultTracingSampler       = "ratio"
	DefaultTracingSampleRatio   = 0.1
	DefaultTracingServiceName   = "lrol"
	DefaultTracingInsecure      = true
	DefaultTracingTimeout       = 10 * time.Second
)

// NewConfig returns a configuration with every default applied. Booleans
// that default to true are set here because a zero value cannot tell them
// apart from an explicit false; LoadConfig unmarshals on top of this.
func NewConfig() *Config {
	cfg := &Config{}
	cfg.Validation.SkipHidden = DefaultValidationSkipHidden
	cfg.History.SQLite.WALMode = DefaultHistorySQLiteWALMode
	cfg.Telemetry.Tracing.Insecure = DefaultTracingInsecure
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills zero-valued fields with their defaults.
func ApplyDefaults(cfg *Config) {
	// Parser defaults
	if cfg.Parser.MaxFileSize == 0 {
		cfg.Parser.MaxFileSize = DefaultMaxFileSize
	}
	if cfg.Parser.ContextLines == 0 {
		cfg.Parser.ContextLines = DefaultContextLines
	}

	// Validation defaults
	if cfg.Validation.Workers == 0 {
		cfg.Validation.Workers = runtime.NumCPU()
	}
	if cfg.Validation.CacheSize == 0 {
		cfg.Validation.CacheSize = DefaultValidationCacheSize
	}

	// Watch defaults
	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = DefaultWatchDebounce
	}

	// History defaults
	if cfg.History.Backend == "" {
		cfg.History.Backend = DefaultHistoryBackend
	}
	if cfg.History.SQLite.Driver == "" {
		cfg.History.SQLite.Driver = DefaultHistorySQLiteDriver
	}
	if cfg.History.SQLite.Path == "" {
		cfg.History.SQLite.Path = DefaultHistorySQLitePath
	}
	if cfg.History.SQLite.BusyTimeout == 0 {
		cfg.History.SQLite.BusyTimeout = DefaultHistorySQLiteBusyTimeout
	}
	if cfg.History.Retention.Days == 0 {
		cfg.History.Retention.Days = DefaultHistoryRetentionDays
	}
	if cfg.History.Retention.Schedule == "" {
		cfg.History.Retention.Schedule = DefaultHistoryRetentionSchedule
	}

	// Git defaults
	if cfg.Git.Branch == "" {
		cfg.Git.Branch = DefaultGitBranch
	}
	if cfg.Git.Auth.Type == "" {
		cfg.Git.Auth.Type = DefaultGitAuthType
	}
	if cfg.Git.Clone.Depth == 0 {
		cfg.Git.Clone.Depth = DefaultGitCloneDepth
	}
	if cfg.Git.Timeout == 0 {
		cfg.Git.Timeout = DefaultGitTimeout
	}

	// Telemetry defaults
	applyTelemetryDefaults(&cfg.Telemetry)
}

func applyTelemetryDefaults(cfg *TelemetryConfig) {
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = DefaultLoggingFormat
	}
	if cfg.Logging.MaxSizeMB == 0 {
		cfg.Logging.MaxSizeMB = DefaultLoggingMaxSizeMB
	}
	if cfg.Logging.MaxBackups == 0 {
		cfg.Logging.MaxBackups = DefaultLoggingMaxBackups
	}
	if cfg.Logging.MaxAgeDays == 0 {
		cfg.Logging.MaxAgeDays = DefaultLoggingMaxAgeDays
	}

	if cfg.Metrics.ListenAddress == "" {
		cfg.Metrics.ListenAddress = DefaultMetricsListenAddress
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = DefaultMetricsPath
	}
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Metrics.Subsystem == "" {
		cfg.Metrics.Subsystem = DefaultMetricsSubsystem
	}

	if cfg.Tracing.Sampler == "" {
		cfg.Tracing.Sampler = DefaultTracingSampler
	}
	if cfg.Tracing.SampleRatio == 0 {
		cfg.Tracing.SampleRatio = DefaultTracingSampleRatio
	}
	if cfg.Tracing.ServiceName == "" {
		cfg.Tracing.ServiceName = DefaultTracingServiceName
	}
	if cfg.Tracing.Timeout == 0 {
		cfg.Tracing.Timeout = DefaultTracingTimeout
	}
}
