package config

import "time"

// ConfigBuilder provides a fluent API for building Config instances in tests.
// It starts with default values and allows selective overrides.
type ConfigBuilder struct {
	cfg *Config
}

// NewTestConfig creates a new ConfigBuilder with defaults and an in-memory
// history store.
func NewTestConfig() *ConfigBuilder {
	cfg := NewConfig()
	cfg.History.Backend = "memory"
	return &ConfigBuilder{cfg: cfg}
}

// Build returns the built Config instance.
func (b *ConfigBuilder) Build() *Config {
	return b.cfg
}

func (b *ConfigBuilder) WithWorkers(n int) *ConfigBuilder {
	b.cfg.Validation.Workers = n
	return b
}

func (b *ConfigBuilder) WithHistory(backend, path string) *ConfigBuilder {
	b.cfg.History.Enabled = true
	b.cfg.History.Backend = backend
	b.cfg.History.SQLite.Path = path
	return b
}

func (b *ConfigBuilder) WithRetention(days int, schedule string) *ConfigBuilder {
	b.cfg.History.Retention.Days = days
	b.cfg.History.Retention.Schedule = schedule
	return b
}

func (b *ConfigBuilder) WithGitAuth(authType, token, keyPath string) *ConfigBuilder {
	b.cfg.Git.Auth = GitAuthConfig{Type: authType, Token: token, SSHKeyPath: keyPath}
	return b
}

func (b *ConfigBuilder) WithLogging(level, format string) *ConfigBuilder {
	b.cfg.Telemetry.Logging.Level = level
	b.cfg.Telemetry.Logging.Format = format
	return b
}

func (b *ConfigBuilder) WithTracing(enabled bool, endpoint string) *ConfigBuilder {
	b.cfg.Telemetry.Tracing.Enabled = enabled
	b.cfg.Telemetry.Tracing.Endpoint = endpoint
	return b
}

func (b *ConfigBuilder) WithDebounce(d time.Duration) *ConfigBuilder {
	b.cfg.Watch.Debounce = d
	return b
}

// MinimalConfig returns the smallest valid configuration.
func MinimalConfig() *Config {
	return NewTestConfig().Build()
}
