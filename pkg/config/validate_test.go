package config

import (
	"errors"
	"strings"
	"testing"
)

func TestValidate_ValidConfig(t *testing.T) {
	if err := Validate(MinimalConfig()); err != nil {
		t.Errorf("expected valid config to pass validation, got error: %v", err)
	}
}

func TestValidate_MultipleErrors(t *testing.T) {
	err := Validate(&Config{})
	if err == nil {
		t.Fatal("expected validation to fail")
	}

	var verr ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if len(verr.Errors) < 2 {
		t.Errorf("expected multiple errors, got %d", len(verr.Errors))
	}
	if !strings.Contains(verr.Error(), "validation failed with") {
		t.Errorf("error message should mention multiple errors: %s", verr.Error())
	}
}

func TestValidate_Fields(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(*Config)
		errorField string
	}{
		{"negative workers", func(c *Config) { c.Validation.Workers = -1 }, "validation.workers"},
		{"negative cache size", func(c *Config) { c.Validation.CacheSize = -5 }, "validation.cache_size"},
		{"negative debounce", func(c *Config) { c.Watch.Debounce = -1 }, "watch.debounce"},
		{"unknown backend", func(c *Config) { c.History.Backend = "postgres" }, "history.backend"},
		{"unknown driver", func(c *Config) {
			c.History.Backend = "sqlite"
			c.History.SQLite.Driver = "pgx"
		}, "history.sqlite.driver"},
		{"bad cron", func(c *Config) { c.History.Retention.Schedule = "every day" }, "history.retention.schedule"},
		{"negative retention", func(c *Config) { c.History.Retention.Days = -1 }, "history.retention.days"},
		{"token auth without token", func(c *Config) { c.Git.Auth.Type = "token" }, "git.auth.token"},
		{"ssh auth without key", func(c *Config) { c.Git.Auth.Type = "ssh" }, "git.auth.ssh_key_path"},
		{"unknown auth", func(c *Config) { c.Git.Auth.Type = "oauth" }, "git.auth.type"},
		{"bad repository url", func(c *Config) { c.Git.Repository = "ftp://example.com/r.git" }, "git.repository"},
		{"bad log level", func(c *Config) { c.Telemetry.Logging.Level = "trace" }, "telemetry.logging.level"},
		{"bad log format", func(c *Config) { c.Telemetry.Logging.Format = "xml" }, "telemetry.logging.format"},
		{"metrics path", func(c *Config) {
			c.Telemetry.Metrics.Enabled = true
			c.Telemetry.Metrics.Path = "metrics"
		}, "telemetry.metrics.path"},
		{"tracing without endpoint", func(c *Config) { c.Telemetry.Tracing.Enabled = true }, "telemetry.tracing.endpoint"},
		{"bad sampler", func(c *Config) { c.Telemetry.Tracing.Sampler = "sometimes" }, "telemetry.tracing.sampler"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := MinimalConfig()
			tt.mutate(cfg)

			err := Validate(cfg)
			if err == nil {
				t.Fatal("expected validation error")
			}
			var verr ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %T", err)
			}
			found := false
			for _, fe := range verr.Errors {
				if fe.Field == tt.errorField {
					found = true
				}
			}
			if !found {
				t.Errorf("expected error on %s, got %v", tt.errorField, verr.Errors)
			}
		})
	}
}

func TestValidate_GitAuthVariants(t *testing.T) {
	cfg := NewTestConfig().WithGitAuth("token", "ghp_x", "").Build()
	if err := Validate(cfg); err != nil {
		t.Errorf("token auth should be valid: %v", err)
	}

	cfg = NewTestConfig().WithGitAuth("ssh", "", "/home/u/.ssh/id_ed25519").Build()
	if err := Validate(cfg); err != nil {
		t.Errorf("ssh auth should be valid: %v", err)
	}
}
