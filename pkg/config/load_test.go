package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lrol.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestLoadConfig_ValidFile(t *testing.T) {
	path := writeConfig(t, `
parser:
  max_file_size: 4096

analyzer:
  dedupe_weight_check: true
  comparison_operators: ["==", "!="]

validation:
  workers: 3
  recursive: true
  skip_hidden: false

history:
  enabled: true
  backend: sqlite
  sqlite:
    driver: sqlite3
    path: ./test-history.db
    wal_mode: false
  retention:
    days: 7

telemetry:
  logging:
    level: debug
    format: text
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Parser.MaxFileSize != 4096 {
		t.Errorf("expected max file size 4096, got %d", cfg.Parser.MaxFileSize)
	}
	if !cfg.Analyzer.DedupeWeightCheck {
		t.Error("expected dedupe_weight_check to be true")
	}
	if !reflect.DeepEqual(cfg.Analyzer.ComparisonOperators, []string{"==", "!="}) {
		t.Errorf("unexpected comparison operators %v", cfg.Analyzer.ComparisonOperators)
	}
	if cfg.Validation.Workers != 3 || !cfg.Validation.Recursive {
		t.Errorf("unexpected validation config %+v", cfg.Validation)
	}
	if cfg.Validation.SkipHidden {
		t.Error("explicit skip_hidden: false should survive defaults")
	}
	if cfg.History.SQLite.Driver != "sqlite3" {
		t.Errorf("expected driver sqlite3, got %q", cfg.History.SQLite.Driver)
	}
	if cfg.History.SQLite.WALMode {
		t.Error("explicit wal_mode: false should survive defaults")
	}
	if cfg.History.Retention.Days != 7 {
		t.Errorf("expected retention 7 days, got %d", cfg.History.Retention.Days)
	}

	// Defaults fill what the file leaves out.
	if cfg.Watch.Debounce != DefaultWatchDebounce {
		t.Errorf("expected default debounce, got %v", cfg.Watch.Debounce)
	}
	if cfg.History.SQLite.BusyTimeout != DefaultHistorySQLiteBusyTimeout {
		t.Errorf("expected default busy timeout, got %v", cfg.History.SQLite.BusyTimeout)
	}
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected wrapped ErrNotExist, got %v", err)
	}
}

func TestLoadConfig_MalformedYAML(t *testing.T) {
	path := writeConfig(t, "validation:\n  workers: [1, 2\n")

	_, err := LoadConfig(path)
	if err == nil {
		t.Fatal("expected error for malformed YAML")
	}
	if !strings.Contains(err.Error(), "failed to parse configuration file") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoadConfig_ValidationFailure(t *testing.T) {
	path := writeConfig(t, `
history:
  backend: postgres
telemetry:
  logging:
    level: verbose
`)

	_, err := LoadConfig(path)
	if err == nil {
		t.Fatal("expected validation error")
	}

	var verr ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if len(verr.Errors) != 2 {
		t.Errorf("expected 2 field errors, got %d: %v", len(verr.Errors), verr.Errors)
	}
}

func TestLoadConfigWithEnvOverrides_BasicOverrides(t *testing.T) {
	path := writeConfig(t, `
validation:
  workers: 2
history:
  backend: memory
`)

	t.Setenv("LROL_VALIDATION_WORKERS", "6")
	t.Setenv("LROL_HISTORY_BACKEND", "sqlite")
	t.Setenv("LROL_HISTORY_SQLITE_PATH", "/var/lib/lrol/history.db")
	t.Setenv("LROL_TELEMETRY_LOGGING_LEVEL", "error")
	t.Setenv("LROL_ANALYZER_RECOMMENDED_ACTIONS", "notify, escalate ,")

	cfg, err := LoadConfigWithEnvOverrides(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Validation.Workers != 6 {
		t.Errorf("expected 6 workers, got %d", cfg.Validation.Workers)
	}
	if cfg.History.Backend != "sqlite" {
		t.Errorf("expected sqlite backend, got %q", cfg.History.Backend)
	}
	if cfg.History.SQLite.Path != "/var/lib/lrol/history.db" {
		t.Errorf("unexpected path %q", cfg.History.SQLite.Path)
	}
	if cfg.Telemetry.Logging.Level != "error" {
		t.Errorf("expected level error, got %q", cfg.Telemetry.Logging.Level)
	}
	if !reflect.DeepEqual(cfg.Analyzer.RecommendedActions, []string{"notify", "escalate"}) {
		t.Errorf("unexpected recommended actions %v", cfg.Analyzer.RecommendedActions)
	}
}

func TestLoadConfigWithEnvOverrides_NoFile(t *testing.T) {
	t.Setenv("LROL_HISTORY_ENABLED", "true")
	t.Setenv("LROL_WATCH_DEBOUNCE", "250ms")

	cfg, err := LoadConfigWithEnvOverrides("")
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if !cfg.History.Enabled {
		t.Error("expected history enabled from environment")
	}
	if cfg.Watch.Debounce != 250*time.Millisecond {
		t.Errorf("expected debounce 250ms, got %v", cfg.Watch.Debounce)
	}
	if cfg.Parser.MaxFileSize != DefaultMaxFileSize {
		t.Errorf("expected default max file size, got %d", cfg.Parser.MaxFileSize)
	}
}

func TestLoadConfigWithEnvOverrides_InvalidEnvValues(t *testing.T) {
	t.Setenv("LROL_VALIDATION_WORKERS", "many")
	t.Setenv("LROL_HISTORY_ENABLED", "perhaps")
	t.Setenv("LROL_WATCH_DEBOUNCE", "soon")

	cfg, err := LoadConfigWithEnvOverrides("")
	if err != nil {
		t.Fatalf("unparseable values should be ignored: %v", err)
	}
	if cfg.History.Enabled {
		t.Error("invalid boolean should leave the default")
	}
	if cfg.Watch.Debounce != DefaultWatchDebounce {
		t.Errorf("invalid duration should leave the default, got %v", cfg.Watch.Debounce)
	}
}

func TestLoadConfigWithEnvOverrides_ValidationAfterOverride(t *testing.T) {
	t.Setenv("LROL_TELEMETRY_TRACING_SAMPLE_RATIO", "1.5")

	_, err := LoadConfigWithEnvOverrides("")
	if err == nil {
		t.Fatal("expected validation error after override")
	}
	if !strings.Contains(err.Error(), "telemetry.tracing.sample_ratio") {
		t.Errorf("unexpected error: %v", err)
	}
}
