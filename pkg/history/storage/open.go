package storage

import (
	"fmt"
	"log/slog"

	"loci-hq/lrol/pkg/config"
	"loci-hq/lrol/pkg/history"
)

// Open creates the store selected by cfg.Backend.
func Open(cfg *config.HistoryConfig, logger *slog.Logger) (history.Store, error) {
	if cfg == nil {
		return nil, fmt.Errorf("history config is required")
	}

	switch cfg.Backend {
	case "memory":
		return NewMemoryStore(), nil
	case "sqlite", "":
		return NewSQLiteStore(&cfg.SQLite, logger)
	default:
		return nil, fmt.Errorf("unsupported history backend: %s", cfg.Backend)
	}
}
