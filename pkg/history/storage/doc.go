// Package storage provides history.Store backends.
//
// Two backends are available:
//
//   - memory: a map-backed store for tests and one-shot runs
//   - sqlite: a file-backed store using either mattn/go-sqlite3 ("sqlite3",
//     requires cgo) or modernc.org/sqlite ("sqlite", pure Go)
//
// Use Open to pick a backend from configuration:
//
//	store, err := storage.Open(&cfg.History, logger)
//	if err != nil {
//		return err
//	}
//	defer store.Close()
package storage
