// Package logging provides structured logging for the lrol tools.
//
// The package wraps log/slog with:
//   - JSON, text and console formats
//   - optional size-based file rotation
//   - run and file fields carried on a context.Context
//   - masking of credentials (tokens in Git URLs, passwords, bearer tokens)
//
// # Usage
//
//	logger, err := logging.New(logging.Config{Level: "info", Format: "json"})
//	if err != nil {
//	    return err
//	}
//	defer logger.Close()
//
//	ctx = logging.WithRunID(ctx, run.ID)
//	logger.WithComponent("watcher").InfoContext(ctx, "revalidated", "files", 3)
package logging
