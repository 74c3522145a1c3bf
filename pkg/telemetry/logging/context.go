package logging

import (
	"context"
)

// Context keys for common log fields.
type contextKey string

const (
	// RunIDKey is the context key for validation run IDs.
	RunIDKey contextKey = "run_id"

	// FileKey is the context key for the rule file being processed.
	FileKey contextKey = "file"

	// CommitKey is the context key for the Git commit being validated.
	CommitKey contextKey = "commit"
)

// WithRunID adds a validation run ID to the context.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, RunIDKey, runID)
}

// GetRunID retrieves the validation run ID from the context.
func GetRunID(ctx context.Context) string {
	if runID, ok := ctx.Value(RunIDKey).(string); ok {
		return runID
	}
	return ""
}

// WithFile adds a rule file path to the context.
func WithFile(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, FileKey, path)
}

// GetFile retrieves the rule file path from the context.
func GetFile(ctx context.Context) string {
	if path, ok := ctx.Value(FileKey).(string); ok {
		return path
	}
	return ""
}

// WithCommit adds a Git commit hash to the context.
func WithCommit(ctx context.Context, commit string) context.Context {
	return context.WithValue(ctx, CommitKey, commit)
}

// GetCommit retrieves the Git commit hash from the context.
func GetCommit(ctx context.Context) string {
	if commit, ok := ctx.Value(CommitKey).(string); ok {
		return commit
	}
	return ""
}

// extractContextFields returns the context's log fields as key-value pairs.
func extractContextFields(ctx context.Context) []any {
	var fields []any

	if runID := GetRunID(ctx); runID != "" {
		fields = append(fields, "run_id", runID)
	}
	if path := GetFile(ctx); path != "" {
		fields = append(fields, "file", path)
	}
	if commit := GetCommit(ctx); commit != "" {
		fields = append(fields, "commit", commit)
	}

	return fields
}
