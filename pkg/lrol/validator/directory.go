package validator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/sync/errgroup"
)

// RuleFileExt is the extension of rule documents.
const RuleFileExt = ".json"

// FileResult pairs a file with its outcome. Report is set whenever the file
// could be read; Err follows the ValidateFile contract.
type FileResult struct {
	Path   string
	Report *Report
	Err    error
}

// Valid reports whether the file validated cleanly.
func (r FileResult) Valid() bool {
	return r.Err == nil && r.Report != nil && r.Report.IsValid()
}

// ValidateDirectory validates every *.json file directly inside dir.
// Subdirectories are not visited. Results are sorted by path.
func (v *Validator) ValidateDirectory(ctx context.Context, dir string) ([]FileResult, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != RuleFileExt {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}

	return v.ValidateFiles(ctx, paths)
}

// ValidateFiles validates paths concurrently on at most the configured number
// of workers. Results are sorted by path. The only error returned is the
// context's, when it is cancelled before all files were processed.
func (v *Validator) ValidateFiles(ctx context.Context, paths []string) ([]FileResult, error) {
	sorted := append([]string(nil), paths...)
	sort.Strings(sorted)

	results := make([]FileResult, len(sorted))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(v.workers)

	for i, path := range sorted {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			report, err := v.ValidateFile(gctx, path)
			results[i] = FileResult{Path: path, Report: report, Err: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}

	v.logger.Info("batch validated",
		"files", len(results),
		"invalid", countInvalid(results),
		"workers", v.workers,
	)
	return results, nil
}

func countInvalid(results []FileResult) int {
	n := 0
	for _, r := range results {
		if !r.Valid() {
			n++
		}
	}
	return n
}
