// Package loader resolves LROL rule files from the filesystem.
//
// A Loader turns a file or directory argument into a sorted list of rule
// files and reads each one with the size and encoding checks the validator
// relies on:
//
//	l := loader.New(loader.ConfigFrom(cfg), logger)
//	paths, err := l.Resolve("rules/")
//	v := validator.New(validator.WithFileReader(l))
//	results, err := v.ValidateFiles(ctx, paths)
//
// Directory scans honor validation.recursive, validation.follow_symlinks
// and validation.skip_hidden. Only .json files are picked up. A symlinked
// directory that points back at one of its ancestors is reported as a loop.
package loader
