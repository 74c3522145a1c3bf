package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"loci-hq/lrol/pkg/config"
	"loci-hq/lrol/pkg/lrol/validator"
)

// Config controls which files a Loader picks up.
type Config struct {
	// MaxFileSize is the largest rule file accepted, in bytes.
	MaxFileSize int64

	// Extensions lists accepted file extensions (case-insensitive).
	Extensions []string

	// Recursive descends into subdirectories.
	Recursive bool

	// FollowSymlinks includes symlinked files, and symlinked directories
	// when Recursive is set.
	FollowSymlinks bool

	// SkipHidden ignores dot-files and dot-directories.
	SkipHidden bool
}

// DefaultConfig returns the loader configuration used when none is given.
func DefaultConfig() *Config {
	return &Config{
		MaxFileSize: config.DefaultMaxFileSize,
		Extensions:  []string{validator.RuleFileExt},
		SkipHidden:  true,
	}
}

// ConfigFrom builds a loader configuration from the parser and validation
// sections of the application config.
func ConfigFrom(cfg *config.Config) *Config {
	lc := DefaultConfig()
	if cfg == nil {
		return lc
	}
	if cfg.Parser.MaxFileSize > 0 {
		lc.MaxFileSize = cfg.Parser.MaxFileSize
	}
	lc.Recursive = cfg.Validation.Recursive
	lc.FollowSymlinks = cfg.Validation.FollowSymlinks
	lc.SkipHidden = cfg.Validation.SkipHidden
	return lc
}

// Loader resolves rule files on disk and reads them with size and encoding
// checks. It implements validator.FileReader.
type Loader struct {
	config *Config
	logger *slog.Logger
}

var _ validator.FileReader = (*Loader)(nil)

// New creates a loader. A nil config selects DefaultConfig.
func New(cfg *Config, logger *slog.Logger) *Loader {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{config: cfg, logger: logger}
}

// Resolve returns the rule files named by path. A file is returned as is,
// regardless of its extension. A directory is scanned and must contain at
// least one rule file. The result is sorted.
func (l *Loader) Resolve(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &LoadError{Path: path, Message: "path not found", Cause: err}
		}
		return nil, &LoadError{Path: path, Message: "failed to access path", Cause: err}
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	files, err := l.Collect(path)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, &LoadError{Path: path, Message: "no rule files found in directory"}
	}
	return files, nil
}

// Collect lists rule files in dir, sorted. It may return an empty list.
func (l *Loader) Collect(dir string) ([]string, error) {
	root, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return nil, &LoadError{Path: dir, Message: "failed to resolve directory", Cause: err}
	}

	w := &walker{loader: l, seen: make(map[string]bool)}
	if err := w.walk(dir, []string{root}); err != nil {
		return nil, err
	}

	sort.Strings(w.files)
	l.logger.Debug("rule files collected", "dir", dir, "files", len(w.files), "recursive", l.config.Recursive)
	return w.files, nil
}

// ReadFile reads a rule file after checking that it exists, is a regular
// file and fits the size limit. Content that is not valid UTF-8 yields a
// LoadError wrapping validator.ErrInvalidUTF8.
func (l *Loader) ReadFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &LoadError{Path: path, Message: "file not found", Cause: err}
		}
		if errors.Is(err, fs.ErrPermission) {
			return nil, &LoadError{Path: path, Message: "permission denied", Cause: err}
		}
		return nil, &LoadError{Path: path, Message: "failed to access file", Cause: err}
	}
	if !info.Mode().IsRegular() {
		return nil, &LoadError{Path: path, Message: "not a regular file"}
	}
	if l.config.MaxFileSize > 0 && info.Size() > l.config.MaxFileSize {
		return nil, &LoadError{
			Path:    path,
			Message: fmt.Sprintf("file size %d bytes exceeds maximum %d bytes", info.Size(), l.config.MaxFileSize),
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Message: "failed to read file", Cause: err}
	}
	if !utf8.Valid(data) {
		return nil, &LoadError{Path: path, Message: "file contains invalid UTF-8 encoding", Cause: validator.ErrInvalidUTF8}
	}
	return data, nil
}

func (l *Loader) hasValidExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, valid := range l.config.Extensions {
		if ext == strings.ToLower(valid) {
			return true
		}
	}
	return false
}

func (l *Loader) hidden(name string) bool {
	return l.config.SkipHidden && strings.HasPrefix(name, ".")
}

type walker struct {
	loader *Loader
	files  []string
	// seen holds resolved file paths so a file reached through several
	// links is validated once.
	seen map[string]bool
}

// walk scans dir. ancestors holds the resolved paths of the directories on
// the current descent, used to detect symlink loops.
func (w *walker) walk(dir string, ancestors []string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return &LoadError{Path: dir, Message: "failed to read directory", Cause: err}
	}

	for _, entry := range entries {
		if w.loader.hidden(entry.Name()) {
			continue
		}
		path := filepath.Join(dir, entry.Name())

		switch {
		case entry.Type()&fs.ModeSymlink != 0:
			if err := w.symlink(path, ancestors); err != nil {
				return err
			}
		case entry.IsDir():
			if !w.loader.config.Recursive {
				continue
			}
			target, err := filepath.EvalSymlinks(path)
			if err != nil {
				return &LoadError{Path: path, Message: "failed to resolve directory", Cause: err}
			}
			if err := w.walk(path, append(ancestors, target)); err != nil {
				return err
			}
		case entry.Type().IsRegular():
			w.add(path, path)
		}
	}
	return nil
}

func (w *walker) symlink(path string, ancestors []string) error {
	if !w.loader.config.FollowSymlinks {
		return nil
	}

	target, err := filepath.EvalSymlinks(path)
	if err != nil {
		return &LoadError{Path: path, Message: "failed to resolve symlink", Cause: err}
	}
	info, err := os.Stat(target)
	if err != nil {
		return &LoadError{Path: path, Message: "failed to access symlink target", Cause: err}
	}

	if !info.IsDir() {
		if info.Mode().IsRegular() {
			w.add(path, target)
		}
		return nil
	}
	if !w.loader.config.Recursive {
		return nil
	}
	for _, a := range ancestors {
		if a == target {
			return &LoadError{Path: path, Message: "symlink loop detected"}
		}
	}
	return w.walk(path, append(ancestors, target))
}

func (w *walker) add(path, target string) {
	if !w.loader.hasValidExtension(path) {
		return
	}
	if resolved, err := filepath.EvalSymlinks(target); err == nil {
		target = resolved
	}
	if abs, err := filepath.Abs(target); err == nil {
		target = abs
	}
	if w.seen[target] {
		w.loader.logger.Debug("skipping duplicate rule file", "path", path, "target", target)
		return
	}
	w.seen[target] = true
	w.files = append(w.files, path)
}
