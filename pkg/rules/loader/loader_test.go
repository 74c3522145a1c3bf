package loader

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"loci-hq/lrol/pkg/config"
	"loci-hq/lrol/pkg/lrol/validator"
)

const validRule = `{
  "model_id": "M1",
  "name": "amount check",
  "threshold": 0.5,
  "evaluations": [
    {"name": "big", "type": "comparison", "left": "amount", "operator": ">", "right": 100, "weight": 1}
  ],
  "actions": [{"type": "flag_transaction", "reason": "large"}]
}`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func symlink(t *testing.T, target, link string) {
	t.Helper()
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}
}

func rel(t *testing.T, root string, paths []string) []string {
	t.Helper()
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		r, err := filepath.Rel(root, p)
		if err != nil {
			t.Fatal(err)
		}
		out = append(out, filepath.ToSlash(r))
	}
	return out
}

func newTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "b.json"), validRule)
	writeFile(t, filepath.Join(root, "a.JSON"), validRule)
	writeFile(t, filepath.Join(root, "notes.txt"), "not a rule")
	writeFile(t, filepath.Join(root, ".hidden.json"), validRule)
	writeFile(t, filepath.Join(root, "nested", "c.json"), validRule)
	writeFile(t, filepath.Join(root, ".git", "d.json"), validRule)
	return root
}

func TestLoader_Collect(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   []string
	}{
		{
			name:   "defaults",
			modify: func(*Config) {},
			want:   []string{"a.JSON", "b.json"},
		},
		{
			name:   "recursive",
			modify: func(c *Config) { c.Recursive = true },
			want:   []string{"a.JSON", "b.json", "nested/c.json"},
		},
		{
			name: "hidden included",
			modify: func(c *Config) {
				c.Recursive = true
				c.SkipHidden = false
			},
			want: []string{".git/d.json", ".hidden.json", "a.JSON", "b.json", "nested/c.json"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := newTree(t)
			cfg := DefaultConfig()
			tt.modify(cfg)

			files, err := New(cfg, nil).Collect(root)
			if err != nil {
				t.Fatalf("Collect() error = %v", err)
			}
			if got := rel(t, root, files); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Collect() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLoader_Resolve(t *testing.T) {
	root := newTree(t)
	l := New(nil, nil)

	file := filepath.Join(root, "notes.txt")
	got, err := l.Resolve(file)
	if err != nil || !reflect.DeepEqual(got, []string{file}) {
		t.Errorf("Resolve(file) = %v, %v; want the file itself", got, err)
	}

	_, err = l.Resolve(filepath.Join(root, "missing"))
	var loadErr *LoadError
	if !errors.As(err, &loadErr) || !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Resolve(missing) error = %v, want LoadError wrapping ErrNotExist", err)
	}

	empty := t.TempDir()
	_, err = l.Resolve(empty)
	if !errors.As(err, &loadErr) || !strings.Contains(loadErr.Message, "no rule files") {
		t.Errorf("Resolve(empty) error = %v, want no rule files", err)
	}
}

func TestLoader_Symlinks(t *testing.T) {
	root := t.TempDir()
	outside := t.TempDir()
	writeFile(t, filepath.Join(root, "a.json"), validRule)
	writeFile(t, filepath.Join(outside, "linked.json"), validRule)
	symlink(t, filepath.Join(outside, "linked.json"), filepath.Join(root, "link.json"))
	symlink(t, filepath.Join(root, "a.json"), filepath.Join(root, "z.json"))

	files, err := New(DefaultConfig(), nil).Collect(root)
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	if got := rel(t, root, files); !reflect.DeepEqual(got, []string{"a.json"}) {
		t.Errorf("without FollowSymlinks = %v", got)
	}

	cfg := DefaultConfig()
	cfg.FollowSymlinks = true
	files, err = New(cfg, nil).Collect(root)
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	// z.json points at a.json, which is already collected.
	if got := rel(t, root, files); !reflect.DeepEqual(got, []string{"a.json", "link.json"}) {
		t.Errorf("with FollowSymlinks = %v", got)
	}
}

func TestLoader_SymlinkLoop(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "sub", "a.json"), validRule)
	symlink(t, root, filepath.Join(root, "sub", "back"))

	cfg := DefaultConfig()
	cfg.Recursive = true
	cfg.FollowSymlinks = true

	_, err := New(cfg, nil).Collect(root)
	var loadErr *LoadError
	if !errors.As(err, &loadErr) || loadErr.Message != "symlink loop detected" {
		t.Fatalf("Collect() error = %v, want symlink loop", err)
	}
}

func TestLoader_ReadFile(t *testing.T) {
	root := t.TempDir()
	good := filepath.Join(root, "good.json")
	big := filepath.Join(root, "big.json")
	binary := filepath.Join(root, "binary.json")
	writeFile(t, good, validRule)
	writeFile(t, big, strings.Repeat(" ", 2048))
	writeFile(t, binary, "{\xff\xfe}")

	cfg := DefaultConfig()
	cfg.MaxFileSize = 1024
	l := New(cfg, nil)

	tests := []struct {
		name    string
		path    string
		wantMsg string
		wantIs  error
	}{
		{name: "valid", path: good},
		{name: "too large", path: big, wantMsg: "exceeds maximum"},
		{name: "invalid utf8", path: binary, wantMsg: "invalid UTF-8", wantIs: validator.ErrInvalidUTF8},
		{name: "missing", path: filepath.Join(root, "nope.json"), wantMsg: "file not found", wantIs: fs.ErrNotExist},
		{name: "directory", path: root, wantMsg: "not a regular file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := l.ReadFile(tt.path)
			if tt.wantMsg == "" {
				if err != nil || len(data) == 0 {
					t.Fatalf("ReadFile() = %d bytes, %v", len(data), err)
				}
				return
			}
			var loadErr *LoadError
			if !errors.As(err, &loadErr) {
				t.Fatalf("ReadFile() error = %v, want *LoadError", err)
			}
			if !strings.Contains(loadErr.Message, tt.wantMsg) {
				t.Errorf("message = %q, want %q", loadErr.Message, tt.wantMsg)
			}
			if tt.wantIs != nil && !errors.Is(err, tt.wantIs) {
				t.Errorf("error %v should wrap %v", err, tt.wantIs)
			}
		})
	}
}

func TestLoader_AsValidatorReader(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "ok.json"), validRule)
	writeFile(t, filepath.Join(root, "bad.json"), "{\xff}")

	l := New(nil, nil)
	v := validator.New(validator.WithFileReader(l), validator.WithWorkers(2))

	paths, err := l.Resolve(root)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	results, err := v.ValidateFiles(context.Background(), paths)
	if err != nil {
		t.Fatalf("ValidateFiles() error = %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}

	var fve *validator.FileValidationError
	if !errors.As(results[0].Err, &fve) || fve.Kind != validator.InvalidUTF8 {
		t.Errorf("bad.json error = %v, want InvalidUTF8", results[0].Err)
	}
	if !results[1].Valid() {
		t.Errorf("ok.json should be valid: %v", results[1].Err)
	}
}

func TestConfigFrom(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Parser.MaxFileSize = 4096
	cfg.Validation.Recursive = true
	cfg.Validation.FollowSymlinks = true

	lc := ConfigFrom(cfg)
	if lc.MaxFileSize != 4096 || !lc.Recursive || !lc.FollowSymlinks || !lc.SkipHidden {
		t.Errorf("ConfigFrom() = %+v", lc)
	}
	if got := ConfigFrom(nil); got.MaxFileSize != config.DefaultMaxFileSize {
		t.Errorf("ConfigFrom(nil).MaxFileSize = %d", got.MaxFileSize)
	}
}
