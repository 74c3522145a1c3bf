package git

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5/plumbing/transport/http"

	"loci-hq/lrol/pkg/config"
)

func TestTokenAuth(t *testing.T) {
	auth, err := NewTokenAuth("ghp_secret").Auth()
	if err != nil {
		t.Fatalf("Auth() error = %v", err)
	}
	basic, ok := auth.(*http.BasicAuth)
	if !ok || basic.Password != "ghp_secret" {
		t.Errorf("Auth() = %#v, want basic auth carrying the token", auth)
	}

	if _, err := NewTokenAuth("").Auth(); err == nil {
		t.Error("empty token should fail")
	}
}

func TestSSHAuth(t *testing.T) {
	dir := t.TempDir()
	open := filepath.Join(dir, "open_key")
	if err := os.WriteFile(open, []byte("not a key"), 0o644); err != nil {
		t.Fatal(err)
	}
	private := filepath.Join(dir, "private_key")
	if err := os.WriteFile(private, []byte("not a key"), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
	}{
		{name: "empty path", path: ""},
		{name: "missing file", path: filepath.Join(dir, "missing")},
		{name: "permissions too open", path: open},
		{name: "unparseable key", path: private},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewSSHAuth(tt.path, "").Auth(); err == nil {
				t.Error("Auth() should fail")
			}
		})
	}
}

func TestNewAuthProvider(t *testing.T) {
	tests := []struct {
		name     string
		cfg      *config.GitAuthConfig
		wantType string
		wantErr  bool
	}{
		{name: "nil", cfg: nil, wantErr: true},
		{name: "none", cfg: &config.GitAuthConfig{Type: "none"}, wantType: "none"},
		{name: "empty", cfg: &config.GitAuthConfig{}, wantType: "none"},
		{name: "token", cfg: &config.GitAuthConfig{Type: "token", Token: "t"}, wantType: "token"},
		{name: "token missing", cfg: &config.GitAuthConfig{Type: "token"}, wantErr: true},
		{name: "ssh", cfg: &config.GitAuthConfig{Type: "ssh", SSHKeyPath: "/k"}, wantType: "ssh"},
		{name: "ssh missing", cfg: &config.GitAuthConfig{Type: "ssh"}, wantErr: true},
		{name: "unknown", cfg: &config.GitAuthConfig{Type: "kerberos"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewAuthProvider(tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewAuthProvider() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && p.Type() != tt.wantType {
				t.Errorf("Type() = %q, want %q", p.Type(), tt.wantType)
			}
		})
	}

	auth, err := NoAuth{}.Auth()
	if auth != nil || err != nil {
		t.Errorf("NoAuth.Auth() = %v, %v", auth, err)
	}
}
