package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jhaabhiiishek/mindmap-assignment/pkg/errors"
	"github.com/jhaabhiiishek/mindmap-assignment/pkg/layout"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mindmap.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("addr = %q", cfg.Server.Addr)
	}
	if cfg.Store.Backend != BackendMemory {
		t.Errorf("backend = %q", cfg.Store.Backend)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[server]
addr = ":9090"

[store]
backend = "file"
dir = "/var/lib/mindmap"

[layout]
h_spacing = 60.0
iterations = 500
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("addr = %q", cfg.Server.Addr)
	}
	if cfg.Store.Backend != BackendFile || cfg.Store.Dir != "/var/lib/mindmap" {
		t.Errorf("store = %+v", cfg.Store)
	}
	// Unset redis settings keep their defaults.
	if cfg.Store.RedisAddr != "localhost:6379" {
		t.Errorf("redis addr = %q", cfg.Store.RedisAddr)
	}

	lc := cfg.LayoutConfig()
	if lc.HSpacing != 60 || lc.Iterations != 500 {
		t.Errorf("layout config = %+v", lc)
	}
	// Unset layout fields fall back to engine defaults.
	if lc.VSpacing != layout.DefaultConfig().VSpacing {
		t.Errorf("v spacing = %v", lc.VSpacing)
	}
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	path := writeConfig(t, `
[store]
backend = "cassandra"
`)
	_, err := Load(path)
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("err = %v, want INVALID_INPUT", err)
	}
}

func TestLoadRejectsMalformedTOML(t *testing.T) {
	path := writeConfig(t, `[server`)
	_, err := Load(path)
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("err = %v, want INVALID_FORMAT", err)
	}
}

func TestCacheTTL(t *testing.T) {
	cfg := Default()
	if cfg.CacheTTL().Minutes() != 60 {
		t.Errorf("ttl = %v", cfg.CacheTTL())
	}
}
