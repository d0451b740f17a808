package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.CacheMaxAge != 30*time.Minute {
		t.Fatalf("CacheMaxAge: want 30m, got %v", cfg.CacheMaxAge)
	}
	if cfg.CacheBackend != CacheBackendSQLite {
		t.Fatalf("CacheBackend: want %q, got %q", CacheBackendSQLite, cfg.CacheBackend)
	}
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metro.yaml")
	content := []byte("addr: 0.0.0.0:9000\ncache_max_age: 10m\ncache_backend: memory\nfetch_timeout: 3s\n")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	t.Setenv("METRO_ADDR", "127.0.0.1:9999")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != "127.0.0.1:9999" {
		t.Fatalf("Addr: env should win, got %q", cfg.Addr)
	}
	if cfg.CacheMaxAge != 10*time.Minute {
		t.Fatalf("CacheMaxAge: want 10m, got %v", cfg.CacheMaxAge)
	}
	if cfg.CacheBackend != CacheBackendMemory {
		t.Fatalf("CacheBackend: want memory, got %q", cfg.CacheBackend)
	}
	if cfg.FetchTimeout != 3*time.Second {
		t.Fatalf("FetchTimeout: want 3s, got %v", cfg.FetchTimeout)
	}
	if cfg.DBPath != "metro.db" {
		t.Fatalf("DBPath: want default, got %q", cfg.DBPath)
	}
}

func TestDefault_UnknownBackendFallsBackToSQLite(t *testing.T) {
	t.Setenv("METRO_CACHE_BACKEND", "redis")
	if got := Default().CacheBackend; got != CacheBackendSQLite {
		t.Fatalf("CacheBackend: want sqlite, got %q", got)
	}
}
