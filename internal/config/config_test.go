package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_YAML(t *testing.T) {
	data := []byte(`
server_url: http://tester-talk:5000
page_size: 50
log_level: debug
`)
	cfg, err := Load(data, ".yaml")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ServerURL != "http://tester-talk:5000" {
		t.Errorf("server_url = %q", cfg.ServerURL)
	}
	if cfg.PageSize != 50 {
		t.Errorf("page_size = %d, want 50", cfg.PageSize)
	}
	if cfg.LogFormat != "text" {
		t.Errorf("default log_format not kept: %q", cfg.LogFormat)
	}
}

func TestLoad_JSON(t *testing.T) {
	data := []byte(`{"server_url": "http://localhost:5000", "timeout": "10s"}`)
	cfg, err := Load(data, ".json")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ServerURL != "http://localhost:5000" || cfg.Timeout != "10s" {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestLoad_DetectByContent(t *testing.T) {
	jsonCfg, err := Load([]byte(`{"page_size": 5}`), "")
	if err != nil {
		t.Fatalf("Load json: %v", err)
	}
	if jsonCfg.PageSize != 5 {
		t.Errorf("json page_size = %d", jsonCfg.PageSize)
	}

	yamlCfg, err := Load([]byte("page_size: 7"), "")
	if err != nil {
		t.Fatalf("Load yaml: %v", err)
	}
	if yamlCfg.PageSize != 7 {
		t.Errorf("yaml page_size = %d", yamlCfg.PageSize)
	}
}

func TestLoadFromPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	if err := os.WriteFile(path, []byte("server_url: http://x:1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if cfg.ServerURL != "http://x:1" {
		t.Errorf("server_url = %q", cfg.ServerURL)
	}

	if _, err := LoadFromPath(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing explicit path")
	}
}

func TestResolveStateDir_Override(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "state")
	cfg := Default()
	cfg.StateDir = dir

	got, err := cfg.ResolveStateDir()
	if err != nil {
		t.Fatalf("ResolveStateDir: %v", err)
	}
	if got != dir {
		t.Errorf("state dir = %q, want %q", got, dir)
	}
	if fi, err := os.Stat(dir); err != nil || !fi.IsDir() {
		t.Errorf("state dir not created: %v", err)
	}
}
