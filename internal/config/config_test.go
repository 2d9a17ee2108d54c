package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tablelab.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
name: flight-lab
serve:
  listen: ":2345"
  idle_timeout: 10m
databases:
  - path: ./data/flights.db
    alias: flights
    description: Flight schedule demo
notebook:
  preview_rows: 50
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Name != "flight-lab" {
		t.Errorf("Name = %q, want flight-lab", cfg.Name)
	}
	if cfg.Serve.Listen != ":2345" {
		t.Errorf("Listen = %q, want :2345", cfg.Serve.Listen)
	}
	if len(cfg.Databases) != 1 || cfg.Databases[0].Alias != "flights" {
		t.Errorf("Databases = %+v, want one flights source", cfg.Databases)
	}
	if cfg.PreviewRows() != 50 {
		t.Errorf("PreviewRows() = %d, want 50", cfg.PreviewRows())
	}
	if cfg.GetIdleTimeout() != 10*time.Minute {
		t.Errorf("GetIdleTimeout() = %v, want 10m", cfg.GetIdleTimeout())
	}
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, `name: bare`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Serve.Listen != ":2222" {
		t.Errorf("Listen default = %q, want :2222", cfg.Serve.Listen)
	}
	if cfg.PreviewRows() != 20 {
		t.Errorf("PreviewRows default = %d, want 20", cfg.PreviewRows())
	}
	if cfg.GetIdleTimeout() != 30*time.Minute {
		t.Errorf("GetIdleTimeout default = %v, want 30m", cfg.GetIdleTimeout())
	}
	if cfg.GetMaxTimeout() != 24*time.Hour {
		t.Errorf("GetMaxTimeout default = %v, want 24h", cfg.GetMaxTimeout())
	}
	if cfg.GetDataDir() != ".tablelab" {
		t.Errorf("GetDataDir() = %q, want .tablelab", cfg.GetDataDir())
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := writeConfig(t, "databases: [broken")
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestGetIdleTimeoutFallback(t *testing.T) {
	path := writeConfig(t, `
serve:
  idle_timeout: not-a-duration
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.GetIdleTimeout() != 30*time.Minute {
		t.Errorf("GetIdleTimeout() = %v, want 30m fallback", cfg.GetIdleTimeout())
	}
}

func TestReload(t *testing.T) {
	path := writeConfig(t, `name: before`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if err := os.WriteFile(path, []byte(`name: after`), 0644); err != nil {
		t.Fatalf("failed to rewrite config: %v", err)
	}
	if err := cfg.Reload(); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}

	if cfg.Name != "after" {
		t.Errorf("Name after reload = %q, want after", cfg.Name)
	}
}

func TestPreviewRowsGuard(t *testing.T) {
	path := writeConfig(t, `
notebook:
  preview_rows: -5
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.PreviewRows() != 20 {
		t.Errorf("PreviewRows() = %d, want 20 fallback", cfg.PreviewRows())
	}
}
