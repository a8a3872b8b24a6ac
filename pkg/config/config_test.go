package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.DefaultOrder != "sequential" {
		t.Errorf("expected sequential default order, got %q", cfg.DefaultOrder)
	}
	if cfg.BackupRetention != 5 {
		t.Errorf("expected backup retention 5, got %d", cfg.BackupRetention)
	}
	if cfg.Aliases == nil {
		t.Error("expected aliases map to be initialized")
	}
}

func TestLoad_ParsesAndRepairsValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte("default_order: chaotic\nmax_search_results: -3\neditor: nvim\nauto_backup: false\n")
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Editor != "nvim" {
		t.Errorf("expected editor nvim, got %q", cfg.Editor)
	}
	if cfg.DefaultOrder != "sequential" {
		t.Errorf("invalid order should fall back to sequential, got %q", cfg.DefaultOrder)
	}
	if cfg.MaxSearchResults != 50 {
		t.Errorf("invalid max_search_results should fall back to 50, got %d", cfg.MaxSearchResults)
	}
	if cfg.AutoBackup {
		t.Error("expected auto_backup false")
	}
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Editor = "vim"
	cfg.DefaultOrder = "random"
	cfg.BackupRetention = 9

	if err := cfg.Save(path); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if loaded.Editor != "vim" || loaded.DefaultOrder != "random" || loaded.BackupRetention != 9 {
		t.Errorf("round-trip mismatch: %+v", loaded)
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	os.WriteFile(path, []byte("{{not yaml"), 0644)

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for malformed yaml")
	}
}
