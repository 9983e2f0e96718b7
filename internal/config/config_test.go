package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_NoFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("cfg = %+v, want defaults when no file exists", cfg)
	}
	if Exists() {
		t.Error("Exists() = true, want false")
	}
}

func TestSaveLoadRoundtrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.General.ClaudeDir = "/srv/claude"
	cfg.General.DefaultKeep = 5
	cfg.General.Confirm = false
	cfg.Analysis.WindowSize = 15

	if err := Save(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !Exists() {
		t.Fatal("Exists() = false after save")
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loaded != cfg {
		t.Errorf("loaded = %+v, want %+v", loaded, cfg)
	}
}

func TestLoad_PartialFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	// Unset keys keep their defaults.
	content := "[general]\ndefault_keep = 7\n"
	if err := os.MkdirAll(filepath.Join(dir, "claude-prune"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "claude-prune", "config.toml"), []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.General.DefaultKeep != 7 {
		t.Errorf("DefaultKeep = %d, want 7", cfg.General.DefaultKeep)
	}
	if cfg.Analysis.WindowSize != 10 {
		t.Errorf("WindowSize = %d, want the default 10", cfg.Analysis.WindowSize)
	}
}

func TestClaudeDir(t *testing.T) {
	cfg := DefaultConfig()

	if got := ClaudeDir(cfg, "/override"); got != "/override" {
		t.Errorf("ClaudeDir with override = %q, want /override", got)
	}

	cfg.General.ClaudeDir = "/from/config"
	if got := ClaudeDir(cfg, ""); got != "/from/config" {
		t.Errorf("ClaudeDir from config = %q, want /from/config", got)
	}

	cfg.General.ClaudeDir = ""
	home, _ := os.UserHomeDir()
	if got := ClaudeDir(cfg, ""); got != filepath.Join(home, ".claude") {
		t.Errorf("ClaudeDir fallback = %q, want ~/.claude", got)
	}
}
