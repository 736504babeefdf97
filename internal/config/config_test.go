package config

import (
	"os"
	"path/filepath"
	"testing"

	"todotui/internal/model"
)

func TestDefaults(t *testing.T) {
	cfg := Default()
	if cfg.Prefix != "todos" {
		t.Fatalf("unexpected default prefix: %q", cfg.Prefix)
	}
	if cfg.Priority() != model.PriorityMedium {
		t.Fatalf("unexpected default priority: %q", cfg.Priority())
	}
	if !cfg.ConfirmDestructive {
		t.Fatal("expected destructive confirmation on by default")
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := `
db_path = "/tmp/tasks.db"
prefix = "worklist"
default_priority = "high"
confirm_destructive = false
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DBPath != "/tmp/tasks.db" || cfg.Prefix != "worklist" {
		t.Fatalf("unexpected config: %#v", cfg)
	}
	if cfg.Priority() != model.PriorityHigh {
		t.Fatalf("unexpected priority: %q", cfg.Priority())
	}
	if cfg.ConfirmDestructive {
		t.Fatal("expected confirmation disabled")
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Prefix != "todos" {
		t.Fatalf("unexpected prefix: %q", cfg.Prefix)
	}
}

func TestLoadRejectsBadPriority(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`default_priority = "urgent"`), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for invalid default_priority")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("TODOTUI_PREFIX", "scratch")
	t.Setenv("TODOTUI_DEFAULT_PRIORITY", "low")
	t.Setenv("TODOTUI_CONFIRM_DESTRUCTIVE", "off")

	cfg := FromEnv(Default())
	if cfg.Prefix != "scratch" {
		t.Fatalf("unexpected prefix: %q", cfg.Prefix)
	}
	if cfg.Priority() != model.PriorityLow {
		t.Fatalf("unexpected priority: %q", cfg.Priority())
	}
	if cfg.ConfirmDestructive {
		t.Fatal("expected confirmation disabled via env")
	}
}
