// Package config handles configuration loading and defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"todotui/internal/model"
	"todotui/internal/storage"
)

// Default values.
const (
	DefaultDBFile          = "todotui.db"
	DefaultConfirmDestruct = true
)

// Config holds the full configuration for todotui.
type Config struct {
	// DBPath is the SQLite database file backing the key-value store.
	DBPath string `toml:"db_path"`
	// Prefix namespaces every persisted key.
	Prefix string `toml:"prefix"`
	// DefaultPriority is assigned to tasks added without an explicit one.
	DefaultPriority string `toml:"default_priority"`
	// ConfirmDestructive gates clear-completed and clear-all behind a
	// confirmation prompt in the view layer.
	ConfirmDestructive bool `toml:"confirm_destructive"`
}

func Default() Config {
	return Config{
		DBPath:             defaultDBPath(),
		Prefix:             storage.DefaultPrefix,
		DefaultPriority:    string(model.PriorityMedium),
		ConfirmDestructive: DefaultConfirmDestruct,
	}
}

func defaultDBPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return DefaultDBFile
	}
	return filepath.Join(dir, "todotui", DefaultDBFile)
}

// Load reads the TOML file at path (when it exists) over the defaults, then
// applies TODOTUI_* environment overrides. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, &cfg); err != nil {
				return Config{}, fmt.Errorf("decode config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("stat config %s: %w", path, err)
		}
	}
	cfg = FromEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// FromEnv layers TODOTUI_* environment variables over base.
func FromEnv(base Config) Config {
	cfg := base
	if v := strings.TrimSpace(os.Getenv("TODOTUI_DB_PATH")); v != "" {
		cfg.DBPath = v
	}
	if v := strings.TrimSpace(os.Getenv("TODOTUI_PREFIX")); v != "" {
		cfg.Prefix = v
	}
	if v := strings.TrimSpace(os.Getenv("TODOTUI_DEFAULT_PRIORITY")); v != "" {
		cfg.DefaultPriority = v
	}
	if v, ok := getEnvBool("TODOTUI_CONFIRM_DESTRUCTIVE"); ok {
		cfg.ConfirmDestructive = v
	}
	return cfg
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DBPath) == "" {
		return fmt.Errorf("config: db_path is required")
	}
	if strings.TrimSpace(c.Prefix) == "" {
		return fmt.Errorf("config: prefix is required")
	}
	if _, err := model.ParsePriority(c.DefaultPriority); err != nil {
		return fmt.Errorf("config: default_priority: %w", err)
	}
	return nil
}

// Priority returns the validated default priority.
func (c Config) Priority() model.Priority {
	p, err := model.ParsePriority(c.DefaultPriority)
	if err != nil {
		return model.PriorityMedium
	}
	return p
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
