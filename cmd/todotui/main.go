package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"todotui/internal/config"
	"todotui/internal/storage"
	"todotui/internal/todo"
	"todotui/internal/update"
)

func main() {
	configPath := flag.String("config", defaultConfigPath(), "path to config.toml")
	dbPath := flag.String("db", "", "override database path")
	prefix := flag.String("prefix", "", "override storage namespace prefix")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "todotui"})

	cfg, err := config.Load(*configPath)
	if err != nil {
		fatal(logger, "load config", err)
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}
	if *prefix != "" {
		cfg.Prefix = *prefix
	}

	if dir := filepath.Dir(cfg.DBPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fatal(logger, "create data dir", err)
		}
	}

	kv, err := storage.OpenSQLite(cfg.DBPath, cfg.Prefix)
	if err != nil {
		fatal(logger, "open storage", err)
	}
	defer kv.Close()

	list := todo.NewList(kv,
		todo.WithLogger(logger),
		todo.WithDefaultPriority(cfg.Priority()),
	)

	program := tea.NewProgram(update.NewModel(list, cfg))
	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "todotui failed: %v\n", err)
		os.Exit(1)
	}
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "todotui", "config.toml")
}

func fatal(logger *log.Logger, msg string, err error) {
	logger.Error(msg, "err", err)
	os.Exit(1)
}
