package storage

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"
)

// The kv schema ships embedded so OpenSQLite can bootstrap a fresh database
// without any on-disk assets.
//
//go:embed migrations/*.sql
var schemaFS embed.FS

// MigrateUp creates the kv table. Scripts use IF NOT EXISTS, so running it
// against an already-initialized database is harmless.
func MigrateUp(db *sql.DB) error {
	return runSchemaScripts(db, ".up.sql")
}

// MigrateDown drops the kv table, discarding every namespace stored in it.
func MigrateDown(db *sql.DB) error {
	return runSchemaScripts(db, ".down.sql")
}

func runSchemaScripts(db *sql.DB, suffix string) error {
	names, err := fs.Glob(schemaFS, "migrations/*"+suffix)
	if err != nil {
		return fmt.Errorf("storage: list schema scripts: %w", err)
	}
	// Filename order is application order.
	sort.Strings(names)
	for _, name := range names {
		script, readErr := schemaFS.ReadFile(name)
		if readErr != nil {
			return fmt.Errorf("storage: read schema script %s: %w", name, readErr)
		}
		if _, execErr := db.Exec(string(script)); execErr != nil {
			return fmt.Errorf("storage: apply schema script %s: %w", name, execErr)
		}
	}
	return nil
}
