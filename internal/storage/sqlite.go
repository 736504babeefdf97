package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteKV stores namespaced JSON values in a single kv table.
type SQLiteKV struct {
	db     *sql.DB
	prefix string
}

func NewSQLiteKV(db *sql.DB, prefix string) (*SQLiteKV, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &SQLiteKV{db: db, prefix: prefix}, nil
}

// OpenSQLite opens (or creates) the database at path, applies migrations,
// and returns a store namespaced under prefix.
func OpenSQLite(path, prefix string) (*SQLiteKV, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := MigrateUp(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	kv, err := NewSQLiteKV(db, prefix)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return kv, nil
}

func (s *SQLiteKV) Close() error {
	return s.db.Close()
}

func (s *SQLiteKV) Save(key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("storage: encode %q: %w", key, err)
	}
	_, err = s.db.Exec(`
		INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		namespaced(s.prefix, key), string(payload),
	)
	if err != nil {
		return fmt.Errorf("storage: save %q: %w", key, err)
	}
	return nil
}

func (s *SQLiteKV) Load(key string, dst any) error {
	row := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, namespaced(s.prefix, key))
	var raw string
	if err := row.Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("storage: load %q: %w", key, err)
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return fmt.Errorf("storage: decode %q: %w", key, err)
	}
	return nil
}

func (s *SQLiteKV) Remove(key string) error {
	_, err := s.db.Exec(`DELETE FROM kv WHERE key = ?`, namespaced(s.prefix, key))
	if err != nil {
		return fmt.Errorf("storage: remove %q: %w", key, err)
	}
	return nil
}

func (s *SQLiteKV) Clear() error {
	// ESCAPE so a prefix containing _ or % cannot leak past the namespace.
	_, err := s.db.Exec(`DELETE FROM kv WHERE key LIKE ? ESCAPE '\'`, likePattern(s.prefix))
	if err != nil {
		return fmt.Errorf("storage: clear %q: %w", s.prefix, err)
	}
	return nil
}

func likePattern(prefix string) string {
	escaped := make([]byte, 0, len(prefix)+4)
	for i := 0; i < len(prefix); i++ {
		c := prefix[i]
		if c == '%' || c == '_' || c == '\\' {
			escaped = append(escaped, '\\')
		}
		escaped = append(escaped, c)
	}
	return string(escaped) + "\\_%"
}
