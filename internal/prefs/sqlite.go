package prefs

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS prefs (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at DATETIME NOT NULL DEFAULT (datetime('now'))
);
`

// SQLiteStore keeps preferences in a SQLite database file.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// Open creates or opens the preferences database at path.
func Open(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating prefs directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening prefs database: %w", err)
	}
	return newSQLiteStore(db, path)
}

// OpenMemory opens an in-memory database (useful for testing).
func OpenMemory() (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening in-memory prefs database: %w", err)
	}
	// Every pooled connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)
	return newSQLiteStore(db, ":memory:")
}

func newSQLiteStore(db *sql.DB, path string) (*SQLiteStore, error) {
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("running prefs migrations: %w", err)
	}
	return &SQLiteStore{db: db, path: path}, nil
}

// Path returns the database location.
func (s *SQLiteStore) Path() string { return s.path }

// Get implements Store.
func (s *SQLiteStore) Get(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM prefs WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading pref %q: %w", key, err)
	}
	return value, true, nil
}

// Set implements Store.
func (s *SQLiteStore) Set(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO prefs (key, value, updated_at) VALUES (?, ?, datetime('now'))
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value)
	if err != nil {
		return fmt.Errorf("writing pref %q: %w", key, err)
	}
	return nil
}

// Delete implements Store.
func (s *SQLiteStore) Delete(key string) error {
	if _, err := s.db.Exec(`DELETE FROM prefs WHERE key = ?`, key); err != nil {
		return fmt.Errorf("deleting pref %q: %w", key, err)
	}
	return nil
}

// All implements Store.
func (s *SQLiteStore) All() (map[string]string, error) {
	rows, err := s.db.Query(`SELECT key, value FROM prefs ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("listing prefs: %w", err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("scanning pref: %w", err)
		}
		out[k] = v
	}
	return out, rows.Err()
}

// Close implements Store.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
