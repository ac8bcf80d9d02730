// Package sqlite provides the SQLite-backed implementation of store.Store.
package sqlite

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// DB is a store.Store backed by a single SQLite file.
type DB struct {
	db *sql.DB
}

// New opens the database at path, creating it if needed, and applies the
// schema. The path ":memory:" opens a private in-memory database.
func New(path string) (*DB, error) {
	db, err := sql.Open("sqlite3", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// The driver connects lazily; Ping surfaces a bad path immediately.
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &DB{db: db}
	if _, err := s.db.Exec(schema); err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}
	return s, nil
}

// dsn appends the connection pragmas go-sqlite3 reads from the query string.
func dsn(path string) string {
	params := []string{"_foreign_keys=on"}
	if path != ":memory:" {
		params = append(params, "_journal_mode=WAL", "_busy_timeout=5000")
	}
	return path + "?" + strings.Join(params, "&")
}

// Close releases the underlying connection pool.
func (s *DB) Close() error {
	return s.db.Close()
}
