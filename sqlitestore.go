package permkit

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/glebarez/sqlite"
)

// SQLiteStore is a durable HistoryStore backed by a SQLite database file.
// Writes are committed before the call returns, which gives the
// read-after-write consistency HistoryStore requires.
type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteStore opens (creating if necessary) the history database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, fmt.Errorf("database path is required")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite works best with a single connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS requested_keys (
			key          TEXT PRIMARY KEY,
			requested_at TIMESTAMP NOT NULL
		)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// WasRequested implements HistoryStore.
func (s *SQLiteStore) WasRequested(key Key) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var one int
	err := s.db.QueryRow(`SELECT 1 FROM requested_keys WHERE key = ?`, string(key)).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to query history: %w", err)
	}
	return true, nil
}

// MarkRequested implements HistoryStore.
func (s *SQLiteStore) MarkRequested(key Key) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		`INSERT INTO requested_keys (key, requested_at) VALUES (?, ?)
		 ON CONFLICT(key) DO NOTHING`,
		string(key), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to record request: %w", err)
	}
	return nil
}

// Clear implements HistoryStore.
func (s *SQLiteStore) Clear(key Key) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec(`DELETE FROM requested_keys WHERE key = ?`, string(key)); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}

// ClearAll implements HistoryStore.
func (s *SQLiteStore) ClearAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec(`DELETE FROM requested_keys`); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}

// Keys returns the recorded keys ordered by first request time.
func (s *SQLiteStore) Keys() ([]Key, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`SELECT key FROM requested_keys ORDER BY requested_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	defer rows.Close()

	var keys []Key
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		keys = append(keys, Key(k))
	}
	return keys, rows.Err()
}
