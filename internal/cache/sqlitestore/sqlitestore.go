// Package sqlitestore is an opt-in durable backing store for the smart
// cache, letting a single-binary deployment survive process restarts.
// The default cache path remains the in-memory map in internal/cache;
// this variant is not exercised by the default code path.
package sqlitestore

import (
	"database/sql"
	"encoding/json"
	"time"

	_ "modernc.org/sqlite"
)

// Store is a minimal key/value/expiry table backed by SQLite.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) a SQLite-backed store at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS cache_entries (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			expires_at INTEGER NOT NULL
		)
	`); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Set persists value (JSON-encoded) under key with the given TTL.
func (s *Store) Set(key string, value any, ttl time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	expiresAt := time.Now().Add(ttl).UnixMilli()
	_, err = s.db.Exec(`
		INSERT INTO cache_entries (key, value, expires_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, expires_at = excluded.expires_at
	`, key, string(b), expiresAt)
	return err
}

// Get retrieves and JSON-decodes the value stored under key into out.
// It returns false when the key is absent or expired.
func (s *Store) Get(key string, out any) (bool, error) {
	row := s.db.QueryRow(`SELECT value, expires_at FROM cache_entries WHERE key = ?`, key)
	var raw string
	var expiresAt int64
	if err := row.Scan(&raw, &expiresAt); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, err
	}
	if time.Now().UnixMilli() > expiresAt {
		_, _ = s.db.Exec(`DELETE FROM cache_entries WHERE key = ?`, key)
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return false, err
	}
	return true, nil
}

// Delete removes key unconditionally.
func (s *Store) Delete(key string) error {
	_, err := s.db.Exec(`DELETE FROM cache_entries WHERE key = ?`, key)
	return err
}

// Sweep removes every expired entry.
func (s *Store) Sweep() error {
	_, err := s.db.Exec(`DELETE FROM cache_entries WHERE expires_at < ?`, time.Now().UnixMilli())
	return err
}
