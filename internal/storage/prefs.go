package storage

import (
	"database/sql"
	"errors"
	"fmt"
)

// Prefs is a key/value preference table. Values are opaque strings; callers
// own their encoding.
type Prefs struct {
	db *sql.DB
}

// NewPrefs creates a preference store using the given database.
func NewPrefs(db *DB) *Prefs {
	return &Prefs{db: db.conn}
}

// Save stores value under key, replacing any previous value.
func (p *Prefs) Save(key, value string) error {
	_, err := p.db.Exec(
		`INSERT INTO prefs (key, value, updated_at) VALUES (?, ?, datetime('now'))
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("saving pref %s: %w", key, err)
	}
	return nil
}

// Load returns the value under key and whether it exists.
func (p *Prefs) Load(key string) (string, bool, error) {
	var value string
	err := p.db.QueryRow(`SELECT value FROM prefs WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("loading pref %s: %w", key, err)
	}
	return value, true, nil
}

// Delete removes key. Deleting a missing key is not an error.
func (p *Prefs) Delete(key string) error {
	if _, err := p.db.Exec(`DELETE FROM prefs WHERE key = ?`, key); err != nil {
		return fmt.Errorf("deleting pref %s: %w", key, err)
	}
	return nil
}
