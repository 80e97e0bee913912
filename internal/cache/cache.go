// Package cache stores resolved transcripts in a local sqlite database so
// repeated runs against the same source skip acquisition entirely.
package cache

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

const schema = `
CREATE TABLE IF NOT EXISTS transcripts (
    locator TEXT PRIMARY KEY,
    text TEXT NOT NULL,
    created_at DATETIME NOT NULL
);
`

// Cache is a transcript store keyed by source locator.
type Cache struct {
	db *sql.DB
}

// Open creates the database file and schema if needed.
func Open(path string) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.Wrap(err, "create cache directory")
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrap(err, "open cache database")
	}

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, errors.Wrapf(err, "set pragma %s", pragma)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "create cache schema")
	}

	return &Cache{db: db}, nil
}

// Get returns the cached transcript for a locator, if present.
func (c *Cache) Get(ctx context.Context, locator string) (string, bool, error) {
	var text string
	err := c.db.QueryRowContext(ctx,
		"SELECT text FROM transcripts WHERE locator = ?", locator).Scan(&text)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrap(err, "query transcript cache")
	}
	return text, true, nil
}

// Put stores or replaces the transcript for a locator.
func (c *Cache) Put(ctx context.Context, locator, text string) error {
	_, err := c.db.ExecContext(ctx,
		`INSERT INTO transcripts (locator, text, created_at) VALUES (?, ?, ?)
		 ON CONFLICT(locator) DO UPDATE SET text = excluded.text, created_at = excluded.created_at`,
		locator, text, time.Now().UTC())
	return errors.Wrap(err, "store transcript")
}

func (c *Cache) Close() error {
	return c.db.Close()
}
