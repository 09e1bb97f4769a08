// Package store provides the optional SQLite cache for Census API
// responses, so repeated runs do not refetch identical ACS tables.
package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"
)

// ResponseCache stores raw ACS response bodies keyed by request, with a
// TTL. A nil *ResponseCache is a valid no-op cache.
type ResponseCache struct {
	db *sql.DB
}

// OpenResponseCache opens (creating if needed) the cache database at the
// given path and configures WAL mode.
func OpenResponseCache(path string) (*ResponseCache, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, eris.Wrap(err, "store: create cache dir")
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, eris.Wrap(err, "store: open cache")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "store: exec %s", pragma)
		}
	}
	return &ResponseCache{db: db}, nil
}

const cacheMigration = `
CREATE TABLE IF NOT EXISTS acs_responses (
	id          TEXT PRIMARY KEY,
	request_key TEXT NOT NULL,
	body        TEXT NOT NULL,
	fetched_at  DATETIME NOT NULL DEFAULT (datetime('now')),
	expires_at  DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_acs_responses_request_key ON acs_responses(request_key);
CREATE INDEX IF NOT EXISTS idx_acs_responses_expires_at ON acs_responses(expires_at);
`

// Migrate creates the cache schema.
func (c *ResponseCache) Migrate(ctx context.Context) error {
	_, err := c.db.ExecContext(ctx, cacheMigration)
	return eris.Wrap(err, "store: migrate")
}

// Close closes the underlying database.
func (c *ResponseCache) Close() error {
	if c == nil {
		return nil
	}
	return c.db.Close()
}

// Get returns the freshest unexpired body for the request key, or nil
// when the key is absent or expired.
func (c *ResponseCache) Get(ctx context.Context, requestKey string) ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	row := c.db.QueryRowContext(ctx,
		`SELECT body FROM acs_responses
		 WHERE request_key = ? AND expires_at > datetime('now')
		 ORDER BY fetched_at DESC LIMIT 1`,
		requestKey,
	)

	var body string
	err := row.Scan(&body)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "store: get cached response")
	}
	return []byte(body), nil
}

// Put stores a response body under the request key with the given TTL.
func (c *ResponseCache) Put(ctx context.Context, requestKey string, body []byte, ttl time.Duration) error {
	if c == nil {
		return nil
	}

	now := time.Now().UTC()
	_, err := c.db.ExecContext(ctx,
		`INSERT INTO acs_responses (id, request_key, body, fetched_at, expires_at) VALUES (?, ?, ?, ?, ?)`,
		uuid.New().String(), requestKey, string(body), now, now.Add(ttl),
	)
	return eris.Wrap(err, "store: put cached response")
}

// DeleteExpired removes expired entries and reports how many went away.
func (c *ResponseCache) DeleteExpired(ctx context.Context) (int, error) {
	if c == nil {
		return 0, nil
	}

	res, err := c.db.ExecContext(ctx,
		`DELETE FROM acs_responses WHERE expires_at <= datetime('now')`,
	)
	if err != nil {
		return 0, eris.Wrap(err, "store: delete expired responses")
	}
	n, err := res.RowsAffected()
	return int(n), eris.Wrap(err, "store: rows affected")
}
