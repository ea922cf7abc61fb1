// Package database opens the SQLite event store and applies migrations.
package database

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // CGO-free SQLite driver
)

// OpenDB opens (creating if needed) the SQLite database at the given path.
// WAL mode plus a busy timeout keeps concurrent ingest writes from failing
// with "database is locked". The _pragma form is the modernc driver's DSN
// syntax and applies to every pooled connection.
func OpenDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

// RunMigrations creates the click_events table and its indexes. createdAt is
// stored as unix milliseconds so sub-second window boundaries are exact. The
// composite index backs the windowed per-button aggregation queries.
func RunMigrations(db *sql.DB) error {
	_, err := db.Exec(`
	CREATE TABLE IF NOT EXISTS click_events (
	  id             TEXT PRIMARY KEY,
	  button_name    TEXT NOT NULL CHECK (button_name <> ''),
	  page_url       TEXT NOT NULL DEFAULT '',
	  redirect_url   TEXT NOT NULL DEFAULT '',
	  referrer       TEXT NOT NULL DEFAULT '',
	  user_agent     TEXT NOT NULL DEFAULT '',
	  ip_address     TEXT NOT NULL DEFAULT '',
	  device_type    TEXT NOT NULL DEFAULT 'Unknown',
	  traffic_source TEXT NOT NULL DEFAULT 'Direct',
	  created_at     INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_click_events_button_created ON click_events(button_name, created_at);
	CREATE INDEX IF NOT EXISTS idx_click_events_created ON click_events(created_at);
	`)
	if err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}
