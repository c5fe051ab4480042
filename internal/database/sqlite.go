// Package database provides the embedded store backing the offline write
// queue.
package database

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // sqlite driver
)

const (
	// DefaultMaxOpenConns is the default maximum number of open connections.
	// sqlite serializes writes anyway; one writer avoids SQLITE_BUSY churn.
	DefaultMaxOpenConns = 1
	// DefaultConnMaxLifetime is the default maximum connection lifetime.
	DefaultConnMaxLifetime = time.Hour
)

const schema = `
CREATE TABLE IF NOT EXISTS offline_queue (
	id          TEXT PRIMARY KEY,
	queue       TEXT NOT NULL,
	target_path TEXT NOT NULL,
	payload     BLOB NOT NULL,
	enqueued_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_offline_queue_queue ON offline_queue (queue, enqueued_at);
`

// NewSQLiteConnection opens (and if needed initializes) the queue database.
func NewSQLiteConnection(path string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(DefaultMaxOpenConns)
	db.SetConnMaxLifetime(DefaultConnMaxLifetime)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return db, nil
}
