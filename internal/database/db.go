package database

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory database
const MemoryPath = ":memory:"

// DB wraps sql.DB with additional methods
type DB struct {
	*sql.DB
}

// New creates a new database connection. Only one connection is kept open
// since every connection to an in-memory database sees its own data.
func New(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("database open failed: %w", err)
	}
	db.SetMaxOpenConns(1)

	return &DB{db}, nil
}

// InitSchema creates all necessary tables
func (db *DB) InitSchema() error {
	schema := `
    CREATE TABLE IF NOT EXISTS cycles (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        ts TEXT NOT NULL,   -- local wall clock, as written to the log
        hour TEXT NOT NULL, -- ts truncated to the hour
        packet_loss REAL NOT NULL,
        mean_ms REAL,
        median_ms REAL,
        min_ms REAL,
        max_ms REAL
    );

    CREATE INDEX IF NOT EXISTS idx_cycles_ts ON cycles(ts);
    CREATE INDEX IF NOT EXISTS idx_cycles_hour ON cycles(hour);
    `

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("schema creation failed: %w", err)
	}

	return nil
}
