package database

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Open opens the SQLite database at dbPath and ensures the boats table exists
func Open(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// A single connection keeps ":memory:" databases alive across calls
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA synchronous=NORMAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting pragmas: %w", err)
	}

	if err := EnsureSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// EnsureSchema creates the boats table if it does not exist yet
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS boats (
			position INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			length INTEGER NOT NULL,
			berth_type TEXT NOT NULL,
			detail TEXT NOT NULL,
			owed REAL NOT NULL DEFAULT 0
		);
		CREATE INDEX IF NOT EXISTS idx_boats_name ON boats(name COLLATE NOCASE);
	`)
	if err != nil {
		return fmt.Errorf("creating boats table: %w", err)
	}

	return nil
}
