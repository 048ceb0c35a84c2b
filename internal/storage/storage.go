// Package storage loads and saves the marina inventory.
package storage

import (
	"path/filepath"
	"strings"

	"github.com/ngmaloney/marina-ledger/internal/models"
)

// Backend persists the whole inventory at once
type Backend interface {
	// Load returns every stored boat in stored order.
	Load() ([]models.Boat, error)
	// Save replaces the stored boats with boats, in the order given.
	Save(boats []models.Boat) error
	// Path is the file the backend reads and writes.
	Path() string
}

// Open picks a backend from the file extension: .db, .sqlite and .sqlite3
// files are SQLite databases, anything else is the comma-separated text format.
func Open(path string) Backend {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return NewSQLite(path)
	}
	return NewCSVFile(path)
}
