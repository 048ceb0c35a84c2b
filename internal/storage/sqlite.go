package storage

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/ngmaloney/marina-ledger/internal/codec"
	"github.com/ngmaloney/marina-ledger/internal/database"
	"github.com/ngmaloney/marina-ledger/internal/models"
)

// SQLite stores boats in the boats table of a SQLite database
type SQLite struct {
	path string
}

// NewSQLite creates a backend for the database file at path
func NewSQLite(path string) *SQLite {
	return &SQLite{path: path}
}

func (s *SQLite) Path() string {
	return s.path
}

// Load returns the stored boats ordered by position. Rows with an unknown
// berth type are skipped. The database file must already exist.
func (s *SQLite) Load() ([]models.Boat, error) {
	// sql.Open would create a missing file
	if _, err := os.Stat(s.path); err != nil {
		return nil, fmt.Errorf("opening %s: %w", s.path, err)
	}

	db, err := database.Open(s.path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.Query("SELECT name, length, berth_type, detail, owed FROM boats ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("querying boats: %w", err)
	}
	defer rows.Close()

	var boats []models.Boat
	for rows.Next() {
		var name, berthText, detail string
		var length int
		var owed float64

		if err := rows.Scan(&name, &length, &berthText, &detail, &owed); err != nil {
			return nil, fmt.Errorf("scanning boat: %w", err)
		}

		berth, ok := models.ParseBerthType(berthText)
		if !ok {
			slog.Debug("storage.skipped", "boat", name, "error", fmt.Errorf("%w: %q", codec.ErrUnknownBerthType, berthText))
			continue
		}
		boats = append(boats, models.NewBoat(name, length, codec.ParseDetail(berth, detail), owed))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading boats: %w", err)
	}

	slog.Info("storage.loaded", "path", s.path, "boats", len(boats))
	return boats, nil
}

// Save replaces every stored boat in one transaction
func (s *SQLite) Save(boats []models.Boat) (err error) {
	db, err := database.Open(s.path)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer func() {
		if err != nil {
			err = errors.Join(err, tx.Rollback())
		}
	}()

	if _, err = tx.Exec("DELETE FROM boats"); err != nil {
		return fmt.Errorf("clearing boats: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO boats (position, name, length, berth_type, detail, owed)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, b := range boats {
		detail := ""
		if b.Detail != nil {
			detail = b.Detail.String()
		}
		if _, err = stmt.Exec(i, b.Name, b.Length, string(b.Type()), detail, b.Owed); err != nil {
			return fmt.Errorf("saving boat %s: %w", b.Name, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("committing boats: %w", err)
	}
	slog.Info("storage.saved", "path", s.path, "boats", len(boats))
	return nil
}
