package storage

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/ngmaloney/marina-ledger/internal/codec"
	"github.com/ngmaloney/marina-ledger/internal/models"
)

const maxLineBytes = 1 << 20

// CSVFile stores one boat per line in a text file
type CSVFile struct {
	path string
}

// NewCSVFile creates a backend for the text file at path
func NewCSVFile(path string) *CSVFile {
	return &CSVFile{path: path}
}

func (c *CSVFile) Path() string {
	return c.path
}

// Load reads every decodable line of the file. Only a file that cannot be
// opened or read is an error.
func (c *CSVFile) Load() ([]models.Boat, error) {
	f, err := os.Open(c.path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", c.path, err)
	}
	defer f.Close()

	boats, err := ReadBoats(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", c.path, err)
	}
	slog.Info("storage.loaded", "path", c.path, "boats", len(boats))
	return boats, nil
}

// Save truncates the file and writes one line per boat
func (c *CSVFile) Save(boats []models.Boat) error {
	f, err := os.Create(c.path)
	if err != nil {
		return fmt.Errorf("opening %s for writing: %w", c.path, err)
	}

	if err := WriteBoats(f, boats); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", c.path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", c.path, err)
	}
	slog.Info("storage.saved", "path", c.path, "boats", len(boats))
	return nil
}

// ReadBoats decodes boats from r, one per line, skipping lines that do not decode
func ReadBoats(r io.Reader) ([]models.Boat, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxLineBytes)

	var boats []models.Boat
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		b, err := codec.Decode(scanner.Text())
		if err != nil {
			slog.Debug("codec.skipped", "line", lineNo, "error", err)
			continue
		}
		boats = append(boats, b)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return boats, nil
}

// WriteBoats encodes boats to w, one newline-terminated line each
func WriteBoats(w io.Writer, boats []models.Boat) error {
	bw := bufio.NewWriter(w)
	for _, b := range boats {
		if _, err := fmt.Fprintln(bw, codec.Encode(b)); err != nil {
			return err
		}
	}
	return bw.Flush()
}
