// Package codec converts boats to and from the comma-separated line format
// used by marina data files:
//
//	name,length,type,detail,owed
//
// where type is one of slip, land, trailer or storage and owed is written
// with two decimals.
package codec

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/ngmaloney/marina-ledger/internal/models"
)

var (
	// ErrMalformedLine is returned when a line does not have the five expected fields
	ErrMalformedLine = errors.New("malformed boat line")
	// ErrUnknownBerthType is returned when the type field names no known berth type
	ErrUnknownBerthType = errors.New("unknown berth type")
)

const fieldCount = 5

// Decode parses one data line into a Boat. A trailing newline is ignored.
func Decode(line string) (models.Boat, error) {
	line = strings.TrimRight(line, "\r\n")

	fields := strings.Split(line, ",")
	if len(fields) != fieldCount {
		return models.Boat{}, fmt.Errorf("%w: got %d fields, want %d", ErrMalformedLine, len(fields), fieldCount)
	}
	name, lengthText, typeText, detailText, owedText := fields[0], fields[1], fields[2], fields[3], fields[4]

	if name == "" || typeText == "" || detailText == "" {
		return models.Boat{}, fmt.Errorf("%w: empty field", ErrMalformedLine)
	}

	length, err := strconv.Atoi(strings.TrimSpace(lengthText))
	if err != nil {
		return models.Boat{}, fmt.Errorf("%w: length %q is not an integer", ErrMalformedLine, lengthText)
	}

	owed, err := strconv.ParseFloat(strings.TrimSpace(owedText), 64)
	if err != nil || math.IsNaN(owed) || math.IsInf(owed, 0) {
		return models.Boat{}, fmt.Errorf("%w: owed %q is not a number", ErrMalformedLine, owedText)
	}

	berth, ok := models.ParseBerthType(typeText)
	if !ok {
		return models.Boat{}, fmt.Errorf("%w: %q", ErrUnknownBerthType, typeText)
	}

	return models.NewBoat(name, length, ParseDetail(berth, detailText), owed), nil
}

// ParseDetail interprets detail text for the given berth type. Slip and
// storage numbers that do not parse become zero rather than an error.
func ParseDetail(berth models.BerthType, text string) models.BerthDetail {
	switch berth {
	case models.BerthSlip:
		return models.SlipNumber(leadingInt(text))
	case models.BerthLand:
		for _, r := range text {
			return models.BayLetter(r)
		}
		return models.BayLetter(0)
	case models.BerthTrailer:
		return models.NewLicensePlate(text)
	case models.BerthStorage:
		return models.StorageSpace(leadingInt(text))
	}
	return nil
}

// Encode formats a Boat as a data line without the trailing newline
func Encode(b models.Boat) string {
	detail := ""
	if b.Detail != nil {
		detail = b.Detail.String()
	}
	return fmt.Sprintf("%s,%d,%s,%s,%s",
		b.Name,
		b.Length,
		b.Type(),
		detail,
		strconv.FormatFloat(b.Owed, 'f', 2, 64))
}

// leadingInt parses the optionally signed integer at the start of s,
// after any leading blanks, and returns 0 when there is none.
func leadingInt(s string) int {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)

	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0
	}

	// Out of range values clamp to the int limits
	n, _ := strconv.Atoi(s[:end])
	return n
}
