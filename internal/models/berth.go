package models

import (
	"fmt"
	"strings"
)

// BerthType identifies where a boat is kept in the marina
type BerthType string

const (
	BerthSlip    BerthType = "slip"
	BerthLand    BerthType = "land"
	BerthTrailer BerthType = "trailer"
	BerthStorage BerthType = "storage"
)

// BerthTypes lists every berth type in fee-table order
var BerthTypes = []BerthType{BerthSlip, BerthLand, BerthTrailer, BerthStorage}

// legacyTrailer is the spelling used by data files written by the old C tool
const legacyTrailer = "trailor"

// MaxLicenseLen is the longest trailer license plate kept, in characters
const MaxLicenseLen = 19

// ParseBerthType resolves a berth type token, ignoring case
func ParseBerthType(s string) (BerthType, bool) {
	for _, t := range BerthTypes {
		if strings.EqualFold(s, string(t)) {
			return t, true
		}
	}
	if strings.EqualFold(s, legacyTrailer) {
		return BerthTrailer, true
	}
	return "", false
}

// MonthlyFeePerFoot returns the monthly charge per foot of boat length
func (t BerthType) MonthlyFeePerFoot() float64 {
	switch t {
	case BerthSlip:
		return 12.50
	case BerthLand:
		return 14.00
	case BerthTrailer:
		return 25.00
	case BerthStorage:
		return 11.20
	}
	return 0
}

// BerthDetail is the type-specific part of a boat's berth assignment.
// The set of implementations is closed: SlipNumber, BayLetter,
// LicensePlate and StorageSpace.
type BerthDetail interface {
	BerthType() BerthType
	// String is the serialized form used in data files.
	String() string
	// Label is the human readable form used in listings.
	Label() string

	berth()
}

// SlipNumber is the detail for boats kept in a slip
type SlipNumber int

func (SlipNumber) BerthType() BerthType { return BerthSlip }
func (n SlipNumber) String() string    { return fmt.Sprintf("%d", int(n)) }
func (n SlipNumber) Label() string     { return fmt.Sprintf("# %d", int(n)) }
func (SlipNumber) berth()              {}

// BayLetter is the detail for boats stored on land
type BayLetter rune

func (BayLetter) BerthType() BerthType { return BerthLand }
func (b BayLetter) String() string    { return string(rune(b)) }
func (b BayLetter) Label() string     { return "Bay " + string(rune(b)) }
func (BayLetter) berth()              {}

// LicensePlate is the detail for boats kept on a trailer
type LicensePlate string

// NewLicensePlate truncates s to MaxLicenseLen characters
func NewLicensePlate(s string) LicensePlate {
	return LicensePlate(truncate(s, MaxLicenseLen))
}

func (LicensePlate) BerthType() BerthType { return BerthTrailer }
func (p LicensePlate) String() string    { return string(p) }
func (p LicensePlate) Label() string     { return "Plate " + string(p) }
func (LicensePlate) berth()              {}

// StorageSpace is the detail for boats in dry storage
type StorageSpace int

func (StorageSpace) BerthType() BerthType { return BerthStorage }
func (n StorageSpace) String() string    { return fmt.Sprintf("%d", int(n)) }
func (n StorageSpace) Label() string     { return fmt.Sprintf("Space %d", int(n)) }
func (StorageSpace) berth()              {}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
