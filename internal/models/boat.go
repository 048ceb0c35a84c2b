package models

// MaxNameLen is the longest boat name kept, in characters
const MaxNameLen = 127

// Boat is one berth record in the marina inventory
type Boat struct {
	Name   string      // Unique key, compared case-insensitively
	Length int         // Feet
	Detail BerthDetail // Also determines the berth type
	Owed   float64     // Outstanding balance in dollars
}

// NewBoat builds a boat, truncating the name to MaxNameLen characters
func NewBoat(name string, length int, detail BerthDetail, owed float64) Boat {
	return Boat{
		Name:   truncate(name, MaxNameLen),
		Length: length,
		Detail: detail,
		Owed:   owed,
	}
}

// Type returns the berth type carried by the boat's detail
func (b Boat) Type() BerthType {
	if b.Detail == nil {
		return ""
	}
	return b.Detail.BerthType()
}
