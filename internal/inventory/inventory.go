// Package inventory holds the marina's in-memory list of boats.
package inventory

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/ngmaloney/marina-ledger/internal/codec"
	"github.com/ngmaloney/marina-ledger/internal/models"
	"golang.org/x/text/cases"
)

// DefaultCapacity is the number of boats the marina can hold
const DefaultCapacity = 120

var (
	// ErrNotFound is returned when no boat has the requested name
	ErrNotFound = errors.New("boat not found")
	// ErrFull is returned when adding to an inventory at capacity
	ErrFull = errors.New("marina is full")
)

// Inventory is an ordered collection of boats. It is not safe for
// concurrent use; callers serialize access.
type Inventory struct {
	boats    []models.Boat
	capacity int // 0 means unbounded
}

// New creates an inventory holding boats in the given order. Boats beyond
// capacity are kept; only later adds are refused.
func New(capacity int, boats ...models.Boat) *Inventory {
	if capacity < 0 {
		capacity = 0
	}
	return &Inventory{
		boats:    slices.Clone(boats),
		capacity: capacity,
	}
}

// Len returns the number of boats
func (inv *Inventory) Len() int {
	return len(inv.boats)
}

// Capacity returns the maximum number of boats, 0 when unbounded
func (inv *Inventory) Capacity() int {
	return inv.capacity
}

// Boats returns a copy of the boats in storage order
func (inv *Inventory) Boats() []models.Boat {
	return slices.Clone(inv.boats)
}

// Find returns the index of the first boat whose name matches, ignoring case
func (inv *Inventory) Find(name string) (int, bool) {
	key := foldName(name)
	for i, b := range inv.boats {
		if foldName(b.Name) == key {
			return i, true
		}
	}
	return -1, false
}

// Lookup returns the first boat whose name matches, ignoring case. The
// pointer is valid until the next Add or Remove.
func (inv *Inventory) Lookup(name string) (*models.Boat, error) {
	i, ok := inv.Find(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return &inv.boats[i], nil
}

// Add appends a boat. Names are not required to be unique.
func (inv *Inventory) Add(b models.Boat) error {
	if inv.capacity > 0 && len(inv.boats) >= inv.capacity {
		return fmt.Errorf("%w: %d boats", ErrFull, inv.capacity)
	}
	inv.boats = append(inv.boats, b)
	return nil
}

// AddLine decodes a data line and adds the resulting boat
func (inv *Inventory) AddLine(line string) (models.Boat, error) {
	b, err := codec.Decode(line)
	if err != nil {
		return models.Boat{}, err
	}
	if err := inv.Add(b); err != nil {
		return models.Boat{}, err
	}
	return b, nil
}

// Remove deletes the first boat whose name matches, keeping the order of the rest
func (inv *Inventory) Remove(name string) error {
	i, ok := inv.Find(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	inv.boats = slices.Delete(inv.boats, i, i+1)
	return nil
}

// Sorted returns the boats ordered by name, ignoring case. Boats whose names
// differ only in case keep their storage order.
func (inv *Inventory) Sorted() []models.Boat {
	sorted := slices.Clone(inv.boats)
	slices.SortStableFunc(sorted, func(a, b models.Boat) int {
		return strings.Compare(foldName(a.Name), foldName(b.Name))
	})
	return sorted
}

// Each calls fn for every boat in storage order. fn may modify the boat.
func (inv *Inventory) Each(fn func(*models.Boat)) {
	for i := range inv.boats {
		fn(&inv.boats[i])
	}
}

// foldName is the case-insensitive key used for both matching and ordering
func foldName(name string) string {
	return cases.Fold().String(name)
}
