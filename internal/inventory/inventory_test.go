package inventory

import (
	"errors"
	"slices"
	"testing"

	"github.com/ngmaloney/marina-ledger/internal/codec"
	"github.com/ngmaloney/marina-ledger/internal/models"
)

func testBoats() []models.Boat {
	return []models.Boat{
		{Name: "Gunner", Length: 28, Detail: models.SlipNumber(25), Owed: 600},
		{Name: "anchor's away", Length: 22, Detail: models.BayLetter('C'), Owed: 0},
		{Name: "Knot Again", Length: 16, Detail: models.LicensePlate("WA-1234"), Owed: 45.10},
		{Name: "Dry Dock", Length: 30, Detail: models.StorageSpace(7), Owed: 336},
	}
}

func names(boats []models.Boat) []string {
	out := make([]string, len(boats))
	for i, b := range boats {
		out[i] = b.Name
	}
	return out
}

func TestNew_CopiesInput(t *testing.T) {
	boats := testBoats()
	inv := New(DefaultCapacity, boats...)
	boats[0].Name = "Changed"

	if got := inv.Boats()[0].Name; got != "Gunner" {
		t.Errorf("inventory shares caller slice, first name = %q", got)
	}
	if inv.Capacity() != DefaultCapacity {
		t.Errorf("Capacity() = %d, want %d", inv.Capacity(), DefaultCapacity)
	}
}

func TestFind(t *testing.T) {
	inv := New(0, testBoats()...)

	tests := []struct {
		name   string
		want   int
		wantOK bool
	}{
		{"Gunner", 0, true},
		{"gunner", 0, true},
		{"KNOT AGAIN", 2, true},
		{"Anchor's Away", 1, true},
		{"Missing", -1, false},
		{"Gun", -1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := inv.Find(tt.name)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Find(%q) = %d, %v, want %d, %v", tt.name, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestFind_FirstMatchWins(t *testing.T) {
	inv := New(0,
		models.Boat{Name: "Twin", Length: 10, Detail: models.SlipNumber(1)},
		models.Boat{Name: "TWIN", Length: 20, Detail: models.SlipNumber(2)},
	)

	b, err := inv.Lookup("twin")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if b.Length != 10 {
		t.Errorf("Lookup() returned boat of length %d, want the first match", b.Length)
	}
}

func TestLookup_NotFound(t *testing.T) {
	inv := New(0, testBoats()...)
	if _, err := inv.Lookup("Missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Lookup() error = %v, want ErrNotFound", err)
	}
}

func TestAdd(t *testing.T) {
	inv := New(0)
	if err := inv.Add(models.Boat{Name: "Gunner", Length: 28, Detail: models.SlipNumber(25)}); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if inv.Len() != 1 {
		t.Errorf("Len() = %d, want 1", inv.Len())
	}
}

func TestAdd_Capacity(t *testing.T) {
	inv := New(3)
	for i := 0; i < 3; i++ {
		if err := inv.Add(models.Boat{Name: "Boat", Length: 10, Detail: models.SlipNumber(i)}); err != nil {
			t.Fatalf("Add() #%d error = %v", i, err)
		}
	}

	for i := 0; i < 2; i++ {
		if err := inv.Add(models.Boat{Name: "Extra", Length: 10, Detail: models.SlipNumber(9)}); !errors.Is(err, ErrFull) {
			t.Errorf("Add() over capacity error = %v, want ErrFull", err)
		}
	}
	if inv.Len() != 3 {
		t.Errorf("Len() = %d, want 3", inv.Len())
	}
}

func TestAdd_DefaultCapacity(t *testing.T) {
	inv := New(DefaultCapacity)
	for i := 0; i < DefaultCapacity; i++ {
		if err := inv.Add(models.Boat{Name: "Boat", Length: 10, Detail: models.SlipNumber(i)}); err != nil {
			t.Fatalf("Add() #%d error = %v", i, err)
		}
	}
	if err := inv.Add(models.Boat{Name: "One Too Many", Length: 10, Detail: models.SlipNumber(0)}); !errors.Is(err, ErrFull) {
		t.Errorf("Add() error = %v, want ErrFull", err)
	}
	if inv.Len() != DefaultCapacity {
		t.Errorf("Len() = %d, want %d", inv.Len(), DefaultCapacity)
	}
}

func TestAddLine(t *testing.T) {
	inv := New(0)

	b, err := inv.AddLine("Gunner,28,slip,25,600.00\n")
	if err != nil {
		t.Fatalf("AddLine() error = %v", err)
	}
	if b.Name != "Gunner" || inv.Len() != 1 {
		t.Errorf("AddLine() = %+v, Len() = %d", b, inv.Len())
	}

	if _, err := inv.AddLine("X,10,yacht,1,0.00"); !errors.Is(err, codec.ErrUnknownBerthType) {
		t.Errorf("AddLine(unknown type) error = %v, want ErrUnknownBerthType", err)
	}
	if _, err := inv.AddLine("not a boat"); !errors.Is(err, codec.ErrMalformedLine) {
		t.Errorf("AddLine(garbage) error = %v, want ErrMalformedLine", err)
	}
	if inv.Len() != 1 {
		t.Errorf("Len() after rejected lines = %d, want 1", inv.Len())
	}
}

func TestRemove(t *testing.T) {
	inv := New(0, testBoats()...)

	if err := inv.Remove("knot again"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if inv.Len() != 3 {
		t.Errorf("Len() = %d, want 3", inv.Len())
	}
	if _, ok := inv.Find("Knot Again"); ok {
		t.Error("removed boat is still findable")
	}

	want := []string{"Gunner", "anchor's away", "Dry Dock"}
	if got := names(inv.Boats()); !slices.Equal(got, want) {
		t.Errorf("order after Remove() = %v, want %v", got, want)
	}
}

func TestRemove_NotFoundLeavesInventoryUnchanged(t *testing.T) {
	inv := New(0, testBoats()...)
	before := inv.Boats()

	if err := inv.Remove("Missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Remove() error = %v, want ErrNotFound", err)
	}
	if got := inv.Boats(); !slices.Equal(got, before) {
		t.Errorf("inventory changed after failed Remove(): %v", got)
	}
}

func TestSorted(t *testing.T) {
	inv := New(0, testBoats()...)
	before := inv.Boats()

	sorted := inv.Sorted()
	want := []string{"anchor's away", "Dry Dock", "Gunner", "Knot Again"}
	if got := names(sorted); !slices.Equal(got, want) {
		t.Errorf("Sorted() = %v, want %v", got, want)
	}

	if got := names(New(0, sorted...).Sorted()); !slices.Equal(got, want) {
		t.Errorf("Sorted() twice = %v, want %v", got, want)
	}

	if got := inv.Boats(); !slices.Equal(got, before) {
		t.Errorf("Sorted() changed storage order: %v", names(got))
	}
}

func TestSorted_Stable(t *testing.T) {
	inv := New(0,
		models.Boat{Name: "zed", Detail: models.SlipNumber(1)},
		models.Boat{Name: "ALPHA", Detail: models.SlipNumber(2)},
		models.Boat{Name: "alpha", Detail: models.SlipNumber(3)},
		models.Boat{Name: "Alpha", Detail: models.SlipNumber(4)},
	)

	want := []string{"ALPHA", "alpha", "Alpha", "zed"}
	if got := names(inv.Sorted()); !slices.Equal(got, want) {
		t.Errorf("Sorted() = %v, want %v", got, want)
	}
}

func TestSorted_Empty(t *testing.T) {
	if got := New(0).Sorted(); len(got) != 0 {
		t.Errorf("Sorted() on empty inventory = %v", got)
	}
}

func TestEach(t *testing.T) {
	inv := New(0, testBoats()...)
	inv.Each(func(b *models.Boat) { b.Owed = 1 })

	for _, b := range inv.Boats() {
		if b.Owed != 1 {
			t.Errorf("%s Owed = %v, want 1", b.Name, b.Owed)
		}
	}
}

func TestFindAndSorted_AgreeOnCaseFolding(t *testing.T) {
	// U+212A KELVIN SIGN folds to k
	inv := New(0,
		models.Boat{Name: "kilo", Detail: models.SlipNumber(1)},
		models.Boat{Name: "\u212Ailo", Detail: models.SlipNumber(2)},
		models.Boat{Name: "Juliet", Detail: models.SlipNumber(3)},
		models.Boat{Name: "Lima", Detail: models.SlipNumber(4)},
	)

	if i, ok := inv.Find("KILO"); !ok || i != 0 {
		t.Errorf("Find(KILO) = %d, %v, want 0, true", i, ok)
	}

	// Names that match each other sort as ties, keeping storage order
	want := []string{"Juliet", "kilo", "\u212Ailo", "Lima"}
	if got := names(inv.Sorted()); !slices.Equal(got, want) {
		t.Errorf("Sorted() = %q, want %q", got, want)
	}

	if err := inv.Remove("kilo"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if i, ok := inv.Find("kilo"); !ok || inv.Boats()[i].Name != "\u212Ailo" {
		t.Errorf("Find(kilo) after removal = %d, %v, want the Kelvin-sign boat", i, ok)
	}
}
