package units

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrIncompatibleUnits signals a conversion across unit families
// (e.g. COUNT -> KG), which is never defined.
var ErrIncompatibleUnits = errors.New("incompatible units")

// Table holds conversion factors between compatible units.
// Construct it with NewTable and pass it around explicitly;
// it is immutable after construction.
type Table struct {
	toCanonical map[Unit]decimal.Decimal
}

// NewTable builds the static conversion table. Factors express each
// unit in its family's canonical unit (G for mass, ML for volume).
func NewTable() *Table {
	return &Table{
		toCanonical: map[Unit]decimal.Decimal{
			G:          decimal.NewFromInt(1),
			Kg:         decimal.NewFromInt(1000),
			Ml:         decimal.NewFromInt(1),
			L:          decimal.NewFromInt(1000),
			Tablespoon: decimal.NewFromInt(15),
			Teaspoon:   decimal.NewFromInt(5),
			Count:      decimal.NewFromInt(1),
			Pinch:      decimal.NewFromInt(1),
		},
	}
}

// Factor returns M such that quantity_in_b = quantity_in_a * M.
// Returns ErrIncompatibleUnits when a and b belong to different families.
func (t *Table) Factor(a, b Unit) (decimal.Decimal, error) {
	fa, okA := FamilyOf(a)
	fb, okB := FamilyOf(b)
	if !okA || !okB || fa != fb {
		return decimal.Zero, ErrIncompatibleUnits
	}
	// a -> canonical -> b
	return t.toCanonical[a].Div(t.toCanonical[b]), nil
}
