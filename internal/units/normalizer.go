package units

import "github.com/shopspring/decimal"

// Normalizer converts a (quantity, unit) pair into its family's
// canonical unit. Pure: no state beyond the conversion table.
type Normalizer struct {
	table *Table
}

func NewNormalizer(table *Table) *Normalizer {
	return &Normalizer{table: table}
}

// Normalize returns the quantity expressed in the canonical unit of
// the unit's family. Unit semantics are global, never per-ingredient.
func (n *Normalizer) Normalize(quantity decimal.Decimal, unit Unit) (decimal.Decimal, Unit, error) {
	family, ok := FamilyOf(unit)
	if !ok {
		return decimal.Zero, "", ErrIncompatibleUnits
	}

	canonical := Canonical(family)

	factor, err := n.table.Factor(unit, canonical)
	if err != nil {
		return decimal.Zero, "", err
	}

	return quantity.Mul(factor), canonical, nil
}
