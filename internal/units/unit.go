package units

import "fmt"

// Unit is the closed set of measurement units accepted on recipe lines.
type Unit string

const (
	Count      Unit = "COUNT"
	Kg         Unit = "KG"
	G          Unit = "G"
	L          Unit = "L"
	Ml         Unit = "ML"
	Tablespoon Unit = "TABLESPOON"
	Teaspoon   Unit = "TEASPOON"
	Pinch      Unit = "PINCH"
)

// Family groups units that convert into one another without
// ingredient-specific knowledge.
type Family string

const (
	FamilyMass   Family = "MASS"
	FamilyVolume Family = "VOLUME"
	FamilyCount  Family = "COUNT"
	FamilyPinch  Family = "PINCH"
)

var unitFamilies = map[Unit]Family{
	Count:      FamilyCount,
	Kg:         FamilyMass,
	G:          FamilyMass,
	L:          FamilyVolume,
	Ml:         FamilyVolume,
	Tablespoon: FamilyVolume,
	Teaspoon:   FamilyVolume,
	Pinch:      FamilyPinch,
}

// canonical unit per family, used for all internal summation
var canonicalUnits = map[Family]Unit{
	FamilyMass:   G,
	FamilyVolume: Ml,
	FamilyCount:  Count,
	FamilyPinch:  Pinch,
}

// Parse validates a raw unit string against the closed set.
func Parse(raw string) (Unit, error) {
	u := Unit(raw)
	if _, ok := unitFamilies[u]; !ok {
		return "", fmt.Errorf("unknown unit: %q", raw)
	}
	return u, nil
}

// FamilyOf returns the unit family, or false for an unknown unit.
func FamilyOf(u Unit) (Family, bool) {
	f, ok := unitFamilies[u]
	return f, ok
}

// Canonical returns the summation unit for a family.
func Canonical(f Family) Unit {
	return canonicalUnits[f]
}

// All returns every accepted unit, in declaration order.
func All() []Unit {
	return []Unit{Count, Kg, G, L, Ml, Tablespoon, Teaspoon, Pinch}
}
