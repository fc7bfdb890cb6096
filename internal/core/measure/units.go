// Package measure contains the pure business logic for unit conversion
// and ingredient costing. This is part of the Functional Core - no I/O,
// only pure functions.
package measure

// Unit is a measurement unit from the closed kitchen vocabulary.
type Unit string

// Mass units.
const (
	UnitGram     Unit = "g"
	UnitKilogram Unit = "kg"
	UnitOunce    Unit = "oz"
	UnitPound    Unit = "lb"
)

// Volume units.
const (
	UnitMilliliter Unit = "ml"
	UnitLiter      Unit = "l"
	UnitTeaspoon   Unit = "tsp"
	UnitTablespoon Unit = "tbsp"
	UnitFluidOunce Unit = "fl_oz"
	UnitCup        Unit = "cup"
	UnitPint       Unit = "pt"
	UnitQuart      Unit = "qt"
	UnitGallon     Unit = "gal"
)

// Count units.
const (
	UnitEach  Unit = "ea"
	UnitDozen Unit = "dozen"
)

// Family groups units that convert among each other.
type Family string

const (
	FamilyMass    Family = "mass"
	FamilyVolume  Family = "volume"
	FamilyCount   Family = "count"
	FamilyUnknown Family = "unknown"
)

// toBase maps each known unit to its quantity in the family base unit
// (grams for mass, milliliters for volume, each for count).
var toBase = map[Unit]float64{
	UnitGram:     1,
	UnitKilogram: 1000,
	UnitOunce:    28.3495,
	UnitPound:    453.592,

	UnitMilliliter: 1,
	UnitLiter:      1000,
	UnitTeaspoon:   4.92892,
	UnitTablespoon: 14.7868,
	UnitFluidOunce: 29.5735,
	UnitCup:        236.588,
	UnitPint:       473.176,
	UnitQuart:      946.353,
	UnitGallon:     3785.41,

	UnitEach:  1,
	UnitDozen: 12,
}

var families = map[Unit]Family{
	UnitGram:     FamilyMass,
	UnitKilogram: FamilyMass,
	UnitOunce:    FamilyMass,
	UnitPound:    FamilyMass,

	UnitMilliliter: FamilyVolume,
	UnitLiter:      FamilyVolume,
	UnitTeaspoon:   FamilyVolume,
	UnitTablespoon: FamilyVolume,
	UnitFluidOunce: FamilyVolume,
	UnitCup:        FamilyVolume,
	UnitPint:       FamilyVolume,
	UnitQuart:      FamilyVolume,
	UnitGallon:     FamilyVolume,

	UnitEach:  FamilyCount,
	UnitDozen: FamilyCount,
}

// FamilyOf returns the family of a unit, FamilyUnknown for units outside
// the vocabulary.
func FamilyOf(u Unit) Family {
	if f, ok := families[u]; ok {
		return f
	}
	return FamilyUnknown
}

// IsKnown reports whether the unit is part of the closed vocabulary.
func IsKnown(u Unit) bool {
	_, ok := families[u]
	return ok
}

// AllUnits returns the full vocabulary, mass then volume then count.
func AllUnits() []Unit {
	return []Unit{
		UnitGram, UnitKilogram, UnitOunce, UnitPound,
		UnitMilliliter, UnitLiter, UnitTeaspoon, UnitTablespoon,
		UnitFluidOunce, UnitCup, UnitPint, UnitQuart, UnitGallon,
		UnitEach, UnitDozen,
	}
}
