// Package measure contains the pure business logic for unit conversion
// and ingredient costing. This is part of the Functional Core - no I/O,
// only pure functions.
package measure

// Conversion is the result of converting a quantity between units.
//
// Verified is false when no conversion factor exists between the two
// units (incompatible families or a unit outside the vocabulary). In
// that case the quantity is carried through 1:1 so previews stay usable
// on incomplete unit metadata, and the flag must be surfaced to the
// operator by whoever consumes the result.
type Conversion struct {
	Quantity float64
	Verified bool
}

// Convert converts quantity from one unit to another.
//
// Same unit is an identity conversion and always verified, including
// units outside the vocabulary. Units in the same family convert through
// the family base unit. Anything else falls back to identity, unverified.
// Convert never fails; callers branch on Verified, not on an error.
func Convert(quantity float64, from, to Unit) Conversion {
	if from == to {
		return Conversion{Quantity: quantity, Verified: true}
	}

	fromFactor, fromKnown := toBase[from]
	toFactor, toKnown := toBase[to]
	if !fromKnown || !toKnown || families[from] != families[to] {
		return Conversion{Quantity: quantity, Verified: false}
	}

	return Conversion{
		Quantity: quantity * fromFactor / toFactor,
		Verified: true,
	}
}

// Cost computes the monetary cost of a native-unit quantity. A missing
// item cost is represented as zero by the caller, so absent cost metadata
// prices the line at zero rather than failing.
func Cost(nativeQuantity, costPerNativeUnit float64) float64 {
	return nativeQuantity * costPerNativeUnit
}

// TotalCost sums per-line costs.
func TotalCost(lineCosts []float64) float64 {
	var total float64
	for _, c := range lineCosts {
		total += c
	}
	return total
}
