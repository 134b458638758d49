package units

import "strings"

// UnitCode is a measurement unit accepted on recipe lines.
// The set is closed: conversion factors live in the table below.
type UnitCode string

const (
	Ml    UnitCode = "ml"
	Litre UnitCode = "l"
	Cl    UnitCode = "cl"
	Oz    UnitCode = "oz"
	Dash  UnitCode = "dash"
	Drop  UnitCode = "drop"
	Tsp   UnitCode = "tsp"
	Tbsp  UnitCode = "tbsp"
	Gram  UnitCode = "g"
	Kg    UnitCode = "kg"

	// Piece has no volume equivalent. Call sites must treat the
	// quantity as a per-unit count, never pass it through ToMl.
	Piece UnitCode = "piece"
)

// toMlFactor converts one unit of volume/mass to its ml/g equivalent.
// Mass units (g, kg) share the same basis: 1 g counts as 1 ml.
var toMlFactor = map[UnitCode]float64{
	Ml:    1,
	Litre: 1000,
	Cl:    10,
	Oz:    29.5735,
	Dash:  0.9,
	Drop:  0.05,
	Tsp:   4.929,
	Tbsp:  14.787,
	Gram:  1,
	Kg:    1000,
	Piece: 0,
}

// Normalize lowercases and trims a raw unit string into a UnitCode.
func Normalize(raw string) UnitCode {
	return UnitCode(strings.ToLower(strings.TrimSpace(raw)))
}

// Known reports whether the unit is in the conversion table.
// Callers wanting strict validation check this before ToMl.
func Known(unit UnitCode) bool {
	_, ok := toMlFactor[Normalize(string(unit))]
	return ok
}

// ToMl converts a quantity to milliliters.
//
// Unknown units fall back to factor 1 (treated as already-ml) rather
// than erroring; negative or non-finite quantities coerce to 0 so a
// single malformed line cannot poison a whole computation.
func ToMl(qty float64, unit UnitCode) float64 {
	if qty < 0 || qty != qty {
		return 0
	}

	factor, ok := toMlFactor[Normalize(string(unit))]
	if !ok {
		factor = 1
	}

	return qty * factor
}
