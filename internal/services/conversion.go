package services

import (
	"math"

	"github.com/snapkitchen/pantry-api/internal/models"
)

// ConvertAmount expresses a recipe amount in the pantry entry's own unit.
// All deduction arithmetic happens in the pantry unit; recipe amounts are
// converted into it, never the reverse.
//
// currentQty is the pantry entry's current quantity, consulted only by the
// incompatible-unit fallback. The rules, in priority order:
//
//  1. identical units pass through
//  2. grams and ml are treated as directly interchangeable magnitudes
//  3. kg<->grams and liters<->ml scale by 1000
//  4. a pieces target decrements by whole units, at least one
//  5. otherwise there is no reliable conversion: against a bulk (grams/ml)
//     pantry entry deduct 10% of stock capped at 100, else deduct 1
//
// The fallback is a deliberate approximation; clients depend on its exact
// numbers.
func ConvertAmount(amount float64, fromUnit, toUnit string, currentQty float64) float64 {
	switch {
	case fromUnit == toUnit:
		return amount
	case isBulkUnit(fromUnit) && isBulkUnit(toUnit):
		return amount
	case toUnit == models.UnitKg && fromUnit == models.UnitGrams:
		return amount / 1000
	case toUnit == models.UnitGrams && fromUnit == models.UnitKg:
		return amount * 1000
	case toUnit == models.UnitLiters && fromUnit == models.UnitML:
		return amount / 1000
	case toUnit == models.UnitML && fromUnit == models.UnitLiters:
		return amount * 1000
	case toUnit == models.UnitPieces:
		return math.Max(1, math.Floor(amount))
	case isBulkUnit(toUnit):
		return math.Min(100, currentQty*0.1)
	default:
		return 1
	}
}

// isBulkUnit reports whether a unit is one of the weight/volume units that
// this domain treats as cross-compatible.
func isBulkUnit(unit string) bool {
	return unit == models.UnitGrams || unit == models.UnitML
}
