package services

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/snapkitchen/pantry-api/internal/models"
)

// amountPattern matches the first contiguous numeric token: digits with at
// most one decimal point, or a bare ".5" style fraction.
var amountPattern = regexp.MustCompile(`\d+(?:\.\d+)?|\.\d+`)

// Unit detection patterns. Matching is substring-based with a few word
// boundaries; ordering matters (e.g. the liter test must not fire on
// "milliliter"). Known false positives of the substring approach are kept
// intact and pinned by tests.
var (
	gramsSuffixPattern = regexp.MustCompile(`\d+\s*g\b`)
	kgPattern          = regexp.MustCompile(`\bkg\b`)
	mlPattern          = regexp.MustCompile(`(?:\b|\d)ml\b`) // "250ml" has no word boundary before the m
	ozPattern          = regexp.MustCompile(`\boz\b`)
	lbPattern          = regexp.MustCompile(`\blb`)
	pcPattern          = regexp.MustCompile(`\bpc`)
)

// ParseAmount extracts the leading numeric token from a free-form amount
// string ("200g" -> 200, "2 cups" -> 2, "1.5 tbsp" -> 1.5). Strings with no
// numeric token ("a handful", "") yield 1: downstream consumption always
// needs some magnitude, and "one unit" is the documented lossy fallback.
// Never fails.
func ParseAmount(text string) float64 {
	match := amountPattern.FindString(text)
	if match == "" {
		return 1
	}
	value, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 1
	}
	return value
}

// ExtractUnit maps a free-form amount string onto the closed unit set
// ("200g" -> grams, "2 pieces" -> pieces). Unknown or unit-less strings
// yield pieces.
func ExtractUnit(text string) string {
	lower := strings.ToLower(text)

	switch {
	case gramsSuffixPattern.MatchString(lower) || strings.Contains(lower, "gram"):
		return models.UnitGrams
	case kgPattern.MatchString(lower) || strings.Contains(lower, "kilo"):
		return models.UnitKg
	case mlPattern.MatchString(lower) || strings.Contains(lower, "milliliter"):
		return models.UnitML
	case strings.Contains(lower, "liter") && !strings.Contains(lower, "milliliter"):
		return models.UnitLiters
	case ozPattern.MatchString(lower) || strings.Contains(lower, "ounce"):
		return models.UnitOz
	case lbPattern.MatchString(lower) || strings.Contains(lower, "pound"):
		return models.UnitLbs
	case strings.Contains(lower, "cup"):
		return models.UnitCups
	case strings.Contains(lower, "tbsp") || strings.Contains(lower, "tablespoon"):
		return models.UnitTbsp
	case strings.Contains(lower, "tsp") || strings.Contains(lower, "teaspoon"):
		return models.UnitTsp
	case strings.Contains(lower, "piece") || pcPattern.MatchString(lower):
		return models.UnitPieces
	default:
		return models.UnitPieces
	}
}

// ParseQuantity reads a stored pantry quantity. Stored quantities are
// always numeric-parseable; anything else counts as zero so the
// non-negative invariant holds.
func ParseQuantity(s string) float64 {
	value, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}
	return value
}

// FormatQuantity renders a quantity back into its stored text form with no
// trailing zeros ("0.75", "0", "500").
func FormatQuantity(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
