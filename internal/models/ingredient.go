package models

import (
	"time"
)

// Unit values form a closed set. Anything an external collaborator sends
// outside this set is coerced to UnitPieces before reaching the merge
// resolver.
const (
	UnitGrams  = "grams"
	UnitKg     = "kg"
	UnitPieces = "pieces"
	UnitCups   = "cups"
	UnitTbsp   = "tbsp"
	UnitTsp    = "tsp"
	UnitML     = "ml"
	UnitLiters = "liters"
	UnitOz     = "oz"
	UnitLbs    = "lbs"
)

// Units lists every valid unit value.
var Units = []string{
	UnitGrams, UnitKg, UnitPieces, UnitCups, UnitTbsp,
	UnitTsp, UnitML, UnitLiters, UnitOz, UnitLbs,
}

// Category values form a closed set.
const (
	CategoryProtein    = "protein"
	CategoryCarbs      = "carbs"
	CategoryVegetables = "vegetables"
	CategoryFruits     = "fruits"
	CategoryDairy      = "dairy"
	CategorySpices     = "spices"
	CategoryOils       = "oils"
	CategorySweets     = "sweets"
	CategoryOther      = "other"
)

// Categories lists every valid category value.
var Categories = []string{
	CategoryProtein, CategoryCarbs, CategoryVegetables, CategoryFruits,
	CategoryDairy, CategorySpices, CategoryOils, CategorySweets, CategoryOther,
}

// ValidUnit reports whether u is in the closed unit set.
func ValidUnit(u string) bool {
	for _, v := range Units {
		if u == v {
			return true
		}
	}
	return false
}

// CoerceUnit maps an untrusted unit string into the closed set, defaulting
// to pieces so downstream arithmetic always has a usable unit.
func CoerceUnit(u string) string {
	if ValidUnit(u) {
		return u
	}
	return UnitPieces
}

// ValidCategory reports whether c is in the closed category set.
func ValidCategory(c string) bool {
	for _, v := range Categories {
		if c == v {
			return true
		}
	}
	return false
}

// Ingredient is a pantry entry owned by one user. Quantity is stored as
// text but is always numeric-parseable and never negative after a
// reconciliation.
type Ingredient struct {
	ID          int       `json:"id"`
	UserID      int       `json:"user_id"`
	Name        string    `json:"name"`
	Quantity    string    `json:"quantity"`
	Unit        string    `json:"unit"`
	Category    string    `json:"category"`
	Emoji       *string   `json:"emoji,omitempty"`
	IsEssential bool      `json:"is_essential"`
	AddedAt     time.Time `json:"added_at"`
	LastUpdated time.Time `json:"last_updated"`
}

// IngredientCandidate is a validated candidate produced by the vision
// extractor or the receipt parser, ready for merge resolution.
type IngredientCandidate struct {
	Name        string  `json:"name"`
	Quantity    string  `json:"quantity"`
	Unit        string  `json:"unit"`
	Category    string  `json:"category"`
	Emoji       *string `json:"emoji,omitempty"`
	IsEssential *bool   `json:"is_essential,omitempty"`
}

// CreateIngredientsRequest is the request body for batch ingredient ingestion.
type CreateIngredientsRequest struct {
	Ingredients []IngredientCandidate `json:"ingredients"`
}

// UpdateIngredientRequest is the request body for editing a pantry entry.
type UpdateIngredientRequest struct {
	Name        string `json:"name"`
	Quantity    string `json:"quantity"`
	Unit        string `json:"unit"`
	Category    string `json:"category"`
	IsEssential *bool  `json:"is_essential,omitempty"`
}

// BatchDeleteRequest is the request body for deleting multiple pantry entries.
type BatchDeleteRequest struct {
	IDs []int `json:"ids"`
}
