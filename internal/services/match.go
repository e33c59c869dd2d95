package services

import (
	"math"
	"strings"

	"github.com/snapkitchen/pantry-api/internal/models"
)

// MatchPercentage computes how much of a recipe the live pantry covers, as
// an integer 0..100. A recipe line counts as available when it is flagged
// fromKitchen, a pantry entry with the same case-insensitive name exists,
// and that entry's quantity is above zero. The generator's own fromKitchen
// assumption is deliberately not trusted for entries that have since been
// used up: this reflects what is in stock right now, not what the model
// assumed at generation time. An empty ingredient list scores 0.
func MatchPercentage(ingredients []models.RecipeIngredient, pantry []*models.Ingredient) int {
	total := len(ingredients)
	if total == 0 {
		return 0
	}

	inStock := make(map[string]bool, len(pantry))
	for _, entry := range pantry {
		if ParseQuantity(entry.Quantity) > 0 {
			inStock[strings.ToLower(entry.Name)] = true
		}
	}

	available := 0
	for _, line := range ingredients {
		if line.FromKitchen && inStock[strings.ToLower(line.Name)] {
			available++
		}
	}

	return int(math.Round(float64(available) / float64(total) * 100))
}
