package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/snapkitchen/pantry-api/internal/models"
)

func TestMatchPercentage(t *testing.T) {
	t.Parallel()

	pantry := []*models.Ingredient{
		{Name: "Chicken Breast", Quantity: "500"},
		{Name: "Milk", Quantity: "1"},
		{Name: "Flour", Quantity: "0"},
	}

	ingredients := []models.RecipeIngredient{
		{Name: "chicken breast", FromKitchen: true},
		{Name: "milk", FromKitchen: true},
		{Name: "saffron", FromKitchen: false},
	}

	// 2 of 3 lines available
	assert.Equal(t, 67, MatchPercentage(ingredients, pantry))
}

func TestMatchPercentageZeroStockDoesNotCount(t *testing.T) {
	t.Parallel()

	pantry := []*models.Ingredient{
		{Name: "Flour", Quantity: "0"},
	}
	ingredients := []models.RecipeIngredient{
		{Name: "flour", FromKitchen: true},
	}

	assert.Equal(t, 0, MatchPercentage(ingredients, pantry))
}

func TestMatchPercentageFromKitchenFlagRequired(t *testing.T) {
	t.Parallel()

	pantry := []*models.Ingredient{
		{Name: "Milk", Quantity: "1"},
	}
	ingredients := []models.RecipeIngredient{
		// in stock but not flagged as a pantry line
		{Name: "milk", FromKitchen: false},
	}

	assert.Equal(t, 0, MatchPercentage(ingredients, pantry))
}

func TestMatchPercentageEmptyRecipe(t *testing.T) {
	t.Parallel()

	pantry := []*models.Ingredient{{Name: "Milk", Quantity: "1"}}

	assert.Equal(t, 0, MatchPercentage(nil, pantry))
	assert.Equal(t, 0, MatchPercentage([]models.RecipeIngredient{}, pantry))
}

func TestMatchPercentageFullMatch(t *testing.T) {
	t.Parallel()

	pantry := []*models.Ingredient{
		{Name: "Eggs", Quantity: "6"},
		{Name: "Butter", Quantity: "100"},
	}
	ingredients := []models.RecipeIngredient{
		{Name: "eggs", FromKitchen: true},
		{Name: "butter", FromKitchen: true},
	}

	assert.Equal(t, 100, MatchPercentage(ingredients, pantry))
}
