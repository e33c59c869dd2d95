package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snapkitchen/pantry-api/internal/models"
)

func TestParseRecipeList(t *testing.T) {
	t.Parallel()

	content := `[{
		"name": "Fried Rice",
		"description": "Quick weeknight fried rice",
		"prepTime": "10 min",
		"cookTime": "15 min",
		"servings": 2,
		"calories": 520,
		"ingredients": [
			{"name": "rice", "amount": "300g", "fromKitchen": true},
			{"name": "soy sauce", "amount": "2 tbsp", "fromKitchen": false}
		],
		"instructions": ["Cook rice", "Fry everything"],
		"tags": ["dinner"]
	}]`

	payloads, err := parseRecipeList(content)
	require.NoError(t, err)
	require.Len(t, payloads, 1)

	p := payloads[0]
	assert.Equal(t, "Fried Rice", p.Name)
	assert.Equal(t, "10 min", p.PrepTime)
	assert.Equal(t, 2, p.Servings)
	require.Len(t, p.Ingredients, 2)
	assert.True(t, p.Ingredients[0].FromKitchen)
	assert.Equal(t, "2 tbsp", p.Ingredients[1].Amount)
}

func TestParseRecipeListDropsInvalidEntries(t *testing.T) {
	t.Parallel()

	content := `[
		{"name": "", "ingredients": [{"name": "rice", "amount": "1"}]},
		{"name": "Empty Plate", "ingredients": []},
		{"name": "Toast", "ingredients": [{"name": "bread", "amount": "2 pieces"}]}
	]`

	payloads, err := parseRecipeList(content)
	require.NoError(t, err)
	require.Len(t, payloads, 1)
	assert.Equal(t, "Toast", payloads[0].Name)
}

func TestParseRecipeListRejectsProse(t *testing.T) {
	t.Parallel()

	_, err := parseRecipeList("Here are some recipe ideas for you!")
	assert.Error(t, err)
}

func TestBuildRecipePromptIncludesPantryAndFilters(t *testing.T) {
	t.Parallel()

	pantry := []*models.Ingredient{
		{Name: "Chicken Breast", Quantity: "500", Unit: models.UnitGrams},
		{Name: "Rice", Quantity: "1", Unit: models.UnitKg},
	}
	filters := models.RecipeFilters{
		Cuisine:             "thai",
		MealType:            "dinner",
		CookingTime:         30,
		MaxCalories:         600,
		DietaryRestrictions: []string{"gluten-free"},
	}

	prompt := buildRecipePrompt(pantry, filters)

	assert.Contains(t, prompt, "Chicken Breast (500 grams)")
	assert.Contains(t, prompt, "Rice (1 kg)")
	assert.Contains(t, prompt, "Cuisine: thai.")
	assert.Contains(t, prompt, "Meal type: dinner.")
	assert.Contains(t, prompt, "30 minutes")
	assert.Contains(t, prompt, "600 calories")
	assert.Contains(t, prompt, "gluten-free")
	assert.Contains(t, prompt, "fromKitchen")
}

func TestBuildRecipePromptOmitsUnsetFilters(t *testing.T) {
	t.Parallel()

	prompt := buildRecipePrompt([]*models.Ingredient{{Name: "Eggs", Quantity: "6", Unit: models.UnitPieces}}, models.RecipeFilters{})

	assert.NotContains(t, prompt, "Cuisine:")
	assert.NotContains(t, prompt, "Dietary restrictions:")
	assert.NotContains(t, prompt, "Meal type:")
}
